// Package main provides the CLI entrypoint for substruct-generator.
//
// substruct-generator reads record descriptions from a YAML descriptor file
// and resolves them into patch types:
//   - check validates the descriptors and lists the resolved patch types
//   - plan exports the patch types and their behavior table as YAML
//   - apply decodes a patch document against a record and applies it
package main

import (
	"os"

	"substruct-generator/internal/logging"
)

func main() {
	err := NewRoot().Execute()

	_ = logging.Sync()

	if err != nil {
		os.Exit(1)
	}
}
