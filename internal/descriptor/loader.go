package descriptor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads the record descriptions stored at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a descriptor document. A missing version is read as "1".
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse descriptor YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults sets the file-level defaults; field defaults (primitive
// kind, wrap) are resolved where they are read.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// Marshal renders descriptions back into descriptor YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Lookup finds a record description by record name.
func (f *File) Lookup(name string) (Record, bool) {
	for _, r := range f.Records {
		if r.Name == name {
			return r, true
		}
	}

	return Record{}, false
}
