package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// topoLevels groups node indices into dependency levels: every node's
// dependencies sit in earlier levels.
//
// depsFn(i) yields indices that must be built before i. Each level is sorted,
// so the result is deterministic. If a cycle exists, an error is returned.
func topoLevels(n int, depsFn func(i int) []int) ([][]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	var (
		levels [][]int
		done   int
	)

	for len(ready) > 0 {
		sort.Ints(ready)
		levels = append(levels, ready)
		done += len(ready)

		var next []int

		for _, i := range ready {
			for _, j := range out[i] {
				indeg[j]--
				if indeg[j] == 0 {
					next = append(next, j)
				}
			}
		}

		ready = next
	}

	if done != n {
		return nil, errors.New("cycle detected")
	}

	return levels, nil
}

// findCycles walks the graph with a visited set and returns, for every node
// on a cycle, the cycle it was found on as a list of node indices starting
// and ending with the same node.
func findCycles(n int, depsFn func(i int) []int) map[int][]int {
	const (
		white = iota
		grey
		black
	)

	color := make([]int, n)
	cycles := map[int][]int{}

	var (
		stack []int
		visit func(i int)
	)

	visit = func(i int) {
		color[i] = grey
		stack = append(stack, i)

		for _, d := range depsFn(i) {
			switch color[d] {
			case white:
				visit(d)
			case grey:
				start := len(stack) - 1
				for stack[start] != d {
					start--
				}

				cycle := append(append([]int{}, stack[start:]...), d)
				for _, member := range stack[start:] {
					if _, ok := cycles[member]; !ok {
						cycles[member] = cycle
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[i] = black
	}

	for i := range n {
		if color[i] == white {
			visit(i)
		}
	}

	return cycles
}

func cyclePath(cycle []int, name func(i int) string) string {
	parts := make([]string, len(cycle))
	for k, i := range cycle {
		parts[k] = name(i)
	}

	return strings.Join(parts, " -> ")
}
