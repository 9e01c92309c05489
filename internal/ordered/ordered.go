// Package ordered provides deterministic traversal of maps.
package ordered

import "sort"

// RangeBytes calls fn for each entry of m in sorted key order.
func RangeBytes(m map[string][]byte, fn func(name string, data []byte)) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m[k])
	}
}
