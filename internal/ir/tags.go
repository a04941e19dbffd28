package ir

import (
	"slices"
	"strconv"
)

// TagTable is debug metadata mapping each emitted tag back to the
// qualified name of the type that carries it. Tags are unique only within
// one sum, so the table is keyed by sum name first.
type TagTable map[string]map[int]string

// Set records the type name for tag in sum.
func (t TagTable) Set(sum string, tag int, name string) {
	if t[sum] == nil {
		t[sum] = make(map[int]string)
	}
	t[sum][tag] = name
}

// Lookup returns the type name for tag in sum.
func (t TagTable) Lookup(sum string, tag int) (string, bool) {
	name, ok := t[sum][tag]
	return name, ok
}

// Sums returns the sum names in sorted order.
func (t TagTable) Sums() []string {
	sums := make([]string, 0, len(t))
	for s := range t {
		sums = append(sums, s)
	}
	slices.Sort(sums)
	return sums
}

// Tags returns the tags of sum in ascending order.
func (t TagTable) Tags(sum string) []int {
	tags := make([]int, 0, len(t[sum]))
	for tag := range t[sum] {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Value encodes the table for MarshalCanonical. JSON object keys are
// strings, so tags are written in decimal.
func (t TagTable) Value() Object {
	obj := make(Object, len(t))
	for sum, tags := range t {
		inner := make(Object, len(tags))
		for tag, name := range tags {
			inner[strconv.Itoa(tag)] = Str(name)
		}
		obj[sum] = inner
	}
	return obj
}
