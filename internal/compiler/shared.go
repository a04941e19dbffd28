package compiler

// SharedTagBase is the first tag above the range used by regular
// variants. Shared tags are allocated as SharedTagBase+1, +2, ... so they
// never collide with a sum's own 0-based tags.
const SharedTagBase = 64

// MaxRegularVariants bounds the regular variants of a sum that also holds
// shared variants.
const MaxRegularVariants = SharedTagBase

// SharedTags hands out one module-wide tag per shared variant name. Every
// sum that declares "Name %product" receives the same tag for Name.
type SharedTags struct {
	next    int
	tags    map[string]int
	payload map[string]string
}

// NewSharedTags returns an empty allocator.
func NewSharedTags() *SharedTags {
	return &SharedTags{
		next:    SharedTagBase,
		tags:    make(map[string]int),
		payload: make(map[string]string),
	}
}

// Tag returns the tag for the shared variant name, allocating one on first
// use. product is the payload type; ok is false when name was already
// bound to a different product, in which case the existing binding is
// returned as prev.
func (s *SharedTags) Tag(name, product string) (tag int, prev string, ok bool) {
	if t, seen := s.tags[name]; seen {
		if s.payload[name] != product {
			return t, s.payload[name], false
		}
		return t, product, true
	}
	s.next++
	s.tags[name] = s.next
	s.payload[name] = product
	return s.next, product, true
}

// Len reports how many distinct shared variant names were allocated.
func (s *SharedTags) Len() int {
	return len(s.tags)
}
