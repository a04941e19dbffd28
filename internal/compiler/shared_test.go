package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharedTagsAllocation(t *testing.T) {
	s := NewSharedTags()

	tag, _, ok := s.Tag("DoubleQuoted", "double_quoted")
	assert.True(t, ok)
	assert.Equal(t, SharedTagBase+1, tag)

	tag, _, ok = s.Tag("SingleQuoted", "single_quoted")
	assert.True(t, ok)
	assert.Equal(t, SharedTagBase+2, tag)

	again, _, ok := s.Tag("DoubleQuoted", "double_quoted")
	assert.True(t, ok)
	assert.Equal(t, SharedTagBase+1, again, "same name gets the same tag")
	assert.Equal(t, 2, s.Len())
}

func TestSharedTagsRejectsRebinding(t *testing.T) {
	s := NewSharedTags()
	s.Tag("DoubleQuoted", "double_quoted")

	tag, prev, ok := s.Tag("DoubleQuoted", "braced")
	assert.False(t, ok)
	assert.Equal(t, "double_quoted", prev)
	assert.Equal(t, SharedTagBase+1, tag)
	assert.Equal(t, 1, s.Len())
}
