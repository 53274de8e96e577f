package tracker

import (
	"slices"
	"strings"
)

// TagSet is the pending tag list while composing a note: ordered, without
// duplicates.
type TagSet struct {
	tags []string
}

func NewTagSet(tags ...string) *TagSet {
	s := &TagSet{}
	for _, tag := range tags {
		s.Add(tag)
	}
	return s
}

// Add appends tag unless it is blank or already present.
func (s *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || s.Contains(tag) {
		return false
	}
	s.tags = append(s.tags, tag)
	return true
}

func (s *TagSet) Remove(tag string) bool {
	i := slices.Index(s.tags, strings.TrimSpace(tag))
	if i < 0 {
		return false
	}
	s.tags = slices.Delete(s.tags, i, i+1)
	return true
}

func (s *TagSet) Contains(tag string) bool {
	return slices.Contains(s.tags, tag)
}

func (s *TagSet) Len() int {
	return len(s.tags)
}

// Values returns a copy in insertion order. Never nil.
func (s *TagSet) Values() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}
