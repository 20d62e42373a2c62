package catalog

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrSourceUnreadable means no records could be produced at all. It is fatal for a run.
	ErrSourceUnreadable = errors.New("course source unreadable")
	// ErrRecordMalformed marks a record-shaped fragment that was skipped.
	ErrRecordMalformed = errors.New("course record malformed")
)

// Known difficulty levels. Any other non-empty text is accepted as-is.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// CourseRecord is the metadata of one generated course.
type CourseRecord struct {
	ID    int
	Title string
	Level string
	// Tags is an ordered set of lowercase keywords.
	Tags []string

	// Optional fields carried through when the source provides them.
	Description string
	Duration    string
	Folder      string

	// Line is the source line the record started on, 0 when unknown.
	Line int
}

// HasTag reports whether the record carries the given keyword.
func (r CourseRecord) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// Clone returns a copy that shares no mutable state with r.
func (r CourseRecord) Clone() CourseRecord {
	r.Tags = slices.Clone(r.Tags)
	return r
}

// Malformed describes a record-shaped fragment that failed validation.
type Malformed struct {
	// ID is the fragment's id when it had a usable one, otherwise 0.
	ID     int
	Line   int
	Reason string
}

// Error implements error so a Malformed entry can be reported as a course failure.
func (m Malformed) Error() string {
	return m.Reason
}

// Unwrap lets errors.Is match ErrRecordMalformed.
func (m Malformed) Unwrap() error {
	return ErrRecordMalformed
}

// Extraction is the outcome of reading one source.
type Extraction struct {
	Records   []CourseRecord
	Malformed []Malformed
}

// normalizeTags lowercases and trims tags, dropping empties and repeats while keeping
// first-seen order.
func normalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(tags, t) {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}
