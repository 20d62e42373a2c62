package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// whitespaceRun matches everything unicode.IsSpace accepts, not just RE2's ASCII \s.
var whitespaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)

// Sanitizer holds the naming convention for course directories.
type Sanitizer struct {
	// Prefix is prepended to every directory name, e.g. "course_".
	Prefix string
	// Separator joins the id and the slug and replaces whitespace and dashes in titles.
	// It must be a single non-alphanumeric ASCII character.
	Separator string
	// IDWidth is the zero-padded width of the id component.
	IDWidth int
	// MaxSlugLen bounds the length of the normalized title.
	MaxSlugLen int
}

// Default returns the convention of the existing course tree:
// course_001_introduction_to_ai_agents.
func Default() Sanitizer {
	return Sanitizer{
		Prefix:     "course_",
		Separator:  "_",
		IDWidth:    3,
		MaxSlugLen: 40,
	}
}

// Validate reports whether the convention can produce parseable names.
func (s Sanitizer) Validate() error {
	if len(s.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", s.Separator)
	}
	c := s.Separator[0]
	if c > unicode.MaxASCII || isSlugChar(rune(c)) || c == '/' || c == '\\' || c == '&' {
		return fmt.Errorf("separator %q is not allowed", s.Separator)
	}
	if s.IDWidth <= 0 {
		return fmt.Errorf("id width must be positive, got %d", s.IDWidth)
	}
	if s.MaxSlugLen <= 0 {
		return fmt.Errorf("max slug length must be positive, got %d", s.MaxSlugLen)
	}
	if strings.ContainsAny(s.Prefix, "/\\") {
		return fmt.Errorf("prefix %q must not contain path separators", s.Prefix)
	}
	return nil
}

// Slug normalizes a title into the filesystem-safe part of a directory name.
// The steps run in a fixed order: lowercase, fold diacritics, whitespace runs to the
// separator, "&" to "and", "-" to the separator, drop anything outside [a-z0-9] and the
// separator, truncate, trim separators at both ends. The result may be empty.
func (s Sanitizer) Slug(title string) string {
	t := strings.ToLower(title)
	t = foldMarks(t)
	t = whitespaceRun.ReplaceAllLiteralString(t, s.Separator)
	t = strings.ReplaceAll(t, "&", "and")
	t = strings.ReplaceAll(t, "-", s.Separator)

	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		if isSlugChar(r) || string(r) == s.Separator {
			b.WriteRune(r)
		}
	}

	out := b.String()
	// Only ASCII survives the filter above, so byte truncation is safe.
	if len(out) > s.MaxSlugLen {
		out = out[:s.MaxSlugLen]
	}
	return strings.Trim(out, s.Separator)
}

// Dir returns the directory name for a course. When the title normalizes to nothing
// the name is the prefixed, padded id alone.
func (s Sanitizer) Dir(id int, title string) string {
	head := s.Prefix + fmt.Sprintf("%0*d", s.IDWidth, id)
	slug := s.Slug(title)
	if slug == "" {
		return head
	}
	return head + s.Separator + slug
}

// Parse splits a directory name produced by Dir back into its id and slug.
// ok is false when name does not follow the convention.
func (s Sanitizer) Parse(name string) (id int, slug string, ok bool) {
	rest, found := strings.CutPrefix(name, s.Prefix)
	if !found {
		return 0, "", false
	}

	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end < s.IDWidth {
		return 0, "", false
	}

	id, err := strconv.Atoi(rest[:end])
	if err != nil || id <= 0 {
		return 0, "", false
	}

	tail := rest[end:]
	if tail == "" {
		return id, "", true
	}
	slug, found = strings.CutPrefix(tail, s.Separator)
	if !found {
		return 0, "", false
	}
	return id, slug, true
}

// Words splits a slug on the separator, dropping empty parts.
func (s Sanitizer) Words(slug string) []string {
	parts := strings.Split(slug, s.Separator)
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

func isSlugChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// foldMarks strips combining marks so that "café" becomes "cafe" instead of "caf".
func foldMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
