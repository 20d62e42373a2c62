package templating

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperCaser = cases.Upper(language.Und)

// upper returns s in upper case.
func upper(s string) string {
	return upperCaser.String(s)
}

// padID formats id zero-padded to width digits, matching directory names.
func padID(width, id int) string {
	return fmt.Sprintf("%0*d", width, id)
}

// levelClass turns a difficulty level into a CSS class suffix. Known levels pass
// through unchanged; anything else is reduced to lowercase letters, digits and dashes.
func levelClass(level string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(level) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	class := strings.TrimSuffix(b.String(), "-")
	if class == "" {
		return "custom"
	}
	return class
}

// comment flattens s onto a single line so it can follow a // comment marker.
func comment(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// jsStrings renders items as a JavaScript array literal of strings.
func jsStrings(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
