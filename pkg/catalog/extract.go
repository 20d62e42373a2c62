package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// courseKeys are the field names that make a brace-delimited fragment look like a
// course record. A fragment needs an id or title key plus at least one more of these
// before it is treated as a record; helper objects such as {id: 1, text: "..."} are not.
var courseKeys = []string{"id", "title", "level", "tags", "description", "duration", "folder"}

type valueKind int

const (
	valOther valueKind = iota
	valInt
	valString
	valList
	valBad
)

type value struct {
	kind valueKind
	str  string
	num  int
	list []string
}

type frame struct {
	line   int
	fields map[string]value
}

// Extractor pulls course records out of hand-maintained, loosely structured text such
// as a courses-data.js file. Its behavior can be customized with functional options.
type Extractor struct {
	defaultLevel string
	logger       *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDefaultLevel sets the level used for records that do not declare one.
// Default: "beginner"
func WithDefaultLevel(level string) Option {
	return func(e *Extractor) {
		e.defaultLevel = strings.ToLower(strings.TrimSpace(level))
	}
}

// WithLogger sets the logger that receives skipped-fragment diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an extractor with default settings, which can be overridden by
// providing one or more Option functions.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		defaultLevel: LevelBeginner,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.defaultLevel == "" {
		e.defaultLevel = LevelBeginner
	}
	return e
}

// ExtractFile reads and extracts the source at path. A file that cannot be read
// yields an error wrapping ErrSourceUnreadable.
func (e *Extractor) ExtractFile(path string) (Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	return e.Extract(f)
}

// Extract reads r to the end and returns every course record found, in source order.
// Malformed record fragments are reported in the result and never abort extraction.
// The only error is a failure to read r, which wraps ErrSourceUnreadable.
func (e *Extractor) Extract(r io.Reader) (Extraction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	return e.ExtractString(string(data)), nil
}

// ExtractString is Extract over an in-memory source.
func (e *Extractor) ExtractString(src string) Extraction {
	var out Extraction
	s := newScanner(src)
	var stack []*frame

	for {
		tok := s.next()
		if tok.kind == tokEOF {
			break
		}

		switch {
		case tok.is("{"):
			stack = append(stack, &frame{line: tok.line, fields: map[string]value{}})
		case tok.is("}"):
			if len(stack) == 0 {
				continue
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			e.finish(f, &out)
		case (tok.kind == tokIdent || tok.kind == tokString) && len(stack) > 0:
			if !s.peek().is(":") {
				continue
			}
			s.next() // ':'
			stack[len(stack)-1].fields[tok.text] = parseValue(s)
		}
	}

	// Fragments left open by a truncated source are still worth keeping.
	for i := len(stack) - 1; i >= 0; i-- {
		e.finish(stack[i], &out)
	}

	e.logger.Debug("Extracted course records", "records", len(out.Records), "malformed", len(out.Malformed))
	return out
}

// parseValue consumes the value after a "key:" pair. Tokens that open structures the
// extractor must still see (nested objects, mixed arrays) are pushed back.
func parseValue(s *scanner) value {
	tok := s.next()
	switch {
	case tok.kind == tokInt:
		n, err := strconv.Atoi(tok.text)
		if err != nil {
			return value{kind: valBad, str: tok.text}
		}
		return value{kind: valInt, num: n, str: tok.text}
	case tok.kind == tokString:
		return value{kind: valString, str: tok.text}
	case tok.kind == tokBadString:
		return value{kind: valBad, str: tok.text}
	case tok.is("["):
		return parseList(s)
	case tok.kind == tokIdent, tok.kind == tokNumber:
		return value{kind: valOther, str: tok.text}
	default:
		s.unread(tok)
		return value{kind: valOther}
	}
}

func parseList(s *scanner) value {
	var items []string
	for {
		tok := s.next()
		switch {
		case tok.kind == tokString:
			items = append(items, tok.text)
		case tok.is(","):
		case tok.is("]"):
			return value{kind: valList, list: items}
		case tok.kind == tokEOF:
			return value{kind: valBad}
		default:
			s.unread(tok)
			return value{kind: valBad}
		}
	}
}

func isRecordShaped(f *frame) bool {
	_, hasID := f.fields["id"]
	_, hasTitle := f.fields["title"]
	if !hasID && !hasTitle {
		return false
	}
	n := 0
	for _, k := range courseKeys {
		if _, ok := f.fields[k]; ok {
			n++
		}
	}
	return n >= 2
}

func (e *Extractor) finish(f *frame, out *Extraction) {
	if !isRecordShaped(f) {
		return
	}

	id := 0
	if v, ok := f.fields["id"]; ok && v.kind == valInt && v.num > 0 {
		id = v.num
	}

	reject := func(reason string) {
		m := Malformed{ID: id, Line: f.line, Reason: reason}
		out.Malformed = append(out.Malformed, m)
		e.logger.Warn("Skipping malformed course record", "line", f.line, "id", id, "reason", reason)
	}

	idVal, ok := f.fields["id"]
	switch {
	case !ok:
		reject("missing id")
		return
	case idVal.kind != valInt || idVal.num <= 0:
		reject(fmt.Sprintf("id %q is not a positive integer", idVal.str))
		return
	}

	titleVal, ok := f.fields["title"]
	switch {
	case !ok:
		reject("missing title")
		return
	case titleVal.kind != valString:
		reject("title is not a quoted string")
		return
	case strings.TrimSpace(titleVal.str) == "":
		reject("title is empty")
		return
	}

	rec := CourseRecord{
		ID:    id,
		Title: strings.TrimSpace(titleVal.str),
		Level: e.defaultLevel,
		Tags:  []string{},
		Line:  f.line,
	}

	if v, ok := f.fields["level"]; ok {
		if level := strings.ToLower(strings.TrimSpace(v.str)); v.kind == valString && level != "" {
			rec.Level = level
		} else {
			e.logger.Debug("Ignoring unusable level", "id", id, "line", f.line)
		}
	}
	if v, ok := f.fields["tags"]; ok {
		if v.kind == valList {
			rec.Tags = normalizeTags(v.list)
		} else {
			e.logger.Debug("Ignoring unusable tags", "id", id, "line", f.line)
		}
	}
	rec.Description = stringField(f, "description")
	rec.Duration = stringField(f, "duration")
	rec.Folder = stringField(f, "folder")

	out.Records = append(out.Records, rec)
}

func stringField(f *frame, key string) string {
	if v, ok := f.fields[key]; ok && v.kind == valString {
		return v.str
	}
	return ""
}
