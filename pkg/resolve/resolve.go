package resolve

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/CTAG07/coursegen/pkg/catalog"
)

// ErrResolution means no bundle could be produced for a course. The default tier makes
// this unreachable for the built-in payloads; it exists for broken custom builders.
var ErrResolution = errors.New("template resolution impossible")

// Bundle is the resolved content and behavior of one course.
type Bundle struct {
	// DemoTitle and Description become the header comment of the emitted script.
	DemoTitle   string
	Description string

	TheoryBody     string
	DemoKind       string
	ControlsMarkup string
	LogicScript    string
}

// Tier names the resolution path that produced a bundle.
type Tier string

const (
	TierOverride Tier = "override"
	TierCategory Tier = "category"
	TierDefault  Tier = "default"
)

// Resolution is a bundle plus how it was chosen.
type Resolution struct {
	Bundle Bundle
	Tier   Tier
	// Category is the matched category name for TierCategory, empty otherwise.
	Category string
}

// Builder produces a bundle for a course record.
type Builder func(rec catalog.CourseRecord) (Bundle, error)

// Category is one entry of the tag cascade.
type Category struct {
	Name string
	// Keywords match when any of them equals any of the record's tags.
	Keywords []string
	Build    Builder
}

// Matches reports whether rec carries any of the category's keywords.
func (c Category) Matches(rec catalog.CourseRecord) bool {
	for _, kw := range c.Keywords {
		if rec.HasTag(kw) {
			return true
		}
	}
	return false
}

// Resolver maps course records to bundles through three tiers, in order: an override
// table keyed by course id, an ordered first-match-wins category list, and a default
// builder. Resolve is a pure function of the record and safe for concurrent use.
type Resolver struct {
	overrides  map[int]Builder
	categories []Category
	fallback   Builder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverrides replaces the override table.
func WithOverrides(overrides map[int]Builder) Option {
	return func(r *Resolver) {
		r.overrides = maps.Clone(overrides)
	}
}

// WithCategories replaces the category cascade. Order is significant.
func WithCategories(categories []Category) Option {
	return func(r *Resolver) {
		r.categories = slices.Clone(categories)
	}
}

// WithFallback replaces the default builder.
func WithFallback(b Builder) Option {
	return func(r *Resolver) {
		r.fallback = b
	}
}

// NewResolver creates a resolver with the built-in tables, which can be replaced by
// providing one or more Option functions.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		overrides:  DefaultOverrides(),
		categories: DefaultCategories(),
		fallback:   DefaultBuilder,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.overrides == nil {
		r.overrides = map[int]Builder{}
	}
	if r.fallback == nil {
		r.fallback = DefaultBuilder
	}
	return r
}

// Resolve returns exactly one bundle for rec. An override for rec.ID wins outright and
// tags are not consulted; otherwise the first matching category wins; otherwise the
// default builder runs.
func (r *Resolver) Resolve(rec catalog.CourseRecord) (Resolution, error) {
	rec = rec.Clone()

	if build, ok := r.overrides[rec.ID]; ok {
		b, err := build(rec)
		if err != nil {
			return Resolution{}, wrap(err)
		}
		return Resolution{Bundle: b, Tier: TierOverride}, nil
	}

	for _, c := range r.categories {
		if !c.Matches(rec) {
			continue
		}
		b, err := c.Build(rec)
		if err != nil {
			return Resolution{}, wrap(err)
		}
		return Resolution{Bundle: b, Tier: TierCategory, Category: c.Name}, nil
	}

	b, err := r.fallback(rec)
	if err != nil {
		return Resolution{}, wrap(err)
	}
	return Resolution{Bundle: b, Tier: TierDefault}, nil
}

// HasOverride reports whether id resolves through the override table.
func (r *Resolver) HasOverride(id int) bool {
	_, ok := r.overrides[id]
	return ok
}

// CategoryNames returns the cascade order.
func (r *Resolver) CategoryNames() []string {
	names := make([]string, len(r.categories))
	for i, c := range r.categories {
		names[i] = c.Name
	}
	return names
}

func wrap(err error) error {
	if errors.Is(err, ErrResolution) {
		return err
	}
	return errors.Join(ErrResolution, err)
}

// forRecord builds a bundle whose texts are parameterized by the record's title.
func forRecord(d demo) Builder {
	return func(rec catalog.CourseRecord) (Bundle, error) {
		d := d
		d.DemoTitle = rec.Title + " Demo"
		d.Description = "Interactive demonstration of " + strings.ToLower(rec.Title)
		return d.build(payloadData{Title: rec.Title, Lower: strings.ToLower(rec.Title)})
	}
}

// fixed builds the same bundle whatever the record says; overrides use it so that
// neither tags nor titles leak into hand-authored bundles.
func fixed(d demo, topic string) Builder {
	return func(catalog.CourseRecord) (Bundle, error) {
		return d.build(payloadData{Title: topic, Lower: strings.ToLower(topic)})
	}
}

// DefaultBuilder is the last tier: generic theory, one text input, and a demo that
// reverses the input, shows key/value output and plots a running score line chart.
var DefaultBuilder Builder = forRecord(demo{Kind: "generic", Theory: "default"})
