package templating

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/CTAG07/coursegen/pkg/catalog"
	"github.com/CTAG07/coursegen/pkg/resolve"
	"github.com/PuerkitoBio/goquery"
)

// Artifact is the rendered output for one course.
type Artifact struct {
	Document string
	Script   string
}

// RenderData is the value document and script templates execute against.
type RenderData struct {
	Course catalog.CourseRecord
	Bundle resolve.Bundle
	// Sections are the theory's <h2> headings in document order.
	Sections []string
	// Duration is the record's own duration, or the configured default.
	Duration string
	Config   TemplateConfig
}

// Data builds the value the templates execute against for rec and its bundle.
func (tm *TemplateManager) Data(rec catalog.CourseRecord, bundle resolve.Bundle) (RenderData, error) {
	sections, err := Sections(bundle.TheoryBody)
	if err != nil {
		return RenderData{}, fmt.Errorf("%w: course %d: %w", ErrRender, rec.ID, err)
	}
	config := tm.GetConfig()
	return RenderData{
		Course:   rec.Clone(),
		Bundle:   bundle,
		Sections: sections,
		Duration: fallback(config.Duration, rec.Duration),
		Config:   config,
	}, nil
}

// Render produces the document and script for rec from its resolved bundle. Bundle
// content is inserted verbatim; the same inputs always render the same bytes.
func (tm *TemplateManager) Render(rec catalog.CourseRecord, bundle resolve.Bundle) (Artifact, error) {
	data, err := tm.Data(rec, bundle)
	if err != nil {
		return Artifact{}, err
	}

	var doc, script bytes.Buffer
	if err := tm.Execute(&doc, data.Config.DocumentTemplate, data); err != nil {
		return Artifact{}, fmt.Errorf("%w: course %d document: %w", ErrRender, rec.ID, err)
	}
	if err := tm.Execute(&script, data.Config.ScriptTemplate, data); err != nil {
		return Artifact{}, fmt.Errorf("%w: course %d script: %w", ErrRender, rec.ID, err)
	}

	return Artifact{Document: doc.String(), Script: script.String()}, nil
}

// fallback returns val unless it is empty, in which case it returns def.
func fallback(def, val string) string {
	if val == "" {
		return def
	}
	return val
}

// Sections returns the text of every <h2> in an HTML fragment, in order. Headings
// with no text are skipped.
func Sections(theory string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(theory))
	if err != nil {
		return nil, err
	}
	sections := []string{}
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			sections = append(sections, text)
		}
	})
	return sections, nil
}
