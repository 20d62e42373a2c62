package batch

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/CTAG07/coursegen/pkg/catalog"
	"github.com/CTAG07/coursegen/pkg/resolve"
	"github.com/CTAG07/coursegen/pkg/templating"
	"github.com/google/uuid"
)

// Resolver picks the content bundle for a course.
type Resolver interface {
	Resolve(rec catalog.CourseRecord) (resolve.Resolution, error)
}

// Renderer turns a course and its bundle into an artifact.
type Renderer interface {
	Render(rec catalog.CourseRecord, bundle resolve.Bundle) (templating.Artifact, error)
}

// Namer derives a course's directory name.
type Namer interface {
	Dir(id int, title string) string
}

// Writer persists an artifact under a directory name.
type Writer interface {
	Write(dir string, a templating.Artifact) error
}

// Driver runs every course of an extraction through resolve, name, render and write.
type Driver struct {
	logger   *slog.Logger
	resolver Resolver
	renderer Renderer
	namer    Namer
	writer   Writer

	useFolders bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithRecordFolders makes records that carry a Folder write into that directory instead
// of one derived from their id and title. Discovered records need this so an existing
// directory whose name is not in normalized form is regenerated in place.
func WithRecordFolders() Option {
	return func(d *Driver) {
		d.useFolders = true
	}
}

// NewDriver wires a driver from its stages.
func NewDriver(logger *slog.Logger, resolver Resolver, renderer Renderer, namer Namer, writer Writer, opts ...Option) *Driver {
	d := &Driver{
		logger:   logger,
		resolver: resolver,
		renderer: renderer,
		namer:    namer,
		writer:   writer,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes ext and reports one result per course. Malformed fragments are
// reported as failed courses; records sharing an id collapse to the last one; the rest
// are processed in ascending id order. A failing course never stops the run.
func (d *Driver) Run(ext catalog.Extraction) Summary {
	runID := uuid.NewString()
	logger := d.logger.With("run_id", runID)
	logger.Info("Starting generation run", "records", len(ext.Records), "malformed", len(ext.Malformed))

	results := make([]Result, 0, len(ext.Records)+len(ext.Malformed))
	for _, m := range ext.Malformed {
		logger.Warn("Course failed", "course_id", m.ID, "line", m.Line, "stage", "extract", "error", m)
		results = append(results, Result{ID: m.ID, Line: m.Line, State: StateFailed, Err: m})
	}

	for _, rec := range dedupe(logger, ext.Records) {
		results = append(results, d.process(logger, rec))
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(a.ID, b.ID)
	})

	summary := Summary{RunID: runID, Results: results}
	logger.Info("Generation run finished", "emitted", summary.Emitted(), "failed", summary.Failed())
	return summary
}

func (d *Driver) process(logger *slog.Logger, rec catalog.CourseRecord) Result {
	res := Result{ID: rec.ID, Title: rec.Title, Line: rec.Line, State: StatePending}
	logger = logger.With("course_id", rec.ID)

	resolution, err := d.resolver.Resolve(rec.Clone())
	if err != nil {
		return res.fail(logger, "resolve", err)
	}
	res.Tier = resolution.Tier
	res.Category = resolution.Category

	res.Dir = d.dirFor(rec)

	art, err := d.renderer.Render(rec.Clone(), resolution.Bundle)
	if err != nil {
		return res.fail(logger, "render", err)
	}

	if err = d.writer.Write(res.Dir, art); err != nil {
		return res.fail(logger, "write", err)
	}

	res.State = StateEmitted
	logger.Info("Course emitted", "dir", res.Dir, "tier", res.Tier, "demo", resolution.Bundle.DemoKind)
	return res
}

func (d *Driver) dirFor(rec catalog.CourseRecord) string {
	if d.useFolders && rec.Folder != "" {
		return rec.Folder
	}
	return d.namer.Dir(rec.ID, rec.Title)
}

// dedupe keeps the last record for every id, sorted by id.
func dedupe(logger *slog.Logger, records []catalog.CourseRecord) []catalog.CourseRecord {
	byID := make(map[int]catalog.CourseRecord, len(records))
	for _, rec := range records {
		if prev, ok := byID[rec.ID]; ok {
			logger.Warn("Duplicate course id, keeping the later record",
				"id", rec.ID, "dropped_line", prev.Line, "kept_line", rec.Line)
		}
		byID[rec.ID] = rec
	}
	out := make([]catalog.CourseRecord, 0, len(byID))
	for _, rec := range byID {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b catalog.CourseRecord) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
