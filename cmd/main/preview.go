package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/CTAG07/coursegen/pkg/catalog"
	"github.com/CTAG07/coursegen/pkg/resolve"
	"github.com/CTAG07/coursegen/pkg/templating"
	"github.com/spf13/cobra"
)

type previewOptions struct {
	script       bool
	templatePath string
}

func newPreviewCommand(opts *runOptions) *cobra.Command {
	var p previewOptions

	cmd := &cobra.Command{
		Use:   "preview <course-id>",
		Short: "Render one course to standard output without writing anything",
		Long: `preview renders a single course the way a run would and prints it instead of
writing it. With --template it executes a template file from disk against the
course, which is handy when writing overrides.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			return runPreview(cmd, *opts, p, id)
		},
	}

	cmd.Flags().BoolVar(&p.script, "script", false, "Print the script instead of the document")
	cmd.Flags().StringVar(&p.templatePath, "template", "", "Template file to execute against the course instead of the configured templates")
	cmd.MarkFlagsMutuallyExclusive("script", "template")

	return cmd
}

func runPreview(cmd *cobra.Command, opts runOptions, p previewOptions, id int) error {
	cfg, logger, err := prepare(cmd, opts)
	if err != nil {
		return err
	}

	ext, err := loadCourses(logger, cfg, cfg.Naming.Sanitizer(), opts.discover)
	if err != nil {
		return err
	}
	rec, err := findCourse(ext, id)
	if err != nil {
		return err
	}
	res, err := resolve.NewResolver().Resolve(rec)
	if err != nil {
		return err
	}

	tm, err := templating.NewTemplateManager(logger, cfg.Templates)
	if err != nil {
		return fmt.Errorf("failed to create template manager: %w", err)
	}
	out := cmd.OutOrStdout()

	if p.templatePath != "" {
		content, err := os.ReadFile(p.templatePath)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		data, err := tm.Data(rec, res.Bundle)
		if err != nil {
			return err
		}
		return tm.ExecuteTemplateString(out, string(content), data)
	}

	art, err := tm.Render(rec, res.Bundle)
	if err != nil {
		return err
	}
	text := art.Document
	if p.script {
		text = art.Script
	}
	_, err = io.WriteString(out, text)
	return err
}

// findCourse picks the record a run would process for id. When the id is repeated the
// last record wins; an id that only appears in a malformed fragment reports why.
func findCourse(ext catalog.Extraction, id int) (catalog.CourseRecord, error) {
	var (
		found catalog.CourseRecord
		ok    bool
	)
	for _, rec := range ext.Records {
		if rec.ID == id {
			found, ok = rec, true
		}
	}
	if ok {
		return found, nil
	}
	for _, m := range ext.Malformed {
		if m.ID == id {
			return catalog.CourseRecord{}, m
		}
	}
	return catalog.CourseRecord{}, fmt.Errorf("course %d not found", id)
}
