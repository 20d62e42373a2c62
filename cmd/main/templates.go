package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/CTAG07/coursegen/pkg/templating"
	"github.com/spf13/cobra"
)

func newTemplatesCommand(opts *runOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the templates and partials a run would render with",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := prepare(cmd, *opts)
			if err != nil {
				return err
			}
			tm, err := templating.NewTemplateManager(logger, cfg.Templates)
			if err != nil {
				return fmt.Errorf("failed to create template manager: %w", err)
			}
			printTemplates(cmd.OutOrStdout(), tm)
			return nil
		},
	}
}

func printTemplates(w io.Writer, tm *templating.TemplateManager) {
	config := tm.GetConfig()

	headers := []string{"Name", "Kind", "Renders"}
	var rows [][]string
	for _, name := range tm.GetTemplateNames() {
		kind := "template"
		if !strings.Contains(name, ".tmpl.") {
			kind = "partial"
		}
		role := ""
		switch name {
		case config.DocumentTemplate:
			role = "document"
		case config.ScriptTemplate:
			role = "script"
		}
		rows = append(rows, []string{name, kind, role})
	}
	_, _ = fmt.Fprintln(w, renderTable(headers, rows, nil, shouldColorize(w)))

	dir := tm.GetTemplateDir()
	if dir == "" {
		dir = "(none, embedded templates only)"
	}
	_, _ = fmt.Fprintf(w, "Override directory: %s\n", dir)
}
