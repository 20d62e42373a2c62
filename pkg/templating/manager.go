package templating

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"text/template"
)

//go:embed defaults
var defaultFS embed.FS

// ErrRender wraps every failure to turn a course into an artifact.
var ErrRender = errors.New("artifact rendering failed")

// TemplateManager is the central controller for the artifact renderer.
// It manages the template set, configuration and function map, and is responsible
// for loading, parsing, and executing templates in a concurrent-safe manner.
// All methods are concurrent-safe.
type TemplateManager struct {
	logger         *slog.Logger
	config         *TemplateConfig
	templates      *template.Template
	cleanTemplates *template.Template
	templateNames  []string
	funcMap        template.FuncMap
	mu             sync.RWMutex
}

// NewTemplateManager creates, initializes, and returns a new TemplateManager.
// The embedded defaults are always loaded; config.TemplateDir, when set, layers
// overrides on top of them. It performs an initial Refresh and fails if the templates
// named by the config cannot be found.
func NewTemplateManager(logger *slog.Logger, config *TemplateConfig) (*TemplateManager, error) {
	if config == nil {
		def := DefaultConfig()
		config = &def
	}
	tm := &TemplateManager{
		logger: logger,
		config: config,
	}
	tm.funcMap = tm.makeFuncMap()

	if err := tm.Refresh(); err != nil {
		return nil, err
	}

	logger.Info("Template manager initialized", "templates", len(tm.templateNames))
	return tm, nil
}

func (tm *TemplateManager) makeFuncMap() template.FuncMap {
	return template.FuncMap{
		// Text (from funcs_text.go)
		"upper":      upper,
		"padID":      padID,
		"levelClass": levelClass,
		"comment":    comment,
		"indent":     indent,
		"jsStrings":  jsStrings,
	}
}

// Refresh reloads the embedded defaults and then every template in the configured
// template directory. This allows template edits to be picked up without rebuilding.
func (tm *TemplateManager) Refresh() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.logger.Debug("Loading embedded templates...")
	parsed, err := template.New("").Funcs(tm.funcMap).Option("missingkey=error").ParseFS(defaultFS, "defaults/*")
	if err != nil {
		tm.logger.Error("failed to parse embedded templates", "error", err)
		return err
	}

	if dir := tm.config.TemplateDir; dir != "" {
		for _, pattern := range []string{"*.tmpl.*", "*.part.*"} {
			filePattern := filepath.Join(dir, pattern)
			tm.logger.Info("Loading template files...", "pattern", filePattern)
			next, err := parsed.ParseGlob(filePattern)
			if err != nil {
				if !strings.Contains(err.Error(), "pattern matches no files") {
					tm.logger.Error("failed to parse template files", "pattern", filePattern, "error", err)
					return err
				}
				continue
			}
			parsed = next
		}
	}

	for _, required := range []string{tm.config.DocumentTemplate, tm.config.ScriptTemplate} {
		if required == "" || parsed.Lookup(required) == nil {
			return fmt.Errorf("template %q is not defined", required)
		}
	}

	var names []string
	for _, t := range parsed.Templates() {
		// By default, there is a root template with no name. We don't want to execute this
		if strings.Contains(t.Name(), ".tmpl.") {
			names = append(names, t.Name())
		}
	}
	slices.Sort(names)

	tm.templates = parsed
	tm.templateNames = names
	tm.logger.Debug("Loaded template and partial files", "count", len(parsed.Templates())-1) // Subtract one for the root template

	// Create a clean clone for string executions after all parsing is complete.
	tm.cleanTemplates, err = tm.templates.Clone()
	if err != nil {
		tm.logger.Error("failed to create a clean clone of templates", "error", err)
		return err
	}
	return nil
}

// Execute renders a specific template by name, writing the output to the provided io.Writer.
func (tm *TemplateManager) Execute(w io.Writer, name string, data any) error {
	if name == "" {
		return nil
	}
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.templates.ExecuteTemplate(w, name, data)
}

// GetConfig returns a copy of the current configuration.
// This mainly exists for concurrency-safety reasons.
func (tm *TemplateManager) GetConfig() TemplateConfig {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return *tm.config
}

// GetTemplateNames returns the sorted names of the loaded templates and partials.
func (tm *TemplateManager) GetTemplateNames() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	var names []string
	for _, t := range tm.templates.Templates() {
		// By default, there is a root template with no name. We don't want to return this in the list
		if strings.Contains(t.Name(), ".tmpl.") || strings.Contains(t.Name(), ".part.") {
			names = append(names, t.Name())
		}
	}
	slices.Sort(names)
	return names
}

// GetTemplateDir returns the override directory that the TemplateManager uses.
func (tm *TemplateManager) GetTemplateDir() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.config.TemplateDir
}

// ExecuteTemplateString parses and executes a raw template string using the manager's function map.
// This is ideal for testing or previewing templates without saving them to disk.
func (tm *TemplateManager) ExecuteTemplateString(w io.Writer, content string, data any) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	// Clone the clean, unexecuted template set to avoid race conditions and execution state issues.
	tempSet, err := tm.cleanTemplates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone clean templates for string execution: %w", err)
	}

	t, err := tempSet.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse string template: %w", err)
	}

	return t.Execute(w, data)
}
