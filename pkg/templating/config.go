package templating

// TemplateConfig holds all configuration options for the artifact renderer.
type TemplateConfig struct {
	// TemplateDir is an optional directory of *.tmpl.* and *.part.* files. A file whose
	// name matches an embedded default replaces it; other files are added to the set.
	TemplateDir string `json:"template_dir" yaml:"template_dir" toml:"template_dir"`

	// DocumentTemplate names the template that renders a course's document.
	DocumentTemplate string `json:"document_template" yaml:"document_template" toml:"document_template"`

	// ScriptTemplate names the template that renders a course's script.
	ScriptTemplate string `json:"script_template" yaml:"script_template" toml:"script_template"`

	// Stylesheet is the shared stylesheet, relative to a course directory.
	Stylesheet string `json:"stylesheet" yaml:"stylesheet" toml:"stylesheet"`

	// RuntimeScript is the shared client runtime, relative to a course directory.
	RuntimeScript string `json:"runtime_script" yaml:"runtime_script" toml:"runtime_script"`

	// ChartLibraryURL is loaded by every document before the runtime.
	ChartLibraryURL string `json:"chart_library_url" yaml:"chart_library_url" toml:"chart_library_url"`

	// BackLink is the target of the navbar's back button.
	BackLink string `json:"back_link" yaml:"back_link" toml:"back_link"`

	// Duration is shown in the sidebar when a record carries none of its own.
	// Leave empty to hide the line for such records.
	Duration string `json:"duration" yaml:"duration" toml:"duration"`

	// ScriptFile is how the document refers to the script sitting next to it. It must
	// agree with the writer's script name.
	ScriptFile string `json:"script_file" yaml:"script_file" toml:"script_file"`

	// IDWidth is the zero-padded width of course ids on the page. It follows the
	// naming convention's width and is not read from the template section.
	IDWidth int `json:"-" yaml:"-" toml:"-"`
}

// DefaultConfig returns a TemplateConfig that renders with the embedded templates and
// the shared assets layout of a course tree.
func DefaultConfig() TemplateConfig {
	return TemplateConfig{
		TemplateDir:      "",
		DocumentTemplate: "document.tmpl.html",
		ScriptTemplate:   "script.tmpl.js",
		Stylesheet:       "../shared/course-styles.css",
		RuntimeScript:    "../shared/course-utils.js",
		ChartLibraryURL:  "https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.min.js",
		BackLink:         "../index.html",
		Duration:         "2h",
		ScriptFile:       "app.js",
		IDWidth:          3,
	}
}
