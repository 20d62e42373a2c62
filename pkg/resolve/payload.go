package resolve

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed payload
var payloadFS embed.FS

// payloads holds every theory, controls and logic template. Files are named
// <kind>.controls.html, <kind>.logic.js and <name>.theory.html.
var payloads = template.Must(
	template.New("payload").Option("missingkey=error").ParseFS(payloadFS, "payload/*"),
)

// payloadData is what payload templates see.
type payloadData struct {
	Title string
	Lower string
	Focus string
}

// demo describes one bundle shape: which payload files to use and the header text of
// the emitted script.
type demo struct {
	Kind        string
	Theory      string
	DemoTitle   string
	Description string
	Focus       string
}

// build executes the demo's payload templates against data. Every call returns fresh
// strings, so bundles never share state.
func (d demo) build(data payloadData) (Bundle, error) {
	data.Focus = d.Focus
	theory, err := execute(d.Theory+".theory.html", data)
	if err != nil {
		return Bundle{}, err
	}
	controls, err := execute(d.Kind+".controls.html", data)
	if err != nil {
		return Bundle{}, err
	}
	logic, err := execute(d.Kind+".logic.js", data)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		DemoTitle:      d.DemoTitle,
		Description:    d.Description,
		TheoryBody:     theory,
		DemoKind:       d.Kind,
		ControlsMarkup: controls,
		LogicScript:    logic,
	}, nil
}

func execute(name string, data payloadData) (string, error) {
	var buf bytes.Buffer
	if err := payloads.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: payload %s: %w", ErrResolution, name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
