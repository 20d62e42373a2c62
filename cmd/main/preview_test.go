package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CTAG07/coursegen/pkg/catalog"
)

func TestTemplates_Lists(t *testing.T) {
	cfgPath, _ := setupRun(t, testSource)
	out, err := execute(t, "--config", cfgPath, "templates")
	if err != nil {
		t.Fatalf("templates failed: %v", err)
	}
	for _, want := range []string{"document.tmpl.html", "script.tmpl.js", "sidebar.part.html", "partial", "document", "script", "embedded templates only"} {
		if !strings.Contains(out, want) {
			t.Errorf("template listing missing %q:\n%s", want, out)
		}
	}
}

func TestPreview(t *testing.T) {
	cfgPath, outDir := setupRun(t, testSource)

	t.Run("Document", func(t *testing.T) {
		out, err := execute(t, "--config", cfgPath, "preview", "7")
		if err != nil {
			t.Fatalf("preview failed: %v", err)
		}
		if !strings.Contains(out, "<title>Course 7: Sentiment Analysis</title>") || !strings.Contains(out, "<h3>Course 007</h3>") {
			t.Errorf("unexpected document:\n%s", out)
		}
	})

	t.Run("Script", func(t *testing.T) {
		out, err := execute(t, "--config", cfgPath, "preview", "7", "--script")
		if err != nil {
			t.Fatalf("preview failed: %v", err)
		}
		if !strings.Contains(out, "initializeApp();") || strings.Contains(out, "<html") {
			t.Errorf("unexpected script:\n%s", out)
		}
	})

	t.Run("TemplateFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "card.tmpl.html")
		if err := os.WriteFile(path, []byte(`{{padID .Config.IDWidth .Course.ID}} {{.Course.Title}} [{{upper .Course.Level}}]`), 0644); err != nil {
			t.Fatalf("failed to write template: %v", err)
		}
		out, err := execute(t, "--config", cfgPath, "preview", "46", "--template", path)
		if err != nil {
			t.Fatalf("preview failed: %v", err)
		}
		if out != "046 Multi-Agent Collaboration [ADVANCED]" {
			t.Errorf("unexpected template output %q", out)
		}
	})

	if _, err := os.Stat(outDir); !errors.Is(err, os.ErrNotExist) {
		t.Error("preview should not write the output tree")
	}
}

func TestPreview_Errors(t *testing.T) {
	cfgPath, _ := setupRun(t, testSource)

	if _, err := execute(t, "--config", cfgPath, "preview", "99"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
	if _, err := execute(t, "--config", cfgPath, "preview", "9"); !errors.Is(err, catalog.ErrRecordMalformed) {
		t.Errorf("expected ErrRecordMalformed for a broken record, got %v", err)
	}
	if _, err := execute(t, "--config", cfgPath, "preview", "seven"); err == nil || !strings.Contains(err.Error(), "invalid course id") {
		t.Errorf("expected invalid id error, got %v", err)
	}
	if _, err := execute(t, "--config", cfgPath, "preview", "7", "--script", "--template", "x.tmpl"); err == nil {
		t.Error("expected --script and --template to be rejected together")
	}
}

func TestFindCourse_LastWins(t *testing.T) {
	ext := catalog.Extraction{Records: []catalog.CourseRecord{
		{ID: 5, Title: "Old Title"},
		{ID: 5, Title: "Agent Chains"},
	}}
	rec, err := findCourse(ext, 5)
	if err != nil {
		t.Fatalf("findCourse failed: %v", err)
	}
	if rec.Title != "Agent Chains" {
		t.Errorf("expected the later record, got %q", rec.Title)
	}
}
