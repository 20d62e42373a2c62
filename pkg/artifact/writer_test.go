package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"io/fs"
	"reflect"
	"runtime"
	"testing"

	"github.com/CTAG07/coursegen/pkg/templating"
)

var sample = templating.Artifact{
	Document: "<!DOCTYPE html>\n<title>Course 1</title>\n",
	Script:   "// Demo\ninitializeApp();\n",
}

func readFile(tb testing.TB, path string) string {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func snapshotTree(tb testing.TB, root string) map[string]string {
	tb.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		tree[rel] = readFile(tb, path)
		return nil
	})
	if err != nil {
		tb.Fatalf("failed to walk %s: %v", root, err)
	}
	return tree
}

func TestWriter_Write(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out", "nested")
	w := NewWriter(root)

	if err := w.Write("course_001_intro", sample); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	dir := filepath.Join(root, "course_001_intro")
	if got := readFile(t, filepath.Join(dir, "index.html")); got != sample.Document {
		t.Errorf("document mismatch: %q", got)
	}
	if got := readFile(t, filepath.Join(dir, "app.js")); got != sample.Script {
		t.Errorf("script mismatch: %q", got)
	}
}

func TestWriter_Idempotent(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	if err := w.Write("course_002_prompts", sample); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	first := snapshotTree(t, root)
	if err := w.Write("course_002_prompts", sample); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}
	if second := snapshotTree(t, root); !reflect.DeepEqual(first, second) {
		t.Errorf("tree changed on rewrite:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestWriter_OverwritesManualEdits(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)
	if err := w.Write("course_003_chatbot", sample); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	doc := filepath.Join(root, "course_003_chatbot", "index.html")
	if err := os.WriteFile(doc, []byte("hand edited"), 0644); err != nil {
		t.Fatalf("failed to edit document: %v", err)
	}
	if err := w.Write("course_003_chatbot", sample); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got := readFile(t, doc); got != sample.Document {
		t.Errorf("manual edit survived regeneration: %q", got)
	}
}

func TestWriter_CustomNames(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, WithDocumentName("page.html"), WithScriptName("course.js"))
	if err := w.Write("course_004_state", sample); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	for _, name := range []string{"page.html", "course.js"} {
		if _, err := os.Stat(filepath.Join(root, "course_004_state", name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func fileMode(tb testing.TB, path string) fs.FileMode {
	tb.Helper()
	info, err := os.Stat(path)
	if err != nil {
		tb.Fatalf("failed to stat %s: %v", path, err)
	}
	return info.Mode().Perm()
}

func TestWriter_FileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}

	t.Run("NewFilesAreWorldReadable", func(t *testing.T) {
		root := t.TempDir()
		if err := NewWriter(root).Write("course_001_x", sample); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		for _, name := range []string{"index.html", "app.js"} {
			if got := fileMode(t, filepath.Join(root, "course_001_x", name)); got != 0644 {
				t.Errorf("%s has mode %v, want 0644", name, got)
			}
		}
	})

	t.Run("Configured", func(t *testing.T) {
		root := t.TempDir()
		if err := NewWriter(root, WithFileMode(0640)).Write("course_002_y", sample); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if got := fileMode(t, filepath.Join(root, "course_002_y", "app.js")); got != 0640 {
			t.Errorf("app.js has mode %v, want 0640", got)
		}
	})

	t.Run("ExistingModeKept", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, "course_003_z")
		if err := os.Mkdir(dir, 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		doc := filepath.Join(dir, "index.html")
		if err := os.WriteFile(doc, []byte("old"), 0600); err != nil {
			t.Fatalf("failed to write document: %v", err)
		}
		if err := NewWriter(root).Write("course_003_z", sample); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if got := fileMode(t, doc); got != 0600 {
			t.Errorf("existing document mode changed to %v", got)
		}
		if got := fileMode(t, filepath.Join(dir, "app.js")); got != 0644 {
			t.Errorf("new script has mode %v, want 0644", got)
		}
	})
}

func TestWriter_Failures(t *testing.T) {
	t.Run("RootIsAFile", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "blocked")
		if err := os.WriteFile(root, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create blocking file: %v", err)
		}
		err := NewWriter(root).Write("course_005_chains", sample)
		if !errors.Is(err, ErrWriteFailed) {
			t.Fatalf("expected ErrWriteFailed, got %v", err)
		}
	})

	t.Run("InvalidDirName", func(t *testing.T) {
		w := NewWriter(t.TempDir())
		for _, dir := range []string{"", ".", "..", "a/b", `a\b`} {
			if err := w.Write(dir, sample); !errors.Is(err, ErrWriteFailed) {
				t.Errorf("Write(%q): expected ErrWriteFailed, got %v", dir, err)
			}
		}
	})

	t.Run("ScriptFailureRemovesNewDocument", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, "course_006_text")
		blockScript(t, dir)

		err := NewWriter(root).Write("course_006_text", sample)
		if !errors.Is(err, ErrWriteFailed) {
			t.Fatalf("expected ErrWriteFailed, got %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "index.html")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("document should not outlive a failed script write, stat err: %v", err)
		}
	})

	t.Run("ScriptFailureRestoresPreviousDocument", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, "course_007_sentiment")
		blockScript(t, dir)
		doc := filepath.Join(dir, "index.html")
		if err := os.WriteFile(doc, []byte("previous"), 0644); err != nil {
			t.Fatalf("failed to write previous document: %v", err)
		}

		err := NewWriter(root).Write("course_007_sentiment", sample)
		if !errors.Is(err, ErrWriteFailed) {
			t.Fatalf("expected ErrWriteFailed, got %v", err)
		}
		if got := readFile(t, doc); got != "previous" {
			t.Errorf("previous document not restored, got %q", got)
		}
	})
}

// blockScript makes the script path an occupied directory so replacing it fails.
func blockScript(tb testing.TB, dir string) {
	tb.Helper()
	script := filepath.Join(dir, "app.js")
	if err := os.MkdirAll(script, 0755); err != nil {
		tb.Fatalf("failed to create blocking dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(script, "keep"), []byte("x"), 0644); err != nil {
		tb.Fatalf("failed to populate blocking dir: %v", err)
	}
}

func TestWriter_Existing(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	w := NewWriter(root)

	names, err := w.Existing()
	if err != nil {
		t.Fatalf("Existing failed on missing root: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no directories, got %v", names)
	}

	for _, dir := range []string{"course_046_multi", "course_001_intro"} {
		if err := w.Write(dir, sample); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write stray file: %v", err)
	}

	names, err = w.Existing()
	if err != nil {
		t.Fatalf("Existing failed: %v", err)
	}
	if want := []string{"course_001_intro", "course_046_multi"}; !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}
