package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/CTAG07/coursegen/pkg/templating"
	"github.com/natefinch/atomic"
)

// ErrWriteFailed wraps every failure to persist an artifact.
var ErrWriteFailed = errors.New("artifact write failed")

// Writer persists rendered artifacts under a root directory. Each course lives in its
// own subdirectory holding a document and a script.
type Writer struct {
	root       string
	docName    string
	scriptName string
	fileMode   fs.FileMode
	logger     *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithDocumentName sets the document's file name. Defaults to index.html.
func WithDocumentName(name string) Option {
	return func(w *Writer) {
		w.docName = name
	}
}

// WithScriptName sets the script's file name. Defaults to app.js.
func WithScriptName(name string) Option {
	return func(w *Writer) {
		w.scriptName = name
	}
}

// WithFileMode sets the permissions of newly created files. Defaults to 0644. Files
// that already exist keep their mode.
func WithFileMode(mode fs.FileMode) Option {
	return func(w *Writer) {
		w.fileMode = mode.Perm()
	}
}

// WithLogger sets the logger used for write diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer rooted at root, which is created on first write.
func NewWriter(root string, opts ...Option) *Writer {
	w := &Writer{
		root:       root,
		docName:    "index.html",
		scriptName: "app.js",
		fileMode:   0644,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the directory the writer writes under.
func (w *Writer) Root() string {
	return w.root
}

// snapshot is a file's content before a write, or its absence.
type snapshot struct {
	path    string
	data    []byte
	existed bool
}

func take(path string) (snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{path: path}, nil
	}
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{path: path, data: data, existed: true}, nil
}

func (s snapshot) restore() error {
	if !s.existed {
		err := os.Remove(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return atomic.WriteFile(s.path, bytes.NewReader(s.data))
}

// Write stores a under dir, a single path component below the root. Both files are
// replaced atomically, then read back and compared; if anything fails the previous
// contents are put back, so a failed write never leaves a half-updated course behind.
// Writing the same artifact twice leaves the tree unchanged.
func (w *Writer) Write(dir string, a templating.Artifact) error {
	if dir == "" || dir == "." || dir == ".." || strings.ContainsAny(dir, `/\`) {
		return fmt.Errorf("%w: invalid directory name %q", ErrWriteFailed, dir)
	}
	target := filepath.Join(w.root, dir)
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, dir, err)
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(target, w.docName), a.Document},
		{filepath.Join(target, w.scriptName), a.Script},
	}

	var snaps []snapshot
	for _, f := range files {
		s, err := take(f.path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, dir, err)
		}
		snaps = append(snaps, s)
	}

	for i, f := range files {
		err := atomic.WriteFile(f.path, strings.NewReader(f.content))
		// atomic only carries over the mode of a file it replaces; new files start as 0600.
		if err == nil && !snaps[i].existed {
			err = os.Chmod(f.path, w.fileMode)
		}
		if err == nil {
			err = verify(f.path, f.content)
		}
		if err != nil {
			w.rollback(dir, snaps)
			return fmt.Errorf("%w: %s: %w", ErrWriteFailed, dir, err)
		}
	}

	w.logger.Debug("Artifact written", "dir", dir, "document_bytes", len(a.Document), "script_bytes", len(a.Script))
	return nil
}

func verify(path, want string) error {
	got, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if string(got) != want {
		return fmt.Errorf("%s: content mismatch after write", filepath.Base(path))
	}
	return nil
}

func (w *Writer) rollback(dir string, snaps []snapshot) {
	for _, s := range snaps {
		if err := s.restore(); err != nil {
			w.logger.Error("Failed to restore file after write failure", "dir", dir, "file", s.path, "error", err)
		}
	}
}

// Existing returns the sorted names of the directories under the root. A missing root
// yields an empty list.
func (w *Writer) Existing() ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
