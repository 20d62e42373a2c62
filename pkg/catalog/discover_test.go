package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/CTAG07/coursegen/pkg/naming"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"course_046_multi_agent_collab",
		"course_006_text_classification",
		"course_012",
		"shared",
		"course_7_too_short",
	} {
		if err := os.Mkdir(filepath.Join(root, name), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "course_099_file_not_dir"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	records, err := Discover(root, naming.Default())
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	var ids []int
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if want := []int{6, 12, 46}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected ids %v, got %v", want, ids)
	}

	classification := records[0]
	if classification.Title != "Text Classification" {
		t.Errorf("unexpected title %q", classification.Title)
	}
	if !reflect.DeepEqual(classification.Tags, []string{"text", "classification"}) {
		t.Errorf("unexpected tags %v", classification.Tags)
	}
	if classification.Folder != "course_006_text_classification" {
		t.Errorf("unexpected folder %q", classification.Folder)
	}
	if records[1].Title != "Course 12" {
		t.Errorf("slug-less directory should get a placeholder title, got %q", records[1].Title)
	}

	// A recovered title must map back onto the directory it came from.
	if dir := naming.Default().Dir(records[2].ID, records[2].Title); dir != "course_046_multi_agent_collab" {
		t.Errorf("round trip changed directory name to %q", dir)
	}
}

func TestDiscover_UnreadableRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), naming.Default())
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable, got %v", err)
	}
}
