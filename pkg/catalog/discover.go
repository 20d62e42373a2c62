package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/CTAG07/coursegen/pkg/naming"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Discover rebuilds course records from an existing output tree when the authoritative
// source is unavailable. Every directory under root whose name follows the sanitizer's
// convention yields one record: the title is the slug's words in title case and the
// tags are the words themselves. Records come back in ascending id order.
func Discover(root string, s naming.Sanitizer) ([]CourseRecord, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	caser := cases.Title(language.Und)
	var records []CourseRecord
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, slug, ok := s.Parse(entry.Name())
		if !ok {
			continue
		}
		words := s.Words(slug)
		title := caser.String(strings.Join(words, " "))
		if title == "" {
			title = fmt.Sprintf("Course %d", id)
		}
		records = append(records, CourseRecord{
			ID:     id,
			Title:  title,
			Level:  LevelBeginner,
			Tags:   normalizeTags(words),
			Folder: entry.Name(),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records, nil
}
