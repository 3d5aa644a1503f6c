// Package content loads and saves the study material itself: per-subject
// flat ordered sequences of items kept in JSON files. The sync core treats
// this as an external collaborator behind the Source interface.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okarpov/studykeeper/internal/filex"
)

// Item is one study point. Formula and Image are optional presentation
// extras; no schema versioning is assumed.
type Item struct {
	Title   string `json:"title"`
	Chapter string `json:"chapter"`
	Content string `json:"content"`
	Formula string `json:"formula,omitempty"`
	Image   string `json:"image,omitempty"`
}

// Source is the read/write key-value-by-subject store of study items.
type Source interface {
	Load(subjectID string) ([]Item, error)
	Save(subjectID string, items []Item) error
	Append(subjectID string, item Item) error
}

// FileSource keeps one {subjectID}.json file per subject in a data
// directory. An absent file reads as an empty subject.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) (*FileSource, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	return &FileSource{dir: abs}, nil
}

func (s *FileSource) path(subjectID string) string {
	return filepath.Join(s.dir, subjectID+".json")
}

func (s *FileSource) Load(subjectID string) ([]Item, error) {
	data, err := os.ReadFile(s.path(subjectID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", subjectID, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", subjectID, err)
	}
	return items, nil
}

func (s *FileSource) Save(subjectID string, items []Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", subjectID, err)
	}
	if err := os.WriteFile(s.path(subjectID), data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", subjectID, err)
	}
	return nil
}

func (s *FileSource) Append(subjectID string, item Item) error {
	items, err := s.Load(subjectID)
	if err != nil {
		return err
	}
	return s.Save(subjectID, append(items, item))
}
