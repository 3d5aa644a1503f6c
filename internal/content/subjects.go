package content

import (
	"sort"

	"github.com/okarpov/studykeeper/internal/progress"
)

// DefaultChapter groups items whose chapter field is empty.
const DefaultChapter = "general"

// Subject is a study subject with its display name.
type Subject struct {
	ID   string
	Name string
}

// Subjects returns the fixed subject registry in presentation order.
func Subjects() []Subject {
	return []Subject{
		{ID: "chinese", Name: "Chinese | VERBAL"},
		{ID: "math", Name: "Math | LOGIC"},
		{ID: "english", Name: "English | GLOBAL"},
		{ID: "physics", Name: "Physics | MATTER"},
		{ID: "chemistry", Name: "Chemistry | ATOM"},
		{ID: "biology", Name: "Biology | LIFE"},
		{ID: "history", Name: "History | TIME"},
		{ID: "geography", Name: "Geography | EARTH"},
		{ID: "politics", Name: "Politics | ETHICS"},
	}
}

// SubjectName resolves a subject id to its display name, falling back to the
// id itself for unknown subjects.
func SubjectName(id string) string {
	for _, s := range Subjects() {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}

// ChapterOrDefault returns the item's chapter, substituting DefaultChapter when unset.
func (i Item) ChapterOrDefault() string {
	if i.Chapter == "" {
		return DefaultChapter
	}
	return i.Chapter
}

// Chapters lists the distinct chapters of a subject's items, sorted.
func Chapters(items []Item) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		seen[item.ChapterOrDefault()] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MasteredCount reports how many of a subject's items are in the mastered set.
func MasteredCount(subjectID string, items []Item, mastered map[string]struct{}) int {
	n := 0
	for _, item := range items {
		if _, ok := mastered[progress.Key(subjectID, item.Title)]; ok {
			n++
		}
	}
	return n
}
