package progress

import (
	"time"

	"github.com/okarpov/studykeeper/internal/common"
)

// Point is one per-user study item's sync state. Mastered and Difficult are
// tri-state: nil means "not supplied" and the corresponding remote field is
// left untouched on push. The 0/1 wire encoding exists only at the adapter
// boundary.
type Point struct {
	SubjectID string
	Title     string
	Mastered  *bool
	Difficult *bool
}

// nowFn is a test seam for the update timestamp.
var nowFn = time.Now

// fields converts the point to its partial wire representation: identity
// fields, an update date, and only the flags that were supplied.
func (p Point) fields() map[string]any {
	m := map[string]any{
		"subject_id": p.SubjectID,
		"title":      p.Title,
		"update_at":  nowFn().UTC().Format(common.DateLayout),
	}
	if p.Mastered != nil {
		m["is_mastered"] = flagToInt(*p.Mastered)
	}
	if p.Difficult != nil {
		m["is_difficult"] = flagToInt(*p.Difficult)
	}
	return m
}

func flagToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// flagSet reports whether a wire flag value means "on". Firestore hands back
// int64, but older writers and JSON round-trips can produce other numerics.
func flagSet(v any) bool {
	switch n := v.(type) {
	case int64:
		return n == 1
	case int:
		return n == 1
	case float64:
		return n == 1
	case bool:
		return n
	default:
		return false
	}
}
