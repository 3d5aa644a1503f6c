package progress

// Sets holds the two session-local views of a user's progress, keyed by
// composite key (see Key). They are rebuilt wholesale on every pull and
// mutated optimistically on local toggles.
type Sets struct {
	Mastered  map[string]struct{}
	Difficult map[string]struct{}
}

func NewSets() *Sets {
	return &Sets{
		Mastered:  make(map[string]struct{}),
		Difficult: make(map[string]struct{}),
	}
}
