// Package progress reconciles local in-memory mastery and difficulty state
// with the per-user progress collection in the remote store.
package progress

import (
	"crypto/md5"
	"encoding/hex"
)

// Key builds the composite session key for a progress point.
func Key(subjectID, title string) string {
	return subjectID + "_" + title
}

// DocID derives the stable remote document id for a progress point. It is a
// pure function of (subjectID, title), so repeated toggles of the same point
// always address the same record and never create duplicates. md5 keeps the
// ids compatible with documents already written by earlier releases.
func DocID(subjectID, title string) string {
	sum := md5.Sum([]byte(Key(subjectID, title)))
	return hex.EncodeToString(sum[:])
}
