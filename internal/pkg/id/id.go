package id

import (
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable by
// creation time, which keeps ids stable to reason about in the serialized log.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// Reminder builds the deterministic id for a reminder keyed by entity and
// target (a role or an identity). Recomputing a reminder reuses the same id,
// so delete-then-insert supersedes the prior instance instead of duplicating it.
func Reminder(entityID, target string) string {
	return fmt.Sprintf("REMINDER-%s-%s", entityID, target)
}
