package richtext

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// KeyGen returns a fresh key every time it is called. Keys identify runs and
// paragraphs for as long as they exist, so a generator must never repeat
// itself within a document's lifetime.
type KeyGen func() string

// UUIDKeys generates random UUIDs. It is the default generator.
func UUIDKeys() string {
	return uuid.NewString()
}

// SequentialKeys returns a generator producing prefix1, prefix2, ...
// It is meant for tests and reproducible documents.
func SequentialKeys(prefix string) KeyGen {
	var n uint64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, atomic.AddUint64(&n, 1))
	}
}
