package id

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RequestID returns a new request identifier.
func RequestID() string {
	return uuid.NewString()
}

// Token returns a new opaque continuation token.
func Token() string {
	return uuid.NewString()
}

// crockford is Crockford's base32 alphabet; it preserves byte order.
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var sortableEncoding = base32.NewEncoding(crockford).WithPadding(base32.NoPadding)

// SortableLen is the length of a Sortable ID.
const SortableLen = 26

var defaultGen = NewGenerator(time.Now)

// Sortable returns a time-ordered ID from the package generator.
func Sortable() string {
	return defaultGen.Next()
}

// Generator produces Sortable IDs from a clock.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	lastMs  int64
	counter uint16
}

// NewGenerator returns a Generator reading time from now.
func NewGenerator(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns the next ID. IDs from one Generator are strictly increasing,
// even when the clock stalls or steps backwards.
func (g *Generator) Next() string {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.lastMs {
		ms = g.lastMs
		g.counter++
		if g.counter == 0 {
			// Counter wrapped; borrow the next millisecond.
			ms++
		}
	} else {
		g.counter = 0
	}
	g.lastMs = ms
	counter := g.counter
	g.mu.Unlock()

	// 48-bit milliseconds, 16-bit counter, 64 random bits.
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(ms)<<16|uint64(counter))
	_, _ = rand.Read(b[8:])
	return sortableEncoding.EncodeToString(b[:])
}

// SortableTime extracts the millisecond timestamp from a Sortable ID.
func SortableTime(s string) (time.Time, error) {
	if len(s) != SortableLen {
		return time.Time{}, fmt.Errorf("invalid sortable id %q: want %d characters", s, SortableLen)
	}
	b, err := sortableEncoding.DecodeString(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid sortable id %q: %w", s, err)
	}
	ms := binary.BigEndian.Uint64(b[0:8]) >> 16
	return time.UnixMilli(int64(ms)), nil
}
