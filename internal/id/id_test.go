package id

import (
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestRequestIDAndToken_AreUUIDv4(t *testing.T) {
	t.Parallel()

	assert.Regexp(t, uuidV4, RequestID())
	assert.Regexp(t, uuidV4, Token())
	assert.NotEqual(t, Token(), Token())
}

func TestSortable_Format(t *testing.T) {
	t.Parallel()

	s := Sortable()
	assert.Len(t, s, SortableLen)
	assert.Regexp(t, `^[0-9A-HJKMNP-TV-Z]+$`, s)
}

func TestGenerator_StrictlyIncreasingWithFrozenClock(t *testing.T) {
	t.Parallel()

	frozen := time.UnixMilli(1_700_000_000_000)
	g := NewGenerator(func() time.Time { return frozen })

	prev := g.Next()
	for i := 0; i < 1000; i++ {
		next := g.Next()
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestGenerator_ClockStepsBackwards(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	g := NewGenerator(func() time.Time { return now })

	first := g.Next()
	now = now.Add(-time.Hour)
	second := g.Next()

	assert.Greater(t, second, first)
}

func TestGenerator_CounterWrapBorrowsMillisecond(t *testing.T) {
	t.Parallel()

	frozen := time.UnixMilli(1_700_000_000_000)
	g := NewGenerator(func() time.Time { return frozen })

	var last string
	for i := 0; i <= 1<<16; i++ {
		last = g.Next()
	}
	ts, err := SortableTime(last)
	require.NoError(t, err)
	assert.Equal(t, frozen.Add(time.Millisecond).UnixMilli(), ts.UnixMilli())
}

func TestSortableTime_RoundTrip(t *testing.T) {
	t.Parallel()

	at := time.UnixMilli(1_234_567_890_123)
	g := NewGenerator(func() time.Time { return at })

	ts, err := SortableTime(g.Next())
	require.NoError(t, err)
	assert.Equal(t, at.UnixMilli(), ts.UnixMilli())
}

func TestSortableTime_Invalid(t *testing.T) {
	t.Parallel()

	_, err := SortableTime("short")
	assert.Error(t, err)

	_, err = SortableTime("IIIIIIIIIIIIIIIIIIIIIIIIII")
	assert.Error(t, err)
}

func TestSortable_ConcurrentUnique(t *testing.T) {
	t.Parallel()

	const workers, perWorker = 8, 250
	var (
		mu  sync.Mutex
		ids []string
		wg  sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, Sortable())
			}
			mu.Lock()
			ids = append(ids, local...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Strings(ids)
	for i := 1; i < len(ids); i++ {
		require.NotEqual(t, ids[i-1], ids[i])
	}
	assert.Len(t, ids, workers*perWorker)
}
