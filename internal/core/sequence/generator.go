package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"agriaccount/pkg/logger"
)

// LastCodeReader fetches the code of the most recently created row in a
// series (by insertion order, not by numeric value). Returns "" when the
// series has no rows yet.
type LastCodeReader interface {
	LastCode(ctx context.Context, series Series) (string, error)
}

// ReaderFunc adapts a function to the LastCodeReader interface.
type ReaderFunc func(ctx context.Context, series Series) (string, error)

// LastCode implements LastCodeReader.
func (f ReaderFunc) LastCode(ctx context.Context, series Series) (string, error) {
	return f(ctx, series)
}

// Generator issues the next code in a series.
//
// Generation never fails: missing, foreign-prefixed, or malformed prior
// codes all restart the series at 001 instead of raising. Calls are
// serialized per series key within the process; concurrent processes can
// still mint duplicate codes (storage does not reserve numbers).
type Generator struct {
	reader LastCodeReader
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGenerator creates a generator backed by the given reader.
func NewGenerator(reader LastCodeReader) *Generator {
	return &Generator{
		reader: reader,
		now:    time.Now,
		locks:  make(map[string]*sync.Mutex),
	}
}

// WithClock overrides the time source. For tests.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// NextCode returns the next code for the series.
func (g *Generator) NextCode(ctx context.Context, series Series) string {
	lock := g.seriesLock(series)
	lock.Lock()
	defer lock.Unlock()

	prefix := series.CurrentPrefix(g.now())

	last, err := g.reader.LastCode(ctx, series)
	if err != nil {
		logger.Warn(ctx, "last code lookup failed, restarting series",
			"series", series.Name, "error", err)
		return g.format(prefix, 1, series.Width)
	}
	if last == "" || !strings.HasPrefix(last, prefix) {
		// New series, or the stored code belongs to a prior period /
		// legacy scheme. Numbering restarts.
		return g.format(prefix, 1, series.Width)
	}

	n, err := strconv.Atoi(last[len(prefix):])
	if err != nil {
		logger.Warn(ctx, "malformed code in series, restarting",
			"series", series.Name, "code", last)
		return g.format(prefix, 1, series.Width)
	}

	return g.format(prefix, n+1, series.Width)
}

func (g *Generator) format(prefix string, n, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

// seriesLock returns the per-key mutex, creating it on first use.
func (g *Generator) seriesLock(series Series) *sync.Mutex {
	key := series.Name
	if series.Scope != 0 {
		key = fmt.Sprintf("%s/%d", series.Name, series.Scope)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	lock, ok := g.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[key] = lock
	}
	return lock
}
