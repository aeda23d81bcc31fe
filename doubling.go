package suffixindex

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

const (
	// Group id of the virtual sentinel appended after the last symbol.
	// Every real symbol gets a group id above it.
	sentinelGroup = 0

	// Below this many entries a round is sorted on the calling goroutine
	// even when workers are available.
	parallelThreshold = 1 << 12

	// Inputs up to this length get their whole working table dumped to
	// the debug logger on every round.
	dumpLimit = 32
)

// entry is one position of the working table. group is the id of its
// current prefix, next the id of the prefix h symbols further on.
type entry struct {
	group int32
	next  int32
	addr  int32
}

func compareEntries(a, b entry) int {
	if c := cmp.Compare(a.group, b.group); c != 0 {
		return c
	}
	return cmp.Compare(a.next, b.next)
}

// initialGroups assigns every position its first group id: the sentinel
// gets sentinelGroup and each symbol a positive id that keeps the symbol
// order.
func initialGroups[S constraints.Ordered](text []S, groups []int32) {
	groups[len(text)] = sentinelGroup
	if b, ok := any(text).([]byte); ok {
		for i, c := range b {
			groups[i] = int32(c) + 1
		}
		return
	}

	alphabet := slices.Clone(text)
	slices.Sort(alphabet)
	alphabet = slices.Compact(alphabet)
	for i, s := range text {
		g, _ := slices.BinarySearch(alphabet, s)
		groups[i] = int32(g) + 1
	}
}

// sortSuffixes runs prefix doubling over text and fills addresses with
// the suffix array and ranks with its inverse. Both must have length
// len(text)+1.
func sortSuffixes[S constraints.Ordered](text []S, addresses, ranks []int32, s *sorter, logger *slog.Logger) {
	n1 := len(text) + 1
	initialGroups(text, ranks)

	entries := make([]entry, n1)
	for i := range entries {
		entries[i].addr = int32(i)
	}

	for h := 1; ; h <<= 1 {
		for k := range entries {
			e := &entries[k]
			e.group = ranks[e.addr]
			e.next = sentinelGroup
			if j := int(e.addr) + h; j < n1 {
				e.next = ranks[j]
			}
		}

		s.sort(entries)

		distinct, start := 1, 0
		ranks[entries[0].addr] = 0
		for k := 1; k < n1; k++ {
			if compareEntries(entries[k-1], entries[k]) != 0 {
				start = k
				distinct++
			}
			ranks[entries[k].addr] = int32(start)
		}

		dumpRound(logger, h, distinct, entries)
		if distinct == n1 {
			break
		}
	}

	for k, e := range entries {
		addresses[k] = e.addr
	}
}

func dumpRound(logger *slog.Logger, h, distinct int, entries []entry) {
	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	attrs := []slog.Attr{
		slog.Int("h", h),
		slog.Int("groups", distinct),
		slog.Int("positions", len(entries)),
	}
	if len(entries) <= dumpLimit {
		var sb strings.Builder
		for k, e := range entries {
			if k > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "(%d,%d,%d)", e.group, e.next, e.addr)
		}
		attrs = append(attrs, slog.String("table", sb.String()))
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "suffix sort round", attrs...)
}

// sorter orders the working table once per round. With more than one
// worker the table is cut into chunks that are sorted concurrently and
// then merged pairwise, one merge level at a time.
type sorter struct {
	workers int
	buf     []entry
}

func newSorter(workers int) *sorter {
	if workers < 1 {
		workers = 1
	}
	return &sorter{workers: workers}
}

type run struct{ lo, hi int }

func (s *sorter) sort(entries []entry) {
	if s.workers == 1 || len(entries) < parallelThreshold {
		slices.SortFunc(entries, compareEntries)
		return
	}

	chunk := (len(entries) + s.workers - 1) / s.workers
	runs := make([]run, 0, s.workers)
	var g errgroup.Group
	g.SetLimit(s.workers)
	for lo := 0; lo < len(entries); lo += chunk {
		part := entries[lo:min(lo+chunk, len(entries))]
		runs = append(runs, run{lo, lo + len(part)})
		g.Go(func() error {
			slices.SortFunc(part, compareEntries)
			return nil
		})
	}
	_ = g.Wait()

	if cap(s.buf) < len(entries) {
		s.buf = make([]entry, len(entries))
	}
	src, dst := entries, s.buf[:len(entries)]
	for len(runs) > 1 {
		next := make([]run, 0, (len(runs)+1)/2)
		for i := 0; i < len(runs); i += 2 {
			if i+1 == len(runs) {
				r := runs[i]
				copy(dst[r.lo:r.hi], src[r.lo:r.hi])
				next = append(next, r)
				continue
			}
			a, b := runs[i], runs[i+1]
			g.Go(func() error {
				mergeEntries(dst[a.lo:b.hi], src[a.lo:a.hi], src[b.lo:b.hi])
				return nil
			})
			next = append(next, run{a.lo, b.hi})
		}
		_ = g.Wait()
		src, dst = dst, src
		runs = next
	}
	if &src[0] != &entries[0] {
		copy(entries, src)
	}
}

// mergeEntries merges the sorted slices a and b into dst, which must
// have room for both. Ties take from a first.
func mergeEntries(dst, a, b []entry) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if compareEntries(b[j], a[i]) < 0 {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}
