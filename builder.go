package suffixindex

import (
	"errors"
	"log/slog"
	"math"

	"github.com/viniciusth/rmq"
	"golang.org/x/exp/constraints"
)

var (
	ErrInputTooLarge = errors.New("suffixindex: input length does not fit the int32 index type")
)

// maxLen is the longest input whose n+1 suffixes can be addressed
// with int32 offsets and ranks.
const maxLen = math.MaxInt32 - 1

type Builder[S constraints.Ordered] struct {
	text    []S
	workers int
	logger  *slog.Logger
	useRMQ  bool
}

func NewBuilder[S constraints.Ordered](text []S) *Builder[S] {
	return &Builder[S]{
		text:    text,
		workers: 1,
		logger:  slog.New(slog.DiscardHandler),
		useRMQ:  true,
	}
}

// Sorts each doubling round with up to workers goroutines.
// The result is identical to the sequential build.
func (b *Builder[S]) Parallel(workers int) *Builder[S] {
	b.workers = max(workers, 1)
	return b
}

// Sends a debug record for every doubling round to logger.
// Inputs of up to 32 symbols also get their whole working table dumped.
func (b *Builder[S]) Logger(logger *slog.Logger) *Builder[S] {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Skips the range-minimum structure over the LCP array.
// CommonPrefix and Lookup then compare symbols directly instead.
// Saves O(n) memory.
func (b *Builder[S]) SkipRMQ() *Builder[S] {
	b.useRMQ = false
	return b
}

func (b *Builder[S]) Build() (*Index[S], error) {
	if len(b.text) > maxLen {
		return nil, ErrInputTooLarge
	}

	n1 := len(b.text) + 1
	addresses := make([]int32, n1)
	ranks := make([]int32, n1)
	sortSuffixes(b.text, addresses, ranks, newSorter(b.workers), b.logger)
	lcp := buildLCP(b.text, addresses, ranks)

	var lcpRMQ *rmq.RMQHybridNaive[int32]
	if b.useRMQ {
		lcpRMQ = rmq.NewRMQHybridNaive(lcp)
	}
	b.logger.Debug("suffix index built", "symbols", len(b.text), "rmq", b.useRMQ)

	return &Index[S]{
		text:      b.text,
		addresses: addresses,
		lcp:       lcp,
		ranks:     ranks,
		lcpRMQ:    lcpRMQ,
	}, nil
}
