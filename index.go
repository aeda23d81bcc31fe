// Package suffixindex builds suffix arrays, LCP arrays and rank arrays
// over sequences of ordered symbols by prefix doubling, and answers
// substring queries on top of them.
//
// Every sequence is treated as if a sentinel smaller than any symbol
// were appended to it, so an input of length n has n+1 suffixes and the
// empty suffix at offset n always has rank 0.
package suffixindex

import (
	"slices"

	"github.com/viniciusth/rmq"
	"golang.org/x/exp/constraints"
)

// Index is an immutable suffix index. It is safe for concurrent use.
//
// The symbol type must be totally ordered; float inputs must not
// contain NaN.
type Index[S constraints.Ordered] struct {
	text      []S
	addresses []int32
	lcp       []int32
	ranks     []int32
	lcpRMQ    *rmq.RMQHybridNaive[int32]
}

// New builds an index over text with the default options.
// text must not be modified while the index is in use.
func New[S constraints.Ordered](text []S) (*Index[S], error) {
	return NewBuilder(text).Build()
}

// Len returns the number of suffixes, len(text)+1.
func (x *Index[S]) Len() int { return len(x.addresses) }

// AddressOf returns the offset of the suffix with the given rank.
// It panics unless 0 <= rank < Len().
func (x *Index[S]) AddressOf(rank int) int { return int(x.addresses[rank]) }

// LCPOf returns the length of the common prefix between the suffixes
// ranked rank and rank-1. LCPOf(0) is always 0.
// It panics unless 0 <= rank < Len().
func (x *Index[S]) LCPOf(rank int) int { return int(x.lcp[rank]) }

// RankOf returns the rank of the suffix starting at offset.
// It panics unless 0 <= offset < Len().
func (x *Index[S]) RankOf(offset int) int { return int(x.ranks[offset]) }

// Addresses returns a copy of the suffix array.
func (x *Index[S]) Addresses() []int32 { return slices.Clone(x.addresses) }

// LCP returns a copy of the LCP array.
func (x *Index[S]) LCP() []int32 { return slices.Clone(x.lcp) }

// Ranks returns a copy of the rank array.
func (x *Index[S]) Ranks() []int32 { return slices.Clone(x.ranks) }

// CommonPrefix returns the length of the longest common prefix of the
// suffixes starting at offsets a and b.
func (x *Index[S]) CommonPrefix(a, b int) int {
	n := len(x.text)
	if a == b {
		return n - a
	}
	if x.lcpRMQ == nil {
		l := 0
		for a+l < n && b+l < n && x.text[a+l] == x.text[b+l] {
			l++
		}
		return l
	}
	ra, rb := x.RankOf(a), x.RankOf(b)
	return int(x.lcp[x.lcpRMQ.Query(min(ra, rb)+1, max(ra, rb))])
}

// LongestRepeat returns the offset and length of the longest substring
// occurring at least twice. The length is 0 when nothing repeats.
func (x *Index[S]) LongestRepeat() (offset, length int) {
	best := 0
	for r := 1; r < len(x.lcp); r++ {
		if x.lcp[r] > x.lcp[best] {
			best = r
		}
	}
	if x.lcp[best] == 0 {
		return 0, 0
	}
	return int(x.addresses[best]), int(x.lcp[best])
}
