package suffixindex

import (
	"cmp"
	"sort"
)

// Lookup returns up to k offsets at which pattern occurs, in rank order.
// All occurrences are returned when k < 0. The result is nil for an
// empty pattern or k == 0.
func (x *Index[S]) Lookup(pattern []S, k int) []int {
	if len(pattern) == 0 || k == 0 {
		return nil
	}
	l, r := x.findBoundaries(pattern)
	if l == -1 {
		return nil
	}
	if k < 0 || k > r-l+1 {
		k = r - l + 1
	}
	offsets := make([]int, k)
	for i := range offsets {
		offsets[i] = int(x.addresses[l+i])
	}
	return offsets
}

// Count returns the number of occurrences of pattern.
func (x *Index[S]) Count(pattern []S) int {
	if len(pattern) == 0 {
		return 0
	}
	l, r := x.findBoundaries(pattern)
	if l == -1 {
		return 0
	}
	return r - l + 1
}

// comparePrefix compares pattern with the suffix at offset i, looking at
// no more than len(pattern) symbols. It returns 0 when pattern is a
// prefix of the suffix.
func (x *Index[S]) comparePrefix(pattern []S, i int) int {
	suffix := x.text[i:]
	for j, p := range pattern {
		if j == len(suffix) {
			// The sentinel is smaller than p.
			return 1
		}
		if c := cmp.Compare(p, suffix[j]); c != 0 {
			return c
		}
	}
	return 0
}

// findBoundaries returns the inclusive rank range [l, r] of the suffixes
// having pattern as a prefix, or -1, -1 when there is none.
func (x *Index[S]) findBoundaries(pattern []S) (int, int) {
	n := len(x.addresses)

	// first rank whose suffix is >= pattern
	l := sort.Search(n, func(r int) bool {
		return x.comparePrefix(pattern, int(x.addresses[r])) <= 0
	})
	if l == n || x.comparePrefix(pattern, int(x.addresses[l])) != 0 {
		return -1, -1
	}

	// The matches form a run starting at l: T T T F F F. Search for the
	// first rank after l that no longer has pattern as a prefix.
	r := sort.Search(n-l, func(i int) bool {
		if i == 0 {
			return false
		}
		if x.lcpRMQ != nil {
			lcp := x.lcp[x.lcpRMQ.Query(l+1, l+i)]
			return int(lcp) < len(pattern)
		}
		return x.comparePrefix(pattern, int(x.addresses[l+i])) != 0
	})

	return l, l + r - 1
}
