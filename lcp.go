package suffixindex

import "golang.org/x/exp/constraints"

// Kasai's algorithm for building the LCP array in O(n) time.
// lcp[r] is the common prefix length of the suffixes ranked r and r-1;
// lcp[0] stays 0. Reads past the end of text hit the sentinel, which
// never matches a real symbol.
func buildLCP[S constraints.Ordered](text []S, addresses, ranks []int32) []int32 {
	n := len(text)
	lcp := make([]int32, len(addresses))
	h := 0
	for i := 0; i <= n; i++ {
		r := ranks[i]
		if r == 0 {
			h = 0
			continue
		}
		j := int(addresses[r-1])
		for i+h < n && j+h < n && text[i+h] == text[j+h] {
			h++
		}
		lcp[r] = int32(h)
		if h > 0 {
			h--
		}
	}
	return lcp
}
