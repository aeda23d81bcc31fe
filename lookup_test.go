package suffixindex

import (
	"bytes"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func naiveOccurrences(text, pattern []byte) []int {
	var res []int
	for i := 0; i+len(pattern) <= len(text); i++ {
		if bytes.Equal(text[i:i+len(pattern)], pattern) {
			res = append(res, i)
		}
	}
	return res
}

func TestLookupBasic(t *testing.T) {
	text := []byte("mississippi")
	x, err := New(text)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		pattern string
		k       int
		want    []int
	}{
		{"issi", -1, []int{4, 1}},
		{"ss", -1, []int{5, 2}},
		{"i", -1, []int{10, 7, 4, 1}},
		{"i", 2, []int{10, 7}},
		{"mississippi", -1, []int{0}},
		{"mississippix", -1, nil},
		{"x", -1, nil},
		{"", -1, nil},
		{"p", 0, nil},
	}

	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			got := x.Lookup([]byte(tc.pattern), tc.k)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Lookup(%q, %d) (-want +got):\n%s", tc.pattern, tc.k, diff)
			}
		})
	}

	if got := x.Count([]byte("s")); got != 4 {
		t.Errorf("Count(s) = %d, want 4", got)
	}
	if got := x.Count(nil); got != 0 {
		t.Errorf("Count(nil) = %d, want 0", got)
	}
}

func TestLookupRandom(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	text := randText(r, 1000, 3)
	withRMQ, err := New(text)
	if err != nil {
		t.Fatal(err)
	}
	withoutRMQ, err := NewBuilder(text).SkipRMQ().Build()
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 200; i++ {
		var pattern []byte
		if i%2 == 0 {
			start := r.Intn(len(text))
			pattern = text[start:min(len(text), start+1+r.Intn(8))]
		} else {
			pattern = randText(r, 1+r.Intn(6), 3)
		}
		want := naiveOccurrences(text, pattern)
		for name, x := range map[string]*Index[byte]{"rmq": withRMQ, "direct": withoutRMQ} {
			got := x.Lookup(pattern, -1)
			slices.Sort(got)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("%s: Lookup(%q) (-want +got):\n%s", name, pattern, diff)
			}
			if c := x.Count(pattern); c != len(want) {
				t.Fatalf("%s: Count(%q) = %d, want %d", name, pattern, c, len(want))
			}
		}
	}
}
