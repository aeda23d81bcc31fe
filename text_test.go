package suffixindex

import (
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func naiveFind(text, pattern string) []int {
	var res []int
	if pattern == "" {
		return nil
	}
	for i := 0; i+len(pattern) <= len(text); i++ {
		if strings.HasPrefix(text[i:], pattern) {
			res = append(res, i)
		}
	}
	return res
}

func TestTextFindBasic(t *testing.T) {
	text := "Apple banana APP pineapple bandana"
	ti, err := NewTextBuilder(text).Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := ti.Text(); got != strings.ToLower(text) {
		t.Fatalf("Text() = %q", got)
	}

	tests := []struct {
		pattern string
		k       int
	}{
		{"app", -1},
		{"an", 2},
		{"pine", 1},
		{"xyz", 5},
		{"", 10},
		{"App", -1}, // case insensitive
	}

	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			want := naiveFind(ti.Text(), strings.ToLower(tc.pattern))
			if tc.k >= 0 && len(want) > tc.k {
				want = want[:tc.k]
				// Truncated results come in rank order; compare only the count.
				if got := ti.Find(tc.pattern, tc.k); len(got) != len(want) {
					t.Errorf("Find(%q, %d) returned %d offsets, want %d", tc.pattern, tc.k, len(got), len(want))
				}
				return
			}
			got := ti.Find(tc.pattern, tc.k)
			slices.Sort(got)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Find(%q) (-want +got):\n%s", tc.pattern, diff)
			}
		})
	}

	if got := ti.Count("APP"); got != 3 {
		t.Errorf("Count(APP) = %d, want 3", got)
	}
}

func TestTextOptions(t *testing.T) {
	// "Café" with a precomposed é, "café" with a combining accent.
	text := "Caf\u00e9 cafe CAFE cafe\u0301 \u00e9lite"

	sensitive, err := NewTextBuilder(text).CaseSensitive().SkipNormalization().Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := sensitive.Count("cafe"); got != 2 {
		t.Errorf("case sensitive Count(cafe) = %d, want 2", got)
	}
	if got := sensitive.Count("Caf\u00e9"); got != 1 {
		t.Errorf("unnormalized Count(Café) = %d, want 1", got)
	}

	folded, err := NewTextBuilder(text).Build()
	if err != nil {
		t.Fatal(err)
	}
	// Folding matches CAFE, NFC merges the combining accent into é.
	if got := folded.Count("caf\u00e9"); got != 2 {
		t.Errorf("default Count(café) = %d, want 2", got)
	}
	if got := folded.Count("CAFE"); got != 2 {
		t.Errorf("default Count(CAFE) = %d, want 2", got)
	}
}

func TestTextInvalidUTF8(t *testing.T) {
	_, err := NewTextBuilder("ok\xffnot ok").Build()
	if err != ErrInvalidUTF8 {
		t.Fatalf("Build() error = %v, want %v", err, ErrInvalidUTF8)
	}
}

func TestTextLongestRepeat(t *testing.T) {
	ti, err := NewTextBuilder("the cat and The Hat").Parallel(2).Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := ti.LongestRepeat(); got != "the " {
		t.Errorf("LongestRepeat() = %q, want %q", got, "the ")
	}
}

func FuzzTextFind(f *testing.F) {
	f.Add("apple banana app pineapple bandana", "app")
	f.Add("hello world 😂🙈🙉🙊 hell", "😂")

	f.Fuzz(func(t *testing.T, text, pattern string) {
		if !utf8.ValidString(text) || !utf8.ValidString(pattern) || len(text) > 1000 || len(pattern) > 100 {
			return
		}
		ti, err := NewTextBuilder(text).CaseSensitive().SkipNormalization().Build()
		if err != nil {
			t.Fatal(err)
		}
		got := ti.Find(pattern, -1)
		slices.Sort(got)
		if diff := cmp.Diff(naiveFind(text, pattern), got); diff != "" {
			t.Errorf("Find(%q) (-want +got):\n%s", pattern, diff)
		}
	})
}
