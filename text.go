package suffixindex

import (
	"errors"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidUTF8 = errors.New("suffixindex: invalid UTF-8 encoding in input text")
)

type TextBuilder struct {
	text          string
	workers       int
	logger        *slog.Logger
	caseSensitive bool
	normalize     bool
}

func NewTextBuilder(text string) *TextBuilder {
	return &TextBuilder{
		text:          text,
		workers:       1,
		caseSensitive: false,
		normalize:     true,
	}
}

// Makes the search case sensitive.
func (b *TextBuilder) CaseSensitive() *TextBuilder {
	b.caseSensitive = true
	return b
}

// Skips the normalization of the text with NFC.
func (b *TextBuilder) SkipNormalization() *TextBuilder {
	b.normalize = false
	return b
}

func (b *TextBuilder) Parallel(workers int) *TextBuilder {
	b.workers = workers
	return b
}

func (b *TextBuilder) Logger(logger *slog.Logger) *TextBuilder {
	b.logger = logger
	return b
}

func (b *TextBuilder) Build() (*TextIndex, error) {
	if !utf8.ValidString(b.text) {
		return nil, ErrInvalidUTF8
	}

	prepared := []byte(applyTransforms(b.text, b.caseSensitive, b.normalize))
	index, err := NewBuilder(prepared).Parallel(b.workers).Logger(b.logger).Build()
	if err != nil {
		return nil, err
	}
	return &TextIndex{
		index:         index,
		caseSensitive: b.caseSensitive,
		normalize:     b.normalize,
	}, nil
}

// TextIndex is a suffix index over UTF-8 text. Offsets it reports are
// byte offsets into Text(), which may differ from the input when case
// folding or normalization changed it.
type TextIndex struct {
	index         *Index[byte]
	caseSensitive bool
	normalize     bool
}

func applyTransforms(text string, caseSensitive bool, normalize bool) string {
	if !caseSensitive {
		text = cases.Fold().String(text)
	}
	if normalize {
		text = norm.NFC.String(text)
	}
	return text
}

// Text returns the indexed text after transforms.
func (t *TextIndex) Text() string { return string(t.index.text) }

func (t *TextIndex) Index() *Index[byte] { return t.index }

// Find returns up to k byte offsets at which pattern occurs, after
// applying the same transforms the text went through. k < 0 returns
// every occurrence.
func (t *TextIndex) Find(pattern string, k int) []int {
	pattern = applyTransforms(pattern, t.caseSensitive, t.normalize)
	return t.index.Lookup([]byte(pattern), k)
}

func (t *TextIndex) Count(pattern string) int {
	pattern = applyTransforms(pattern, t.caseSensitive, t.normalize)
	return t.index.Count([]byte(pattern))
}

// LongestRepeat returns the longest substring of Text() that occurs at
// least twice. The result may end in the middle of a multi-byte rune.
func (t *TextIndex) LongestRepeat() string {
	offset, length := t.index.LongestRepeat()
	return string(t.index.text[offset : offset+length])
}
