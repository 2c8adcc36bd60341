package models

import "unicode/utf8"

// TextUnit is an immutable view of one input string with stable Unicode
// code-point offsets. Detectors work on the raw string (regex offsets are
// byte-based) and project their matches into code-point space through it,
// so pattern and model spans share one offset space.
type TextUnit struct {
	content string
	runes   []rune
	// runeAt maps a byte offset into content to the index of the code
	// point starting at (or containing) that byte. Length is len(content)+1
	// so the end offset of a match maps cleanly.
	runeAt []int
}

// NewTextUnit builds a TextUnit from s.
func NewTextUnit(s string) *TextUnit {
	u := &TextUnit{
		content: s,
		runes:   []rune(s),
		runeAt:  make([]int, len(s)+1),
	}
	ri := 0
	for bi := 0; bi < len(s); {
		_, size := utf8.DecodeRuneInString(s[bi:])
		for k := 0; k < size; k++ {
			u.runeAt[bi+k] = ri
		}
		bi += size
		ri++
	}
	u.runeAt[len(s)] = ri
	return u
}

// String returns the original text.
func (u *TextUnit) String() string { return u.content }

// Len returns the number of Unicode code points.
func (u *TextUnit) Len() int { return len(u.runes) }

// Slice returns the substring covering the half-open code-point range
// [start, end). Out-of-range offsets are clamped.
func (u *TextUnit) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(u.runes) {
		end = len(u.runes)
	}
	if start >= end {
		return ""
	}
	return string(u.runes[start:end])
}

// RuneOffset converts a byte offset into content to a code-point offset.
func (u *TextUnit) RuneOffset(byteOff int) int {
	if byteOff < 0 {
		return 0
	}
	if byteOff >= len(u.runeAt) {
		return len(u.runes)
	}
	return u.runeAt[byteOff]
}
