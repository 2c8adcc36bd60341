package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextUnitOffsetsASCII(t *testing.T) {
	u := NewTextUnit("hello world")
	assert.Equal(t, 11, u.Len())
	assert.Equal(t, "world", u.Slice(6, 11))
	assert.Equal(t, 6, u.RuneOffset(6))
}

func TestTextUnitOffsetsUmlauts(t *testing.T) {
	// "Müller" has a two-byte ü; byte and code-point offsets diverge.
	u := NewTextUnit("Frau Müller")
	assert.Equal(t, 11, u.Len())
	assert.Equal(t, "Müller", u.Slice(5, 11))

	// Byte offset of the 'M' is 5, of the final 'r' is 11 (one past ü).
	assert.Equal(t, 5, u.RuneOffset(5))
	assert.Equal(t, 10, u.RuneOffset(11))
	assert.Equal(t, 11, u.RuneOffset(12))
}

func TestTextUnitEmpty(t *testing.T) {
	u := NewTextUnit("")
	assert.Equal(t, 0, u.Len())
	assert.Equal(t, "", u.Slice(0, 0))
	assert.Equal(t, 0, u.RuneOffset(0))
}

func TestTextUnitSliceClamps(t *testing.T) {
	u := NewTextUnit("abc")
	assert.Equal(t, "abc", u.Slice(-1, 10))
	assert.Equal(t, "", u.Slice(2, 1))
}
