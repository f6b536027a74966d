package squall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineMapLineCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 1},
		{"one line", 1},
		{"a\nb", 2},
		{"a\nb\n", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewLineMap(tt.text).LineCount(), "text %q", tt.text)
	}
}

func TestLineMapPosition(t *testing.T) {
	lm := NewLineMap("ab\ncd\n")

	line, ch := lm.Position(0)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, ch)

	line, ch = lm.Position(4)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, ch)

	// The newline byte belongs to the line it ends.
	line, ch = lm.Position(2)
	assert.Equal(t, 0, line)
	assert.Equal(t, 2, ch)
}

func TestLineMapPositionClamps(t *testing.T) {
	lm := NewLineMap("ab\ncd")

	line, ch := lm.Position(-3)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, ch)

	line, ch = lm.Position(99)
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, ch)
}

func TestLineMapOffset(t *testing.T) {
	lm := NewLineMap("ab\ncd\n")

	assert.Equal(t, 0, lm.Offset(0, 0))
	assert.Equal(t, 4, lm.Offset(1, 1))

	// Characters past the line end clamp to the end, excluding the
	// newline byte.
	assert.Equal(t, 2, lm.Offset(0, 99))

	assert.Equal(t, 0, lm.Offset(-1, 5))
	assert.Equal(t, 6, lm.Offset(9, 0))
}

func TestLineMapOffsetClampExcludesCarriageReturn(t *testing.T) {
	lm := NewLineMap("ab\r\ncd\r\n")

	// A clamped character offset stays on visible text, before the \r.
	assert.Equal(t, 2, lm.Offset(0, 99))
	assert.Equal(t, 6, lm.Offset(1, 99))

	line, ch := lm.Position(4)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, ch)
}

func TestLineMapCountsAstralRunesAsTwoUnits(t *testing.T) {
	// U+10348 occupies four bytes but two UTF-16 code units.
	text := "a\U00010348b\n"
	lm := NewLineMap(text)

	line, ch := lm.Position(5)
	assert.Equal(t, 0, line)
	assert.Equal(t, 3, ch)

	assert.Equal(t, 1, lm.Offset(0, 1))
	assert.Equal(t, 5, lm.Offset(0, 3))
}

func TestLineMapRoundTrip(t *testing.T) {
	text := "let a = 1\nlet é = \"café\"\nprint(é)\n"
	lm := NewLineMap(text)
	for offset := 0; offset <= len(text); offset++ {
		if offset < len(text) && text[offset]&0xc0 == 0x80 {
			continue // not a rune boundary
		}
		line, ch := lm.Position(offset)
		assert.Equal(t, offset, lm.Offset(line, ch), "offset %d", offset)
	}
}
