package squall

import "sort"

// LineMap indexes the line structure of a source text so byte offsets can
// be converted to zero-based line and character positions and back.
// Character positions are measured in UTF-16 code units, which is what
// editor protocols expect; runes at or above U+10000 count as two units.
type LineMap struct {
	text   string
	starts []int // byte offset of each line start, starts[0] == 0
}

// NewLineMap builds a line index for text.
func NewLineMap(text string) *LineMap {
	lm := &LineMap{text: text, starts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lm.starts = append(lm.starts, i+1)
		}
	}
	return lm
}

// LineCount returns the number of lines, counting a trailing line after a
// final newline.
func (lm *LineMap) LineCount() int {
	return len(lm.starts)
}

// Position converts a byte offset to a zero-based line and UTF-16
// character pair. Offsets outside the text are clamped.
func (lm *LineMap) Position(offset int) (line, character int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(lm.text) {
		offset = len(lm.text)
	}
	line = sort.Search(len(lm.starts), func(i int) bool {
		return lm.starts[i] > offset
	}) - 1
	character = utf16Len(lm.text[lm.starts[line]:offset])
	return line, character
}

// Offset converts a zero-based line and UTF-16 character pair to a byte
// offset. Lines past the end map to the text length; characters past the
// end of their line clamp to the line end.
func (lm *LineMap) Offset(line, character int) int {
	if line < 0 {
		return 0
	}
	if line >= len(lm.starts) {
		return len(lm.text)
	}
	start := lm.starts[line]
	end := len(lm.text)
	if line+1 < len(lm.starts) {
		end = lm.starts[line+1] - 1 // exclude the newline
	}
	if end > start && lm.text[end-1] == '\r' {
		end--
	}
	return start + utf16ToByte(lm.text[start:end], character)
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// utf16ToByte converts a UTF-16 code unit offset within s to a byte
// offset, clamping to the bounds of s.
func utf16ToByte(s string, u int) int {
	if u <= 0 {
		return 0
	}
	count := 0
	for i, r := range s {
		if count >= u {
			return i
		}
		if r >= 0x10000 {
			count += 2
		} else {
			count++
		}
	}
	return len(s)
}
