package editor

import "strings"

// buffer is a line-oriented text buffer with a cursor. Columns are rune
// indexes into the current line.
type buffer struct {
	lines [][]rune
	row   int
	col   int
}

func newBuffer(text string) *buffer {
	b := &buffer{}
	b.setText(text)
	return b
}

func (b *buffer) setText(text string) {
	parts := strings.Split(text, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.row, b.col = 0, 0
}

func (b *buffer) text() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// offset returns the cursor position as a rune offset into text().
func (b *buffer) offset() int {
	n := 0
	for i := 0; i < b.row; i++ {
		n += len(b.lines[i]) + 1
	}
	return n + b.col
}

// setOffset moves the cursor to a rune offset, clamped to the text.
func (b *buffer) setOffset(pos int) {
	if pos < 0 {
		pos = 0
	}
	for i, l := range b.lines {
		if pos <= len(l) {
			b.row, b.col = i, pos
			return
		}
		pos -= len(l) + 1
	}
	b.row = len(b.lines) - 1
	b.col = len(b.lines[b.row])
}

func (b *buffer) insert(rs []rune) {
	for _, r := range rs {
		if r == '\n' {
			b.newline()
			continue
		}
		line := b.lines[b.row]
		next := make([]rune, 0, len(line)+1)
		next = append(next, line[:b.col]...)
		next = append(next, r)
		next = append(next, line[b.col:]...)
		b.lines[b.row] = next
		b.col++
	}
}

func (b *buffer) newline() {
	line := b.lines[b.row]
	head := append([]rune(nil), line[:b.col]...)
	tail := append([]rune(nil), line[b.col:]...)

	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:b.row]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.lines[b.row+1:]...)
	b.lines = lines
	b.row++
	b.col = 0
}

func (b *buffer) backspace() {
	switch {
	case b.col > 0:
		line := b.lines[b.row]
		b.lines[b.row] = append(line[:b.col-1:b.col-1], line[b.col:]...)
		b.col--
	case b.row > 0:
		prev := b.lines[b.row-1]
		b.col = len(prev)
		b.lines[b.row-1] = append(prev[:len(prev):len(prev)], b.lines[b.row]...)
		b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
		b.row--
	}
}

func (b *buffer) deleteForward() {
	line := b.lines[b.row]
	switch {
	case b.col < len(line):
		b.lines[b.row] = append(line[:b.col:b.col], line[b.col+1:]...)
	case b.row < len(b.lines)-1:
		b.lines[b.row] = append(line[:len(line):len(line)], b.lines[b.row+1]...)
		b.lines = append(b.lines[:b.row+1], b.lines[b.row+2:]...)
	}
}

func (b *buffer) left() {
	switch {
	case b.col > 0:
		b.col--
	case b.row > 0:
		b.row--
		b.col = len(b.lines[b.row])
	}
}

func (b *buffer) right() {
	switch {
	case b.col < len(b.lines[b.row]):
		b.col++
	case b.row < len(b.lines)-1:
		b.row++
		b.col = 0
	}
}

func (b *buffer) up() {
	if b.row > 0 {
		b.row--
		b.col = min(b.col, len(b.lines[b.row]))
	}
}

func (b *buffer) down() {
	if b.row < len(b.lines)-1 {
		b.row++
		b.col = min(b.col, len(b.lines[b.row]))
	}
}

func (b *buffer) home() { b.col = 0 }

func (b *buffer) end() { b.col = len(b.lines[b.row]) }
