package domain

import (
	"sort"
	"strings"
)

// Tape is an unbounded track of symbols. Only written cells are stored; every
// other position reads as the blank symbol.
type Tape struct {
	blank string
	cells map[int]string
	input string
}

// NewTape creates a tape whose cells 0..len(input)-1 hold input.
func NewTape(blank string, input ...string) *Tape {
	t := &Tape{
		blank: blank,
		cells: make(map[int]string, len(input)),
		input: strings.Join(input, ""),
	}
	for i, sym := range input {
		t.cells[i] = sym
	}
	return t
}

// Blank returns the symbol of unwritten cells.
func (t *Tape) Blank() string {
	return t.blank
}

// Input returns the concatenated initial content the tape was created with.
func (t *Tape) Input() string {
	return t.input
}

// Read returns the symbol at pos without touching the store.
func (t *Tape) Read(pos int) string {
	if sym, ok := t.cells[pos]; ok {
		return sym
	}
	return t.blank
}

// Write stores sym at pos.
func (t *Tape) Write(pos int, sym string) {
	t.cells[pos] = sym
}

// Len is the number of stored cells, blanks included.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Bounds returns the lowest and highest stored positions. ok is false for an
// empty tape.
func (t *Tape) Bounds() (lo, hi int, ok bool) {
	for pos := range t.cells {
		if !ok {
			lo, hi, ok = pos, pos, true
			continue
		}
		lo = min(lo, pos)
		hi = max(hi, pos)
	}
	return lo, hi, ok
}

// Cells returns a copy of the stored cells.
func (t *Tape) Cells() map[int]string {
	out := make(map[int]string, len(t.cells))
	for k, v := range t.cells {
		out[k] = v
	}
	return out
}

func (t *Tape) positions() []int {
	keys := make([]int, 0, len(t.cells))
	for k := range t.cells {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// String concatenates the stored cells in position order, blanks included.
func (t *Tape) String() string {
	var sb strings.Builder
	for _, pos := range t.positions() {
		sb.WriteString(t.cells[pos])
	}
	return sb.String()
}

// Stripped concatenates the stored cells in position order, skipping blanks.
func (t *Tape) Stripped() string {
	var sb strings.Builder
	for _, pos := range t.positions() {
		if sym := t.cells[pos]; sym != t.blank {
			sb.WriteString(sym)
		}
	}
	return sb.String()
}

// Head is the read/write position on one tape.
type Head struct {
	Position int `json:"position"`
}

// Move shifts the head by the direction's displacement.
func (h *Head) Move(d Direction) {
	h.Position += d.Offset()
}

// TapeSnapshot is a copy of one tape and its head at a point in time.
type TapeSnapshot struct {
	Blank string         `json:"blank"`
	Cells map[int]string `json:"cells"`
	Head  int            `json:"head"`
}

// Snapshot copies t together with the head position.
func (t *Tape) Snapshot(h *Head) TapeSnapshot {
	return TapeSnapshot{Blank: t.blank, Cells: t.Cells(), Head: h.Position}
}

// Read returns the symbol at pos.
func (s TapeSnapshot) Read(pos int) string {
	if sym, ok := s.Cells[pos]; ok {
		return sym
	}
	return s.Blank
}

// Window returns the range covering every stored cell and the head, widened
// by margin on both sides.
func (s TapeSnapshot) Window(margin int) (lo, hi int) {
	lo, hi = s.Head, s.Head
	for pos := range s.Cells {
		lo = min(lo, pos)
		hi = max(hi, pos)
	}
	return lo - margin, hi + margin
}
