// Package scanner provides string-boundary-aware scanning over spreadsheet
// formula text. Formula string literals are double-quoted, with a doubled
// quote ("") as the escaped quote character. Tracking those spans here means
// reference extraction and formula rewriting never have to re-implement the
// bookkeeping, and never match cell-reference lookalikes inside literals.
package scanner

// FormulaScanner iterates byte-by-byte over formula text, tracking string
// literal boundaries. Callers check InString() instead of maintaining their
// own in-string/escaped flags.
//
// InString() returns true for the entire literal span including both the
// opening and closing delimiters.
type FormulaScanner struct {
	src     string
	pos     int
	inStr   bool
	closing bool // the byte just returned closed a literal
	escaped bool // the byte about to be returned is the second quote of ""
}

// New creates a FormulaScanner for the given formula text.
// Call Next() to advance to the first byte.
func New(src string) *FormulaScanner {
	return &FormulaScanner{src: src, pos: -1}
}

// Next advances to the next byte, updating literal state.
// Returns the byte and true, or (0, false) at end of input.
func (s *FormulaScanner) Next() (byte, bool) {
	s.closing = false
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]
	if s.escaped {
		s.escaped = false
		return ch, true
	}
	if ch == '"' {
		switch {
		case !s.inStr:
			s.inStr = true
		case s.pos+1 < len(s.src) && s.src[s.pos+1] == '"':
			// "" inside a literal is an escaped quote, not a close.
			s.escaped = true
		default:
			s.inStr = false
			s.closing = true
		}
	}
	return ch, true
}

// InString reports whether the current position is inside a string literal,
// including both opening and closing delimiters.
func (s *FormulaScanner) InString() bool {
	return s.inStr || s.closing
}

// Pos returns the current byte offset (the position of the last byte
// returned by Next). Returns -1 before the first call to Next.
func (s *FormulaScanner) Pos() int { return s.pos }

// Peek returns the next byte without advancing, or (0, false) at end.
func (s *FormulaScanner) Peek() (byte, bool) {
	if s.pos+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+1], true
}

// MaskLiterals returns src with every byte inside a string literal
// (delimiters included) replaced by mask. Byte offsets are preserved, so
// pattern matches found on the masked text map directly back to src.
func MaskLiterals(src string, mask byte) string {
	out := []byte(src)
	sc := New(src)
	for _, ok := sc.Next(); ok; _, ok = sc.Next() {
		if sc.InString() {
			out[sc.Pos()] = mask
		}
	}
	return string(out)
}
