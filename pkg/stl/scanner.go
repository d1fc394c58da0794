package stl

// wordScanner splits a growing text buffer into whitespace-delimited
// words. A word touching the end of the buffer is held back because the
// next chunk may continue it.
type wordScanner struct {
	buf      []byte
	off      int   // start of the unconsumed part of buf
	consumed int64 // total bytes consumed
	line     int

	// a whitespace run reaching the end of buf may continue in the
	// next chunk; its newline is counted once the run ends
	pendingNewline bool
}

func newWordScanner() *wordScanner {
	return &wordScanner{line: 1}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\r', '\n', '\t', '\v', '\f':
		return true
	}
	return false
}

func (s *wordScanner) feed(chunk []byte) {
	if s.off > 0 {
		n := copy(s.buf, s.buf[s.off:])
		s.buf = s.buf[:n]
		s.off = 0
	}
	s.buf = append(s.buf, chunk...)
}

// skipSpace consumes leading whitespace, counting one line per run that
// contains a newline.
func (s *wordScanner) skipSpace() {
	i := s.off
	for i < len(s.buf) && isSpace(s.buf[i]) {
		if s.buf[i] == '\n' {
			s.pendingNewline = true
		}
		i++
	}
	s.consumed += int64(i - s.off)
	s.off = i
	if i < len(s.buf) {
		s.endRun()
	}
}

func (s *wordScanner) endRun() {
	if s.pendingNewline {
		s.line++
		s.pendingNewline = false
	}
}

// next returns the next complete word.
func (s *wordScanner) next() (string, bool) {
	s.skipSpace()
	i := s.off
	for i < len(s.buf) && !isSpace(s.buf[i]) {
		i++
	}
	if i == s.off || i == len(s.buf) {
		return "", false
	}
	word := string(s.buf[s.off:i])
	s.consumed += int64(i - s.off)
	s.off = i
	return word, true
}

// rest drains whatever is left once no more input will arrive. After
// next reported no word, this is at most one word without surrounding
// whitespace.
func (s *wordScanner) rest() string {
	s.skipSpace()
	s.endRun()
	word := string(s.buf[s.off:])
	s.consumed += int64(len(s.buf) - s.off)
	s.buf = s.buf[:0]
	s.off = 0
	return word
}
