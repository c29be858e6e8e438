package dawg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/encoding"
)

// Word is one accepted word together with the length of the prefix it
// shares with the word before it. After the last word, Next returns a
// Word with no text and a Prefix of -1.
type Word struct {
	Text   []byte
	Prefix int
}

// End reports whether the word marks the end of the input.
func (w Word) End() bool {
	return w.Prefix < 0
}

var endOfWords = Word{Prefix: -1}

// WordSource supplies words in strictly increasing byte order.
type WordSource interface {
	Next() (Word, error)
}

// WordStream reads one word per line from a text source. Blank lines are
// ignored, lines of the wrong length or with unusable bytes are logged and
// skipped, and a word that does not sort after its predecessor stops the
// stream with ErrOutOfOrder.
type WordStream struct {
	r       *bufio.Reader
	enc     *encoding.Encoder
	maxLine int

	last    []byte
	started bool
	done    bool

	lines   int
	words   int
	skipped int
}

// NewWordStream creates a stream over r using the limits and encoding in cfg.
func NewWordStream(r io.Reader, cfg Config) (*WordStream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enc, err := cfg.encoding()
	if err != nil {
		return nil, err
	}

	s := &WordStream{
		r:       bufio.NewReader(r),
		maxLine: cfg.MaxLine,
	}
	if enc != nil {
		s.enc = enc.NewEncoder()
	}
	return s, nil
}

// Next returns the next valid word.
func (s *WordStream) Next() (Word, error) {
	for !s.done {
		raw, err := s.r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return Word{}, fmt.Errorf("reading line %d: %w", s.lines+1, err)
		}
		if err != nil {
			s.done = true
		}
		if len(raw) == 0 {
			continue
		}

		s.lines++
		line := trimLineEnd(raw)
		if len(line) == 0 {
			continue
		}

		word, err := s.check(line)
		if err != nil {
			s.skipped++
			slog.Warn("Skipping line", "line", s.lines, "text", string(line), "reason", err)
			continue
		}

		if s.started && bytes.Compare(word, s.last) <= 0 {
			return Word{}, fmt.Errorf("%w: %q follows %q on line %d", ErrOutOfOrder, word, s.last, s.lines)
		}

		prefix := commonPrefix(s.last, word)
		s.last = word
		s.started = true
		s.words++

		return Word{Text: word, Prefix: prefix}, nil
	}

	return endOfWords, nil
}

// NumAdded returns the number of words accepted so far.
func (s *WordStream) NumAdded() int {
	return s.words
}

// NumSkipped returns the number of non-blank lines that were rejected.
func (s *WordStream) NumSkipped() int {
	return s.skipped
}

func (s *WordStream) check(line []byte) ([]byte, error) {
	if bytes.IndexByte(line, 0) >= 0 {
		return nil, fmt.Errorf("%w: contains a NUL byte", ErrInvalidWord)
	}

	word := line
	if s.enc != nil {
		var err error
		if word, err = s.enc.Bytes(line); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWord, err)
		}
	}

	if len(word) < 2 || len(word) > s.maxLine-1 {
		return nil, fmt.Errorf("%w: %d bytes", ErrLineLength, len(word))
	}
	return word, nil
}

func trimLineEnd(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

func commonPrefix(a, b []byte) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
