package hlkit

import (
	"context"
	"fmt"

	"github.com/hlkit/hlkit/pkg/errors"
)

type lineCache struct {
	valid bool
	text  string // text the entry was computed for
	start RegionState
	end   RegionState
	spans []Span
}

// Session owns the highlighting cache for one open document. It is
// exclusive to that document's editing session: a Session is not
// synchronized and must not be shared across goroutines. The underlying
// definition and registry are immutable and may be shared freely.
type Session struct {
	def        *LanguageDefinition
	lines      []string
	cache      []lineCache
	clean      int // lines [0, clean) have verified cache entries
	recomputed int
}

// NewSession creates a session over the document's initial lines.
func NewSession(def *LanguageDefinition, lines []string) *Session {
	s := &Session{def: def}
	s.SetLines(lines)

	return s
}

// SetLines replaces the whole document, discarding all cached state.
func (s *Session) SetLines(lines []string) {
	s.lines = append([]string(nil), lines...)
	s.cache = make([]lineCache, len(s.lines))
	s.clean = 0
}

// Lines returns the number of lines in the document.
func (s *Session) Lines() int {
	return len(s.lines)
}

// Line returns the text of line i.
func (s *Session) Line(i int) (string, error) {
	if i < 0 || i >= len(s.lines) {
		return "", fmt.Errorf("%d: %w", i, errors.ErrInvalidLine)
	}

	return s.lines[i], nil
}

// Edit replaces the text of line i. Cached results for lines >= i become
// unverified; verification stops at convergence on the next Spans call.
func (s *Session) Edit(i int, text string) error {
	if i < 0 || i >= len(s.lines) {
		return fmt.Errorf("%d: %w", i, errors.ErrInvalidLine)
	}

	s.lines[i] = text
	s.invalidateFrom(i)

	return nil
}

// InsertLine inserts text as the new line i, shifting later lines down.
// i may equal Lines() to append.
func (s *Session) InsertLine(i int, text string) error {
	if i < 0 || i > len(s.lines) {
		return fmt.Errorf("%d: %w", i, errors.ErrInvalidLine)
	}

	s.lines = append(s.lines[:i], append([]string{text}, s.lines[i:]...)...)
	s.cache = append(s.cache[:i], append([]lineCache{{}}, s.cache[i:]...)...)
	s.invalidateFrom(i)

	return nil
}

// DeleteLine removes line i, shifting later lines up.
func (s *Session) DeleteLine(i int) error {
	if i < 0 || i >= len(s.lines) {
		return fmt.Errorf("%d: %w", i, errors.ErrInvalidLine)
	}

	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.cache = append(s.cache[:i], s.cache[i+1:]...)
	s.invalidateFrom(i)

	return nil
}

func (s *Session) invalidateFrom(i int) {
	if s.clean > i {
		s.clean = i
	}
}

// Spans returns the styled spans for lines [from, to), recomputing the
// dependency chain from the last verified line first. ctx cancels a pass
// that has been superseded; the cache never holds results that disagree
// with the current document text, so a canceled pass leaves it merely
// shorter, never wrong.
//
// Callers wanting chunked styling ask for the visible range first and
// extend in later calls; verification resumes where it stopped.
func (s *Session) Spans(ctx context.Context, from, to int) ([][]Span, error) {
	if from < 0 || to < from || to > len(s.lines) {
		return nil, fmt.Errorf("[%d, %d): %w", from, to, errors.ErrInvalidLine)
	}

	err := s.ensure(ctx, to-1)
	if err != nil {
		return nil, err
	}

	ret := make([][]Span, to-from)
	for i := from; i < to; i++ {
		ret[i-from] = s.cache[i].spans
	}

	return ret, nil
}

// StateAt returns the region state at the start of line i, verifying the
// dependency chain up to i first.
func (s *Session) StateAt(ctx context.Context, i int) (RegionState, error) {
	if i < 0 || i >= len(s.lines) {
		return RegionState{}, fmt.Errorf("%d: %w", i, errors.ErrInvalidLine)
	}

	err := s.ensure(ctx, i)
	if err != nil {
		return RegionState{}, err
	}

	return s.cache[i].start, nil
}

// ensure verifies cache entries for lines [0, upto]. A cache entry is
// reusable when it was computed for the same text and the same starting
// region state; the first reusable entry after an edit is the convergence
// point, and everything past it is accepted without recomputation.
func (s *Session) ensure(ctx context.Context, upto int) error {
	carry := RegionState{}
	if s.clean > 0 {
		carry = s.cache[s.clean-1].end
	}

	for i := s.clean; i < len(s.lines) && i <= upto; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		c := &s.cache[i]

		if c.valid && c.text == s.lines[i] && carry.Equal(c.start) {
			carry = c.end
			s.clean = i + 1

			continue
		}

		spans, end := s.def.TokenizeLine(s.lines[i], carry)

		*c = lineCache{
			valid: true,
			text:  s.lines[i],
			start: carry,
			end:   end,
			spans: spans,
		}

		s.recomputed++
		carry = end
		s.clean = i + 1
	}

	return nil
}
