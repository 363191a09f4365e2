package main

import (
	"strings"

	"github.com/hlkit/hlkit"
	"github.com/muesli/termenv"
	"golang.org/x/exp/utf8string"
)

// renderDocument styles every line of text and returns the rendered lines.
// A trailing newline does not produce an extra empty line.
func renderDocument(output *termenv.Output, def *hlkit.LanguageDefinition, text string) []string {
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	spans := def.Highlight(text)

	ret := make([]string, len(lines))
	for i, line := range lines {
		ret[i] = renderLine(output, line, spans[i])
	}

	return ret
}

// renderLine interleaves unstyled gaps with styled spans. Span offsets are
// rune indexes, so slicing goes through utf8string.
func renderLine(output *termenv.Output, line string, spans []hlkit.Span) string {
	if len(spans) == 0 {
		return line
	}

	us := utf8string.NewString(line)
	buf := strings.Builder{}

	pos := 0
	for _, span := range spans {
		if span.Start > pos {
			buf.WriteString(us.Slice(pos, span.Start))
		}

		styled := output.String(us.Slice(span.Start, span.End)).
			Foreground(output.Color(string(span.Style.Color)))

		if span.Style.Bold {
			styled = styled.Bold()
		}

		if span.Style.Italic {
			styled = styled.Italic()
		}

		buf.WriteString(styled.String())
		pos = span.End
	}

	if pos < us.RuneCount() {
		buf.WriteString(us.Slice(pos, us.RuneCount()))
	}

	return buf.String()
}
