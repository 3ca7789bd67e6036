// Package highlight classifies decompiled Java source into colorable spans
// without parsing it. A single left-to-right pass separates comments and
// string literals from plain text; a second pass marks keywords inside the
// plain regions. The result partitions the input with no gaps or overlaps.
package highlight

// Kind classifies one span of source text.
type Kind int

const (
	KindDefault Kind = iota
	KindString
	KindLineComment
	KindBlockComment
	KindKeyword
)

// String returns a short name for the kind, used in logs and test output.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindString:
		return "string"
	case KindLineComment:
		return "line-comment"
	case KindBlockComment:
		return "block-comment"
	case KindKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) of the scanned text.
type Span struct {
	Start int
	End   int
	Kind  Kind
}

// Text returns the substring of src covered by the span.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// lexical states for the first pass
type state int

const (
	stateNormal state = iota
	stateString
	stateLineComment
	stateBlockComment
)

// Scan classifies text into an ordered span sequence covering the whole
// input. Comment and string boundaries are fixed first; keywords are then
// marked only inside the remaining default regions. Unterminated strings
// and comments run to end of text rather than erroring.
func Scan(text string) []Span {
	return markKeywords(text, lex(text))
}

// lex runs the comment/string state machine. Marker pairs ("//", "/*",
// "*/") are consumed atomically with one byte of lookahead, so a marker is
// never split across a span boundary. A string closes on the exact opening
// delimiter; an escaped delimiter still closes it (matching the viewer
// this replaces — see the docs on escape handling).
func lex(text string) []Span {
	var spans []Span
	start := 0

	flush := func(end int, k Kind) {
		if end > start {
			spans = append(spans, Span{Start: start, End: end, Kind: k})
		}
		start = end
	}

	st := stateNormal
	var delim byte

	for i := 0; i < len(text); i++ {
		c := text[i]
		var next byte
		if i+1 < len(text) {
			next = text[i+1]
		}

		switch st {
		case stateNormal:
			switch {
			case c == '/' && next == '*':
				flush(i, KindDefault)
				st = stateBlockComment
				i++
			case c == '/' && next == '/':
				flush(i, KindDefault)
				st = stateLineComment
				i++
			case c == '"' || c == '\'':
				flush(i, KindDefault)
				st = stateString
				delim = c
			}
		case stateString:
			if c == delim {
				flush(i+1, KindString)
				st = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				flush(i+1, KindLineComment)
				st = stateNormal
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				flush(i+2, KindBlockComment)
				st = stateNormal
				i++
			}
		}
	}

	// Trailing text keeps whatever state was active at end of input.
	switch st {
	case stateString:
		flush(len(text), KindString)
	case stateLineComment:
		flush(len(text), KindLineComment)
	case stateBlockComment:
		flush(len(text), KindBlockComment)
	default:
		flush(len(text), KindDefault)
	}

	return spans
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// markKeywords scans the full text for maximal identifier runs and
// reclassifies those matching the keyword set, provided the whole run lies
// inside a default span. Runs inside strings or comments are left alone.
// Word boundaries fall out of the runs being maximal.
func markKeywords(text string, spans []Span) []Span {
	var out []Span
	si := 0 // cursor into spans, advanced monotonically

	i := 0
	// keyword ranges per span index
	matches := make(map[int][]Span)
	for i < len(text) {
		if !isWordByte(text[i]) {
			i++
			continue
		}
		a := i
		for i < len(text) && isWordByte(text[i]) {
			i++
		}
		if !keywords[text[a:i]] {
			continue
		}
		for si < len(spans) && spans[si].End <= a {
			si++
		}
		if si < len(spans) && spans[si].Kind == KindDefault &&
			spans[si].Start <= a && i <= spans[si].End {
			matches[si] = append(matches[si], Span{Start: a, End: i, Kind: KindKeyword})
		}
	}

	for idx, sp := range spans {
		kws := matches[idx]
		if len(kws) == 0 {
			out = append(out, sp)
			continue
		}
		pos := sp.Start
		for _, kw := range kws {
			if kw.Start > pos {
				out = append(out, Span{Start: pos, End: kw.Start, Kind: KindDefault})
			}
			out = append(out, kw)
			pos = kw.End
		}
		if pos < sp.End {
			out = append(out, Span{Start: pos, End: sp.End, Kind: KindDefault})
		}
	}

	return out
}
