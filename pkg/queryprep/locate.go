package queryprep

import (
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Span is the position of one utterance match inside CleanedText, in bytes.
type Span struct {
	Phrase string
	Start  int
	End    int
}

// Locate finds where each utterance match occurs in the prepared query's
// cleaned text, for highlighting. Offsets are byte offsets into CleanedText.
func Locate(q PreparedQuery) []Span {
	if len(q.UtteranceMatches) == 0 || q.CleanedText == "" {
		return nil
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	ac := builder.Build(q.UtteranceMatches)

	found := ac.FindAll(q.CleanedText)
	spans := make([]Span, 0, len(found))
	for _, m := range found {
		spans = append(spans, Span{
			Phrase: q.UtteranceMatches[m.Pattern()],
			Start:  m.Start(),
			End:    m.End(),
		})
	}
	return spans
}
