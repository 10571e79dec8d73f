package transform

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/validate"
)

// Case modes understood by CaseConvert.
const (
	CaseUpper    = "upper"
	CaseLower    = "lower"
	CaseTitle    = "title"
	CaseSentence = "sentence"
)

var (
	lineBreak     = regexp.MustCompile(`\r\n|\r|\n`)
	sentenceStart = regexp.MustCompile(`(^\s*\w|[.!?]\s*\w)`)
)

// TextStats are the counters shown by the word counter.
type TextStats struct {
	Words              int
	Characters         int
	CharactersNoSpaces int
	Lines              int
}

// CountText computes word, character and line counts.
// Characters are counted as runes.
func CountText(text string) TextStats {
	stats := TextStats{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}
	for _, r := range text {
		if !unicode.IsSpace(r) {
			stats.CharactersNoSpaces++
		}
	}
	if text != "" {
		stats.Lines = len(lineBreak.Split(text, -1))
	}
	return stats
}

// WordCount reports the statistics of the "text" field. Empty text yields zeros.
func WordCount(_ context.Context, in domain.Input) (domain.Output, error) {
	s := CountText(validate.Text(in["text"]))
	return domain.Output{
		Text: "Words: " + strconv.Itoa(s.Words) +
			" | Characters: " + strconv.Itoa(s.Characters) +
			" | Without spaces: " + strconv.Itoa(s.CharactersNoSpaces) +
			" | Lines: " + strconv.Itoa(s.Lines),
		Fields: map[string]string{
			"words":                strconv.Itoa(s.Words),
			"characters":           strconv.Itoa(s.Characters),
			"characters_no_spaces": strconv.Itoa(s.CharactersNoSpaces),
			"lines":                strconv.Itoa(s.Lines),
		},
	}, nil
}

// ConvertCase applies mode to text. Unknown modes return text unchanged.
func ConvertCase(text, mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case CaseUpper:
		return strings.ToUpper(text)
	case CaseLower:
		return strings.ToLower(text)
	case CaseTitle:
		return TitleCase(text)
	case CaseSentence:
		return SentenceCase(text)
	}
	return text
}

// TitleCase lowercases text and capitalises the first letter of every
// space-separated token. Runs of spaces are kept.
func TitleCase(text string) string {
	words := strings.Split(strings.ToLower(text), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// SentenceCase lowercases text and capitalises the first word character of the
// text and the first one after each '.', '!' or '?'.
func SentenceCase(text string) string {
	return sentenceStart.ReplaceAllStringFunc(strings.ToLower(text), strings.ToUpper)
}

type caseParams struct {
	Text string `mapstructure:"text"`
	Mode string `mapstructure:"mode"`
}

// CaseConvert converts the "text" field according to "mode".
func CaseConvert(_ context.Context, in domain.Input) (domain.Output, error) {
	var p caseParams
	if err := validate.Decode(in, &p); err != nil {
		return domain.Output{}, err
	}
	return domain.Output{Text: ConvertCase(p.Text, p.Mode)}, nil
}
