// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect scores how machine-written a text looks, sentence by
// sentence, using a deterministic word-level heuristic.
package detect

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/citecheck/internal/document"
	"github.com/pdiddy/citecheck/pkg/types"
)

// Heuristic constants.
const (
	baseWordScore    = 50
	functionWordBump = 15
	longWordPenalty  = 10
	capsPenalty      = 20
	longWordLength   = 10
	minScore         = 10
	maxScore         = 99
	titleScore       = 30
	titleMaxWords    = 12
	minSentenceChars = 15
	rawTextLimit     = 2000
)

// ErrNoSentences is returned when no sentence is long enough to score.
var ErrNoSentences = errors.New("no sentences detected")

// sentenceEndRe splits after terminal punctuation followed by whitespace.
var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

var titlePrefixes = []string{"Abstract", "Introduction", "Chapter", "Title"}

// Analyzer holds the immutable word lists. Build one with New and share it.
type Analyzer struct {
	functionWords map[string]bool
}

// New builds an Analyzer.
func New() *Analyzer {
	words := []string{"the", "and", "of", "to", "in", "a", "is", "that", "with"}
	fw := make(map[string]bool, len(words))
	for _, w := range words {
		fw[w] = true
	}
	return &Analyzer{functionWords: fw}
}

// Analyze scores text. It returns document.ErrTextTooShort for text under
// document.MinTextLength characters and ErrNoSentences when nothing is left
// to score.
func (a *Analyzer) Analyze(text string) (types.Analysis, error) {
	if err := document.Validate(text); err != nil {
		return types.Analysis{}, err
	}

	var sentences []types.SentenceScore
	for _, s := range splitSentences(text) {
		if utf8.RuneCountInString(s) < minSentenceChars {
			continue
		}
		sentences = append(sentences, a.scoreSentence(len(sentences), s))
	}
	if len(sentences) == 0 {
		return types.Analysis{}, ErrNoSentences
	}

	var sum float64
	for _, s := range sentences {
		sum += s.AIScore
	}
	avg := sum / float64(len(sentences))

	return types.Analysis{
		OverallAIProbability:    round1(avg),
		OverallHumanProbability: round1(100 - avg),
		TotalSentences:          len(sentences),
		Sentences:               sentences,
		RawText:                 rawText(text),
	}, nil
}

func (a *Analyzer) scoreSentence(id int, s string) types.SentenceScore {
	tokens := words(s)
	scores := make([]types.WordScore, 0, len(tokens))
	for _, w := range tokens {
		scores = append(scores, types.WordScore{Word: w, Score: a.scoreWord(w)})
	}

	title := isTitle(s, len(tokens))
	var score float64
	switch {
	case title:
		score = titleScore
	case len(scores) == 0:
		score = baseWordScore
	default:
		var sum int
		for _, ws := range scores {
			sum += ws.Score
		}
		score = float64(sum) / float64(len(scores))
	}

	return types.SentenceScore{
		ID:      id,
		Text:    s,
		AIScore: round1(clamp(score)),
		IsTitle: title,
		Words:   scores,
	}
}

func (a *Analyzer) scoreWord(w string) int {
	score := baseWordScore
	if a.functionWords[strings.ToLower(w)] {
		score += functionWordBump
	}
	if utf8.RuneCountInString(w) > longWordLength {
		score -= longWordPenalty
	}
	if isUpper(w) {
		score -= capsPenalty
	}
	return int(clamp(float64(score)))
}

// splitSentences keeps the terminal punctuation with its sentence.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	var out []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		out = append(out, strings.TrimSpace(text[start:loc[0]+1]))
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// words drops punctuation-only tokens and trims punctuation from the rest.
func words(s string) []string {
	var out []string
	for _, f := range strings.Fields(s) {
		w := strings.TrimFunc(f, unicode.IsPunct)
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func isTitle(s string, wordCount int) bool {
	if wordCount > titleMaxWords {
		return false
	}
	if isUpper(s) || strings.HasSuffix(s, ":") {
		return true
	}
	for _, p := range titlePrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// isUpper reports whether s has at least one cased letter and no lowercase
// ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func clamp(v float64) float64 {
	return math.Max(minScore, math.Min(maxScore, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func rawText(text string) string {
	r := []rune(text)
	if len(r) <= rawTextLimit {
		return text
	}
	return string(r[:rawTextLimit]) + "..."
}
