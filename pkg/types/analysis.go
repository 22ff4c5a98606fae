// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WordScore is the AI-likeness score of a single token.
type WordScore struct {
	Word  string `json:"word" yaml:"word"`
	Score int    `json:"score" yaml:"score"`
}

// SentenceScore is the AI-likeness breakdown of one sentence.
type SentenceScore struct {
	ID      int         `json:"id" yaml:"id"`
	Text    string      `json:"text" yaml:"text"`
	AIScore float64     `json:"ai_score" yaml:"ai_score"`
	IsTitle bool        `json:"is_title" yaml:"is_title"`
	Words   []WordScore `json:"words" yaml:"words"`
}

// Analysis is the document-level AI-probability estimate.
type Analysis struct {
	OverallAIProbability    float64         `json:"overall_ai_probability" yaml:"overall_ai_probability"`
	OverallHumanProbability float64         `json:"overall_human_probability" yaml:"overall_human_probability"`
	TotalSentences          int             `json:"total_sentences" yaml:"total_sentences"`
	Sentences               []SentenceScore `json:"sentence_analysis" yaml:"sentence_analysis"`

	// RawText is the first 2000 characters of the input.
	RawText string `json:"raw_text" yaml:"raw_text"`
}
