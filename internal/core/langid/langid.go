// Package langid provides the coarse language detection used at ingest time.
//
// The pipeline only ever needs to tell Latvian, Russian, and English apart
// (everything else is lumped into LangOther), so detection is a cheap
// script-and-diacritic heuristic rather than a model call. A model-backed
// detector can replace it behind the same Detector port
package langid

import (
	"strings"
	"unicode"
)

// Lang is the detected language bucket
type Lang string

// Detection buckets. Only lv and ru comments are ever classified downstream
const (
	LangLV    Lang = "lv"
	LangEN    Lang = "en"
	LangRU    Lang = "ru"
	LangOther Lang = "other"
)

// Detector is the port the ingest service depends on
type Detector interface {
	Detect(text string) Lang
}

// Heuristic is the default script/diacritic Detector
type Heuristic struct{}

// New constructs a Heuristic detector
func New() Heuristic { return Heuristic{} }

// Latvian-specific letters. Plain Latin text containing any of these is
// almost certainly Latvian rather than English
const latvianMarks = "āčēģīķļņšūžĀČĒĢĪĶĻŅŠŪŽ"

// A handful of high-frequency Latvian function words, used as a fallback for
// short diacritic-free Latvian text
var latvianWords = map[string]struct{}{
	"un": {}, "ir": {}, "ka": {}, "par": {}, "ar": {}, "bet": {},
	"vai": {}, "nav": {}, "tas": {}, "kas": {}, "jau": {}, "tikai": {},
}

// Detect buckets text into lv, en, ru, or other.
// Cyrillic-dominant text is ru; Latin-dominant text is lv when it carries
// Latvian diacritics or function words, otherwise en; text without letters,
// or with no dominant script, is other
func (Heuristic) Detect(text string) Lang {
	var latin, cyrillic, otherScript int
	lvMarks := 0

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		switch {
		case unicode.In(r, unicode.Cyrillic):
			cyrillic++
		case unicode.In(r, unicode.Latin):
			latin++
			if strings.ContainsRune(latvianMarks, r) {
				lvMarks++
			}
		default:
			otherScript++
		}
	}

	total := latin + cyrillic + otherScript
	if total == 0 {
		return LangOther
	}

	switch {
	case cyrillic > latin && cyrillic >= otherScript:
		return LangRU
	case latin >= cyrillic && latin >= otherScript:
		if lvMarks > 0 || hasLatvianWord(text) {
			return LangLV
		}
		return LangEN
	default:
		return LangOther
	}
}

func hasLatvianWord(text string) bool {
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?:;\"'()[]")
		if _, ok := latvianWords[w]; ok {
			return true
		}
	}
	return false
}
