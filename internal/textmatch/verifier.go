// Package textmatch grades free-text and transcribed answers against a
// vocabulary card, using normalization and bounded edit distance.
package textmatch

import "strings"

// CheckAnswer reports whether userAnswer matches either the word or one
// of its accepted meanings. Meanings are a slash-separated synonym
// list. Exact matches are always accepted; when exactMode is false a
// fuzzy match within DefaultFuzzyThreshold edits is accepted as well,
// to compensate for speech transcription noise.
func CheckAnswer(userAnswer, correctWord, correctMeaning string, exactMode bool) bool {
	return CheckAnswerThreshold(userAnswer, correctWord, correctMeaning, exactMode, DefaultFuzzyThreshold)
}

// CheckAnswerThreshold is CheckAnswer with a caller-chosen edit
// distance bound for the fuzzy checks.
func CheckAnswerThreshold(userAnswer, correctWord, correctMeaning string, exactMode bool, threshold int) bool {
	answer := Normalize(userAnswer)
	word := Normalize(correctWord)

	meanings := strings.Split(correctMeaning, "/")
	for i, meaning := range meanings {
		meanings[i] = Normalize(meaning)
	}

	if answer == word {
		return true
	}
	for _, meaning := range meanings {
		if answer == meaning {
			return true
		}
	}

	if !exactMode {
		if Distance(answer, word) <= threshold {
			return true
		}
		for _, meaning := range meanings {
			if Distance(answer, meaning) <= threshold {
				return true
			}
		}
	}
	return false
}
