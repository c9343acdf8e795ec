package textmatch

// DefaultFuzzyThreshold is tuned for single vocabulary words and short
// phrases. Long texts degrade to near-always matches and are not a
// supported input.
const DefaultFuzzyThreshold = 2

// Distance returns the Levenshtein edit distance between a and b with
// unit costs for insertion, deletion and substitution.
func Distance(a, b string) int {
	aRunes := []rune(a)
	bRunes := []rune(b)
	if len(aRunes) == 0 {
		return len(bRunes)
	}
	if len(bRunes) == 0 {
		return len(aRunes)
	}

	previous := make([]int, len(aRunes)+1)
	current := make([]int, len(aRunes)+1)
	for j := 0; j <= len(aRunes); j++ {
		previous[j] = j
	}

	for i := 1; i <= len(bRunes); i++ {
		current[0] = i
		for j := 1; j <= len(aRunes); j++ {
			cost := 1
			if bRunes[i-1] == aRunes[j-1] {
				cost = 0
			}
			current[j] = min(
				previous[j]+1,
				current[j-1]+1,
				previous[j-1]+cost,
			)
		}
		previous, current = current, previous
	}
	return previous[len(aRunes)]
}

// IsFuzzyMatch reports whether input is within threshold edits of
// target, after both are normalized.
func IsFuzzyMatch(input, target string, threshold int) bool {
	return Distance(Normalize(input), Normalize(target)) <= threshold
}
