package match

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-rune insertions, deletions or substitutions turning a into b.
//
// Time complexity: O(len(a) * len(b)); space: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Closest returns the candidate nearest to name after normalization, provided
// its distance is at most maxDistance. Ties keep the earliest candidate.
func Closest(name string, candidates []string, maxDistance int) (string, int, bool) {
	norm := NormalizeIdent(name)

	best, bestDist := "", maxDistance+1
	for _, c := range candidates {
		d := Levenshtein(norm, NormalizeIdent(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}

	if bestDist > maxDistance {
		return "", 0, false
	}

	return best, bestDist, true
}
