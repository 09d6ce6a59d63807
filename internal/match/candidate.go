package match

import (
	"sort"
)

// SuggestThreshold is the minimum similarity for a name to be suggested.
const SuggestThreshold = 0.5

// Candidate is a known name scored against the name that was asked for.
type Candidate struct {
	Name  string
	Score float64 // NameSimilarity of Name and the wanted name, in [0, 1]
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against want.
// Returns candidates sorted by score (descending).
func RankCandidates(want string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		candidates = append(candidates, Candidate{Name: name, Score: NameSimilarity(want, name)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit known names similar enough to want.
func Suggest(want string, known []string, limit int) []string {
	var res []string

	for _, c := range RankCandidates(want, known).Top(limit) {
		if c.Score < SuggestThreshold {
			break
		}

		res = append(res, c.Name)
	}

	return res
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}
