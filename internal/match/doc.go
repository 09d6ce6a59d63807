// Package match provides name normalization, Levenshtein distance calculation,
// member type compatibility and "did you mean" ranking for record lookups.
//
// Key functions:
//   - NormalizeTypeName: folds a record spelling for fuzzy matching
//   - NameSimilarity: scores two record spellings in [0, 1]
//   - ScoreMemberCompatibility: compares a declared member with the field it covers
//   - Suggest: ranks known names against a misspelled one
package match
