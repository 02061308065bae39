package services

import (
	"sort"

	"lyricyear/models"
)

// TopWords orders a year's counts by count descending, then word ascending,
// and keeps the first n (all when n <= 0).
func TopWords(counts models.WordCounts, n int) []models.WordCount {
	result := make([]models.WordCount, 0, len(counts))
	for word, count := range counts {
		result = append(result, models.WordCount{Word: word, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Word < result[j].Word
	})

	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}
