package domain

import "github.com/google/uuid"

type PriorityCount struct {
	Priority int
	Count    int64
}

type CategoryCount struct {
	CategoryID   *uuid.UUID
	CategoryName *string
	Count        int64
}

// TodoStats holds user-level aggregates computed from one consistent read.
type TodoStats struct {
	Total      int64
	Completed  int64
	Pending    int64
	Overdue    int64
	ByPriority []PriorityCount
	ByCategory []CategoryCount
}

// FillPriorityBuckets expands a sparse priority breakdown into the fixed
// five-level domain, emitting zero counts for missing levels.
func FillPriorityBuckets(counts []PriorityCount) []PriorityCount {
	byLevel := make(map[int]int64, len(counts))

	for _, c := range counts {
		byLevel[c.Priority] = c.Count
	}

	buckets := make([]PriorityCount, 0, PriorityLevels)

	for p := PriorityMin; p <= PriorityMax; p++ {
		buckets = append(buckets, PriorityCount{Priority: p, Count: byLevel[p]})
	}

	return buckets
}
