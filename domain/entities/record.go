package entities

import (
	"sort"
	"time"
)

// Record is implemented by every entity kept in a whole-document collection
type Record interface {
	RecordID() int
	CreatedTime() time.Time
	IsFeatured() bool
}

// NextID returns max(id)+1, or 1 for an empty collection.
// Ids of deleted records may be reused once the highest one is gone.
func NextID[T Record](items []T) int {
	next := 1
	for _, item := range items {
		if item.RecordID() >= next {
			next = item.RecordID() + 1
		}
	}
	return next
}

// IndexOf returns the position of the record with the given id, or -1
func IndexOf[T Record](items []T, id int) int {
	for i, item := range items {
		if item.RecordID() == id {
			return i
		}
	}
	return -1
}

// SortNewestFirst returns a copy ordered by creation time, newest first.
// Records created at the same instant are ordered by higher id first.
func SortNewestFirst[T Record](items []T) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := sorted[i].CreatedTime(), sorted[j].CreatedTime()
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return sorted[i].RecordID() > sorted[j].RecordID()
	})
	return sorted
}

// Featured keeps only the featured records, preserving order
func Featured[T Record](items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.IsFeatured() {
			out = append(out, item)
		}
	}
	return out
}

// Without returns a copy of items minus the element at index i
func Without[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
