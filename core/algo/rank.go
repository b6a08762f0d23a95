// Package algo has ranking and rate algorithms over aggregated counts.
package algo

import (
	"slices"
	"strings"

	"github.com/huangsam/scholarlens/schema"
)

// DepartmentKey returns the grouping key for a raw department value.
// Values are compared verbatim; blank departments group under schema.Unassigned.
func DepartmentKey(department string) string {
	if strings.TrimSpace(department) == "" {
		return schema.Unassigned
	}
	return department
}

// CountDepartments counts records per department in first-seen order.
func CountDepartments(records []schema.ProjectRecord) []schema.DepartmentCount {
	index := make(map[string]int)
	var counts []schema.DepartmentCount
	for _, r := range records {
		key := DepartmentKey(r.Department)
		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, schema.DepartmentCount{Department: key})
		}
		counts[i].Count++
	}
	return counts
}

// RankDepartments sorts departments by record count in descending order and
// returns at most 'limit' of them. Equal counts keep first-seen order.
func RankDepartments(records []schema.ProjectRecord, limit int) []schema.DepartmentCount {
	counts := CountDepartments(records)
	slices.SortStableFunc(counts, func(a, b schema.DepartmentCount) int {
		return b.Count - a.Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	if counts == nil {
		return []schema.DepartmentCount{}
	}
	return counts
}

// TopDepartment returns the first department of a ranking, or schema.None when it is empty.
func TopDepartment(ranking []schema.DepartmentCount) string {
	if len(ranking) == 0 {
		return schema.None
	}
	return ranking[0].Department
}
