// Package schedule normalizes the shapes the "sessions" content slot has
// accumulated over time into one canonical in-memory form.
//
// The slot may carry a canonical `days` array, a legacy `schedule` map
// (string keys like "day1", "day2" mapping to row arrays), or nothing at
// all. Readers call Normalize to get the canonical form; writers call
// Payload so every save keeps the legacy mirror up to date for readers
// that have not been migrated.
package schedule

import (
	"errors"
	"fmt"
	"sort"
)

// Row is one schedule entry within a day.
type Row struct {
	Time    string `json:"time" bson:"time"`
	Program string `json:"program" bson:"program"`
}

// Day is one conference day with its ordered program rows.
type Day struct {
	Label string `json:"label" bson:"label"`
	Rows  []Row  `json:"rows" bson:"rows"`
}

// ErrLastDay is returned when a removal would leave the schedule empty.
var ErrLastDay = errors.New("schedule must keep at least one day")

// Normalize converts whatever shape the sessions document currently has
// into the canonical day list.
//
// Branch order matters and is load-bearing:
//  1. A non-empty `days` array wins verbatim (already migrated).
//  2. Otherwise a `schedule` map is converted: keys sorted
//     lexicographically, sequential "Day N" labels assigned in that
//     order, days with no rows dropped. The sort is intentionally NOT
//     numeric - "day10" orders before "day2", which misorders schedules
//     of ten or more days. That matches what production data has always
//     done and downstream consumers rely on; see DESIGN.md before
//     changing it.
//  3. Otherwise a fixed three-day empty skeleton, used only as the
//     initial placeholder before any save has happened.
func Normalize(doc map[string]any) []Day {
	if days := coerceDays(doc["days"]); len(days) > 0 {
		return days
	}
	if legacy, ok := legacyEntries(doc["schedule"]); ok {
		keys := make([]string, 0, len(legacy))
		for k := range legacy {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out []Day
		for _, k := range keys {
			rows := legacy[k]
			if len(rows) == 0 {
				continue
			}
			out = append(out, Day{
				Label: fmt.Sprintf("Day %d", len(out)+1),
				Rows:  rows,
			})
		}
		return out
	}
	return Skeleton()
}

// Skeleton returns the three-day empty placeholder shown before the
// first save.
func Skeleton() []Day {
	return []Day{
		{Label: "Day 1", Rows: []Row{}},
		{Label: "Day 2", Rows: []Row{}},
		{Label: "Day 3", Rows: []Row{}},
	}
}

// LegacyMap regenerates the backward-compatible schedule map from the
// canonical day list. Keys are always day1..dayN from the 1-based array
// index; original non-sequential legacy keys are not preserved.
func LegacyMap(days []Day) map[string][]Row {
	m := make(map[string][]Row, len(days))
	for i, d := range days {
		rows := d.Rows
		if rows == nil {
			rows = []Row{}
		}
		m[fmt.Sprintf("day%d", i+1)] = rows
	}
	return m
}

// Payload builds the fields a schedule save must write: the canonical
// days array plus the regenerated legacy mirror. Callers merge this into
// the sessions document rather than writing it alone, so sibling fields
// owned by other admin pages survive.
func Payload(days []Day) map[string]any {
	return map[string]any{
		"days":     days,
		"schedule": LegacyMap(days),
	}
}

// AddDay appends a new empty day with the next sequential label.
func AddDay(days []Day) []Day {
	return append(days, Day{
		Label: fmt.Sprintf("Day %d", len(days)+1),
		Rows:  []Row{},
	})
}

// RemoveDay removes the day at index i. At least one day must always
// remain; removing the last one is rejected.
func RemoveDay(days []Day, i int) ([]Day, error) {
	if len(days) <= 1 {
		return days, ErrLastDay
	}
	if i < 0 || i >= len(days) {
		return days, fmt.Errorf("day index %d out of range", i)
	}
	out := make([]Day, 0, len(days)-1)
	out = append(out, days[:i]...)
	out = append(out, days[i+1:]...)
	return out, nil
}

// coerceDays accepts the typed and the JSON-decoded renditions of a day
// list. Anything else yields nil.
func coerceDays(v any) []Day {
	switch t := v.(type) {
	case nil:
		return nil
	case []Day:
		return t
	case []any:
		out := make([]Day, 0, len(t))
		for _, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			d := Day{Rows: []Row{}}
			if s, ok := m["label"].(string); ok {
				d.Label = s
			}
			d.Rows = coerceRows(m["rows"])
			out = append(out, d)
		}
		return out
	}
	return nil
}

// legacyEntries accepts the typed and JSON-decoded renditions of the
// legacy schedule map. The second return is true when a schedule map is
// present at all, even an empty one: presence selects the legacy branch.
func legacyEntries(v any) (map[string][]Row, bool) {
	switch t := v.(type) {
	case map[string][]Row:
		return t, true
	case map[string]any:
		out := make(map[string][]Row, len(t))
		for k, rows := range t {
			out[k] = coerceRows(rows)
		}
		return out, true
	}
	return nil, false
}

func coerceRows(v any) []Row {
	switch t := v.(type) {
	case []Row:
		return t
	case []any:
		out := make([]Row, 0, len(t))
		for _, e := range t {
			switch r := e.(type) {
			case Row:
				out = append(out, r)
			case map[string]any:
				var row Row
				if s, ok := r["time"].(string); ok {
					row.Time = s
				}
				if s, ok := r["program"].(string); ok {
					row.Program = s
				}
				out = append(out, row)
			}
		}
		return out
	}
	return []Row{}
}
