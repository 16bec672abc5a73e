// Package analytics derives the dashboard views from stored collections.
// Everything here is pure; callers pass the collections and the clock.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"erdash/pkg/domain"
)

// Today aggregates visits whose UTC date matches the reference day.
type Today struct {
	Total       int `json:"total"`
	AverageWait int `json:"average_wait"`
	Critical    int `json:"critical"`
}

// Summary is the analytics view.
type Summary struct {
	Today Today `json:"today"`
	// Hourly counts today's visits by hour of day.
	Hourly [24]int `json:"hourly"`
	// Weekly counts all visits by weekday, Sunday first.
	Weekly     [7]int                  `json:"weekly"`
	BySeverity map[domain.Severity]int `json:"by_severity"`
}

// Summarize computes the analytics view at now. "Today" is the UTC calendar
// day of now; hour and weekday buckets use loc.
func Summarize(patients []domain.Patient, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.Local
	}
	out := Summary{BySeverity: make(map[domain.Severity]int, 4)}
	for _, s := range domain.Severities() {
		out.BySeverity[s] = 0
	}
	y, m, d := now.UTC().Date()
	waitSum := 0
	for _, p := range patients {
		local := p.VisitTime.In(loc)
		out.Weekly[local.Weekday()]++
		out.BySeverity[p.Severity]++

		py, pm, pd := p.VisitTime.UTC().Date()
		if py != y || pm != m || pd != d {
			continue
		}
		out.Today.Total++
		waitSum += p.WaitTime
		if p.Severity == domain.SeverityCritical {
			out.Today.Critical++
		}
		out.Hourly[local.Hour()]++
	}
	if out.Today.Total > 0 {
		out.Today.AverageWait = int(math.Round(float64(waitSum) / float64(out.Today.Total)))
	}
	return out
}

// NearFull returns the departments above the near-full occupancy threshold.
func NearFull(departments []domain.Department) []domain.Department {
	out := make([]domain.Department, 0)
	for _, d := range departments {
		if d.NearFull() {
			out = append(out, d)
		}
	}
	return out
}

// DefaultShift is shown for staff without any schedule entry.
const DefaultShift = "7:00 AM - 3:00 PM"

// ShiftRow is one line of the shift board.
type ShiftRow struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
	Shift      string      `json:"shift"`
}

// ShiftBoard lists each staff member with the hours of their first schedule entry.
func ShiftBoard(staff []domain.Staff) []ShiftRow {
	rows := make([]ShiftRow, 0, len(staff))
	for _, s := range staff {
		shift := DefaultShift
		if len(s.Schedule) > 0 && s.Schedule[0].Hours != "" {
			shift = s.Schedule[0].Hours
		}
		rows = append(rows, ShiftRow{ID: s.ID, Name: s.Name, Role: s.Role, Department: s.Department, Shift: shift})
	}
	return rows
}

// DefaultPatientLimit caps FilterPatients results when no limit is given.
const DefaultPatientLimit = 50

// PatientFilter selects patients for the patient management view. Empty
// fields match everything.
type PatientFilter struct {
	Department string
	Status     domain.PatientStatus
	IDContains string
	Limit      int
}

// FilterPatients applies f and returns matches newest visit first. The input
// slice is not modified.
func FilterPatients(patients []domain.Patient, f PatientFilter) []domain.Patient {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPatientLimit
	}
	needle := strings.ToLower(f.IDContains)
	out := make([]domain.Patient, 0)
	for _, p := range patients {
		if f.Department != "" && p.Department != f.Department {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.ID), needle) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].VisitTime.After(out[j].VisitTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
