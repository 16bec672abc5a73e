// Package domain defines the records held by the dashboard data layer:
// patient visits, staff and user directory entries, department occupancy
// and incidents.
package domain

import "time"

// Severity captures the triage severity of a patient visit or incident.
type Severity string

// Canonical severities, ordered from least to most urgent.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities returns the closed severity set in canonical order.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Valid reports whether s belongs to the closed severity set.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// PatientStatus tracks where a patient is in the visit workflow.
type PatientStatus string

// Canonical patient statuses.
const (
	StatusWaiting     PatientStatus = "waiting"
	StatusInTreatment PatientStatus = "in_treatment"
	StatusDischarged  PatientStatus = "discharged"
)

// PatientStatuses returns the closed status set in workflow order.
func PatientStatuses() []PatientStatus {
	return []PatientStatus{StatusWaiting, StatusInTreatment, StatusDischarged}
}

// Valid reports whether s belongs to the closed status set.
func (s PatientStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusInTreatment, StatusDischarged:
		return true
	}
	return false
}

// Role identifies the directory role of a staff member.
type Role string

// Directory roles.
const (
	RoleDoctor     Role = "doctor"
	RoleStaff      Role = "staff"
	RoleManagement Role = "management"
)

// Valid reports whether r is a known directory role.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RoleStaff, RoleManagement:
		return true
	}
	return false
}

// IncidentType classifies community incidents that affect ER intake.
type IncidentType string

// Incident types.
const (
	IncidentOutbreak     IncidentType = "outbreak"
	IncidentAccident     IncidentType = "accident"
	IncidentDisaster     IncidentType = "disaster"
	IncidentMassCasualty IncidentType = "mass_casualty"
)

// IncidentStatus tracks whether an incident is ongoing.
type IncidentStatus string

// Incident statuses.
const (
	IncidentActive   IncidentStatus = "active"
	IncidentResolved IncidentStatus = "resolved"
)

// Patient is a single ER visit.
type Patient struct {
	ID         string        `json:"id"`
	VisitTime  time.Time     `json:"visit_time"`
	Severity   Severity      `json:"severity"`
	Symptoms   []string      `json:"symptoms"`
	Age        int           `json:"age"`
	WaitTime   int           `json:"wait_time"` // minutes
	Department string        `json:"department"`
	Status     PatientStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ShiftEntry is one line of a staff schedule. Entries form an append-only
// log; the same day may appear more than once.
type ShiftEntry struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Staff is a directory entry. It is also the shape of the current session,
// which is why it never carries a password.
type Staff struct {
	ID         string       `json:"id"`
	Email      string       `json:"email"`
	Name       string       `json:"name"`
	Role       Role         `json:"role"`
	Department string       `json:"department"`
	Schedule   []ShiftEntry `json:"schedule"`
	CreatedAt  time.Time    `json:"created_at"`
}

// User is a directory entry that can authenticate. Password holds the
// credential as stored (a bcrypt hash for created users).
type User struct {
	Staff
	Password string `json:"password"`
}

// Session returns the user with the credential stripped.
func (u User) Session() Staff {
	s := u.Staff
	if u.Schedule != nil {
		s.Schedule = make([]ShiftEntry, len(u.Schedule))
		copy(s.Schedule, u.Schedule)
	}
	return s
}

// NearFullRatio is the occupancy ratio above which a department is reported as near full.
const NearFullRatio = 0.9

// Department reports the live occupancy of an ER department.
type Department struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CurrentCapacity int    `json:"current_capacity"`
	MaxCapacity     int    `json:"max_capacity"`
	WaitTime        int    `json:"wait_time"` // minutes
}

// NearFull reports whether occupancy exceeds NearFullRatio of capacity.
// A department with no declared capacity is near full as soon as anyone is in it.
func (d Department) NearFull() bool {
	if d.MaxCapacity <= 0 {
		return d.CurrentCapacity > 0
	}
	return float64(d.CurrentCapacity)/float64(d.MaxCapacity) > NearFullRatio
}

// Incident is a read-only community event shown on the incident tracker.
type Incident struct {
	ID          string         `json:"id"`
	Type        IncidentType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Severity    Severity       `json:"severity"`
	Location    string         `json:"location"`
	Date        time.Time      `json:"date"`
	Status      IncidentStatus `json:"status"`
}

// CanManageStaff reports whether the role may edit staff schedules.
func (r Role) CanManageStaff() bool { return r == RoleManagement }

// CanViewSchedule reports whether the role may view the shift board.
func (r Role) CanViewSchedule() bool { return r.Valid() }
