package synth

import (
	"time"

	"erdash/pkg/domain"
)

// rosterLoadedAt stamps the static roster and incidents once per process.
var rosterLoadedAt = time.Now().UTC().Truncate(time.Second)

var departmentNames = []string{"Emergency", "Trauma", "Pediatric Emergency", "Critical Care"}

var symptomPool = []string{"Fever", "Cough", "Shortness of breath", "Chest pain"}

// DepartmentNames returns the fixed department set patients are routed to.
func DepartmentNames() []string { return append([]string(nil), departmentNames...) }

// Symptoms returns the symptom pool generated patients draw from.
func Symptoms() []string { return append([]string(nil), symptomPool...) }

func weekSchedule(hours string, days ...string) []domain.ShiftEntry {
	out := make([]domain.ShiftEntry, 0, len(days))
	for _, d := range days {
		out = append(out, domain.ShiftEntry{Day: d, Hours: hours})
	}
	return out
}

// SeedRoster returns the built-in demo directory, including plaintext
// passwords. Every call returns a fresh copy.
func SeedRoster() []domain.User {
	return []domain.User{
		{
			Staff: domain.Staff{
				ID:         "1",
				Email:      "admin@gmail.com",
				Name:       "Admin User",
				Role:       domain.RoleManagement,
				Department: "Administration",
				Schedule:   weekSchedule("9:00 AM - 5:00 PM", "Monday", "Tuesday", "Wednesday"),
				CreatedAt:  rosterLoadedAt,
			},
			Password: "admin123",
		},
		{
			Staff: domain.Staff{
				ID:         "2",
				Email:      "dr.smith@gmail.com",
				Name:       "Dr. Sarah Smith",
				Role:       domain.RoleDoctor,
				Department: "Emergency",
				Schedule: []domain.ShiftEntry{
					{Day: "Monday", Hours: "7:00 AM - 3:00 PM"},
					{Day: "Tuesday", Hours: "7:00 AM - 3:00 PM"},
					{Day: "Wednesday", Hours: "3:00 PM - 11:00 PM"},
				},
				CreatedAt: rosterLoadedAt,
			},
			Password: "doctor123",
		},
		{
			Staff: domain.Staff{
				ID:         "3",
				Email:      "nurse.wilson@gmail.com",
				Name:       "Nurse David Wilson",
				Role:       domain.RoleStaff,
				Department: "Emergency",
				Schedule:   weekSchedule("7:00 AM - 3:00 PM", "Monday", "Wednesday", "Friday"),
				CreatedAt:  rosterLoadedAt,
			},
			Password: "staff123",
		},
	}
}

// SeedStaff returns the seed roster without passwords.
func SeedStaff() []domain.Staff {
	roster := SeedRoster()
	out := make([]domain.Staff, 0, len(roster))
	for _, u := range roster {
		out = append(out, u.Session())
	}
	return out
}

// RosterStaffing counts doctors and staff members in the seed roster.
// Management does not treat patients.
func RosterStaffing() (doctors, staff int) {
	for _, u := range SeedRoster() {
		switch u.Role {
		case domain.RoleDoctor:
			doctors++
		case domain.RoleStaff:
			staff++
		}
	}
	return doctors, staff
}

// Incidents returns the static incident list.
func Incidents() []domain.Incident {
	return []domain.Incident{
		{
			ID:          "1",
			Type:        domain.IncidentOutbreak,
			Title:       "Flu Outbreak in Downtown",
			Description: "Increased cases of influenza reported in the downtown area",
			Severity:    domain.SeverityMedium,
			Location:    "Downtown Dallas",
			Date:        rosterLoadedAt,
			Status:      domain.IncidentActive,
		},
		{
			ID:          "2",
			Type:        domain.IncidentAccident,
			Title:       "Major Traffic Incident",
			Description: "Multi-vehicle collision on I-35",
			Severity:    domain.SeverityHigh,
			Location:    "I-35 North",
			Date:        rosterLoadedAt,
			Status:      domain.IncidentActive,
		},
	}
}
