package records

import (
	"fmt"

	"erdash/pkg/domain"
)

// Keys maps each logical collection to the storage key it is persisted under.
type Keys struct {
	Patients       string
	Staff          string
	Departments    string
	Users          string
	CurrentSession string
}

// DefaultKeys returns the storage keys used by the dashboard.
func DefaultKeys() Keys {
	return Keys{
		Patients:       "er_patients",
		Staff:          "er_staff",
		Departments:    "er_departments",
		Users:          "er_users",
		CurrentSession: "er_current_user",
	}
}

// For returns the storage key of c.
func (k Keys) For(c domain.Collection) (string, error) {
	switch c {
	case domain.CollectionPatients:
		return k.Patients, nil
	case domain.CollectionStaff:
		return k.Staff, nil
	case domain.CollectionDepartments:
		return k.Departments, nil
	case domain.CollectionUsers:
		return k.Users, nil
	case domain.CollectionCurrentSession:
		return k.CurrentSession, nil
	}
	return "", fmt.Errorf("unknown collection %q", c)
}

func (k Keys) validate() error {
	seen := make(map[string]domain.Collection, 5)
	for _, c := range domain.Collections() {
		key, _ := k.For(c)
		if key == "" {
			return fmt.Errorf("records: empty storage key for %s", c)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("records: %s and %s share storage key %q", prev, c, key)
		}
		seen[key] = c
	}
	return nil
}
