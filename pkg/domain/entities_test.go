package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSeverityValid(t *testing.T) {
	for _, s := range Severities() {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if Severity("urgent").Valid() || Severity("").Valid() {
		t.Fatalf("unknown severities must be invalid")
	}
	if got := Severities(); got[0] != SeverityLow || got[len(got)-1] != SeverityCritical {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestPatientStatusValid(t *testing.T) {
	for _, s := range PatientStatuses() {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if PatientStatus("admitted").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestRolePermissions(t *testing.T) {
	cases := []struct {
		role                 Role
		valid, manage, sched bool
	}{
		{RoleDoctor, true, false, true},
		{RoleStaff, true, false, true},
		{RoleManagement, true, true, true},
		{Role("janitor"), false, false, false},
	}
	for _, c := range cases {
		if c.role.Valid() != c.valid || c.role.CanManageStaff() != c.manage || c.role.CanViewSchedule() != c.sched {
			t.Fatalf("unexpected permissions for %q", c.role)
		}
	}
}

func TestDepartmentNearFull(t *testing.T) {
	cases := []struct {
		cur, max int
		want     bool
	}{
		{45, 50, false},
		{46, 50, true},
		{50, 50, true},
		{0, 0, false},
		{1, 0, true},
	}
	for _, c := range cases {
		d := Department{CurrentCapacity: c.cur, MaxCapacity: c.max}
		if got := d.NearFull(); got != c.want {
			t.Fatalf("NearFull(%d/%d)=%v want %v", c.cur, c.max, got, c.want)
		}
	}
}

func TestSessionStripsPasswordAndCopiesSchedule(t *testing.T) {
	u := User{
		Staff: Staff{
			ID:        "u1",
			Email:     "a@b.c",
			Role:      RoleDoctor,
			Schedule:  []ShiftEntry{{Day: "Monday", Hours: "8-16"}},
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Password: "secret",
	}
	s := u.Session()
	s.Schedule[0].Hours = "changed"
	if u.Schedule[0].Hours != "8-16" {
		t.Fatalf("session shares schedule backing array with user")
	}
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "password") || strings.Contains(string(raw), "secret") {
		t.Fatalf("session leaks credential: %s", raw)
	}

	raw, err = json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back["password"] != "secret" || back["email"] != "a@b.c" {
		t.Fatalf("user should flatten staff fields alongside password: %s", raw)
	}
}

func TestSessionWithoutSchedule(t *testing.T) {
	s := User{Staff: Staff{ID: "x"}}.Session()
	if s.Schedule != nil {
		t.Fatalf("expected nil schedule, got %v", s.Schedule)
	}
}

func TestCollections(t *testing.T) {
	got := Collections()
	if len(got) != 5 {
		t.Fatalf("expected 5 collections, got %d", len(got))
	}
	seen := map[Collection]bool{}
	for _, c := range got {
		if seen[c] {
			t.Fatalf("duplicate collection %q", c)
		}
		seen[c] = true
	}
	if got[0] != CollectionPatients || got[4] != CollectionCurrentSession {
		t.Fatalf("unexpected order %v", got)
	}
}
