package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"erdash/internal/analytics"
	"erdash/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ERDASH_ENV", "production")
	t.Setenv("ERDASH_LOG_LEVEL", "error")
	t.Setenv("ERDASH_STORAGE_DRIVER", "fs")
	t.Setenv("ERDASH_FS_ROOT", t.TempDir())
	t.Setenv("ERDASH_KDF_COST", "16")
	t.Setenv("ERDASH_SEED_PATIENTS", "12")
	t.Setenv("ERDASH_GENERATOR_SEED", "5")
	t.Setenv("ERDASH_DEMO_MODE", "true")
}

func invoke(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return out.String(), code
}

func decode[T any](t *testing.T, raw string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v), raw)
	return v
}

func TestLoginWhoamiLogout(t *testing.T) {
	setupEnv(t)

	_, code := invoke(t, "whoami")
	assert.Equal(t, 1, code)

	out, code := invoke(t, "login", "--email", "admin@gmail.com", "--password", "admin123")
	require.Equal(t, 0, code)
	assert.NotContains(t, out, "password")

	out, code = invoke(t, "whoami")
	require.Equal(t, 0, code)
	user := decode[domain.Staff](t, out)
	assert.Equal(t, domain.RoleManagement, user.Role)

	_, code = invoke(t, "logout")
	require.Equal(t, 0, code)
	_, code = invoke(t, "whoami")
	assert.Equal(t, 1, code)

	_, code = invoke(t, "login", "--email", "admin@gmail.com", "--password", "wrong")
	assert.Equal(t, 1, code)
}

func TestInitAndCollections(t *testing.T) {
	setupEnv(t)
	_, code := invoke(t, "init")
	require.Equal(t, 0, code)

	out, code := invoke(t, "patients", "list", "--limit", "5")
	require.Equal(t, 0, code)
	assert.Len(t, decode[[]domain.Patient](t, out), 5)

	out, code = invoke(t, "staff", "list")
	require.Equal(t, 0, code)
	assert.Len(t, decode[[]domain.Staff](t, out), 3)

	out, code = invoke(t, "departments", "list")
	require.Equal(t, 0, code)
	assert.Len(t, decode[[]domain.Department](t, out), 4)

	_, code = invoke(t, "departments", "near-full")
	require.Equal(t, 0, code)

	out, code = invoke(t, "incidents")
	require.Equal(t, 0, code)
	assert.Len(t, decode[[]domain.Incident](t, out), 2)

	out, code = invoke(t, "stats")
	require.Equal(t, 0, code)
	summary := decode[analytics.Summary](t, out)
	assert.Len(t, summary.BySeverity, 4)

	out, code = invoke(t, "patients", "generate", "--count", "3")
	require.Equal(t, 0, code)
	assert.Len(t, decode[[]domain.Patient](t, out), 3)
}

func TestScheduleAndAddShiftRequireRoles(t *testing.T) {
	setupEnv(t)
	_, code := invoke(t, "schedule")
	assert.Equal(t, 1, code, "schedule needs a session")

	_, code = invoke(t, "login", "--email", "nurse.wilson@gmail.com", "--password", "staff123")
	require.Equal(t, 0, code)
	out, code := invoke(t, "schedule")
	require.Equal(t, 0, code)
	rows := decode[[]analytics.ShiftRow](t, out)
	require.Len(t, rows, 3)
	assert.Equal(t, "9:00 AM - 5:00 PM", rows[0].Shift)

	_, code = invoke(t, "staff", "add-shift", "--id", "2", "--day", "Friday", "--hours", "7:00 AM - 3:00 PM")
	assert.Equal(t, 1, code, "staff role may not edit schedules")

	_, code = invoke(t, "login", "--email", "admin@gmail.com", "--password", "admin123")
	require.Equal(t, 0, code)
	out, code = invoke(t, "staff", "add-shift", "--id", "2", "--day", "Friday", "--hours", "7:00 AM - 3:00 PM")
	require.Equal(t, 0, code)
	assert.Len(t, decode[domain.Staff](t, out).Schedule, 4)
}

func TestCreateUserWithoutDemoMode(t *testing.T) {
	setupEnv(t)
	t.Setenv("ERDASH_DEMO_MODE", "false")

	args := []string{"users", "create", "--email", "new@er.test", "--name", "New", "--role", "doctor", "--password", "pw"}
	_, code := invoke(t, args...)
	require.Equal(t, 0, code)
	_, code = invoke(t, args...)
	assert.Equal(t, 1, code, "duplicate email")

	out, code := invoke(t, "users", "list")
	require.Equal(t, 0, code)
	assert.Len(t, decode[[]domain.Staff](t, out), 1)

	_, code = invoke(t, "login", "--email", "new@er.test", "--password", "pw")
	assert.Equal(t, 0, code)
}

func TestInvalidConfigFails(t *testing.T) {
	setupEnv(t)
	t.Setenv("ERDASH_STORAGE_DRIVER", "tape")
	_, code := invoke(t, "incidents")
	assert.Equal(t, 1, code)
}

func TestMetricsFlag(t *testing.T) {
	setupEnv(t)
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"--metrics", "init"}, &out, &errOut)
	require.Equal(t, 0, code)
	assert.Contains(t, errOut.String(), "erdash_securestore_operations_total")
}
