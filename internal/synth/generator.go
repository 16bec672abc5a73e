// Package synth fabricates demo data: patient arrivals with a load-sensitive
// wait-time estimate, department occupancy, and the static seed roster.
package synth

import (
	"math/rand"
	"sync"
	"time"

	"erdash/pkg/domain"

	"github.com/google/uuid"
)

// Lookback is the window generated visit times are spread over.
const Lookback = 7 * 24 * time.Hour

// DepartmentMaxCapacity is the capacity assigned to generated departments.
const DepartmentMaxCapacity = 50

const maxGeneratedDepartmentWait = 120

// Generator produces synthetic records. It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	seed    int64
	now     func() time.Time
	loc     *time.Location
	doctors int
	staff   int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator reproducible. Zero picks a time-based seed.
func WithSeed(seed int64) Option { return func(g *Generator) { g.seed = seed } }

// WithClock overrides the reference time visits are generated before.
func WithClock(now func() time.Time) Option { return func(g *Generator) { g.now = now } }

// WithLocation sets the zone arrival hours are bucketed in (default time.Local).
func WithLocation(loc *time.Location) Option { return func(g *Generator) { g.loc = loc } }

// WithStaffing overrides the doctor and staff counts used by the wait-time model.
func WithStaffing(doctors, staff int) Option {
	return func(g *Generator) { g.doctors, g.staff = doctors, staff }
}

// New returns a generator staffed like the seed roster.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now, loc: time.Local}
	g.doctors, g.staff = RosterStaffing()
	for _, opt := range opts {
		opt(g)
	}
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	if g.loc == nil {
		g.loc = time.Local
	}
	g.rng = rand.New(rand.NewSource(g.seed)) //nolint:gosec // demo data, not security sensitive
	return g
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 { return g.seed }

func (g *Generator) nextID() string {
	return uuid.Must(uuid.NewRandomFromReader(g.rng)).String()
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// GeneratePatients returns count visits spread over the trailing Lookback
// window. Each wait time reflects how many earlier patients of the same call
// arrived in the same hour of day.
func (g *Generator) GeneratePatients(count int) []domain.Patient {
	if count <= 0 {
		return []domain.Patient{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	severities := domain.Severities()
	statuses := domain.PatientStatuses()
	var perHour [24]int
	patients := make([]domain.Patient, 0, count)
	for i := 0; i < count; i++ {
		visit := now.Add(-time.Duration(g.rng.Int63n(int64(Lookback)))).Truncate(time.Millisecond).UTC()
		hour := visit.In(g.loc).Hour()

		p := domain.Patient{
			ID:         g.nextID(),
			VisitTime:  visit,
			Severity:   severities[g.rng.Intn(len(severities))],
			Age:        g.rng.Intn(80) + 1,
			WaitTime:   EstimateWaitTime(hour, perHour[hour], g.doctors, g.staff),
			Department: g.pick(departmentNames),
			Status:     statuses[g.rng.Intn(len(statuses))],
			CreatedAt:  visit,
		}
		n := g.rng.Intn(3) + 1
		p.Symptoms = make([]string, n)
		for j := range p.Symptoms {
			p.Symptoms[j] = g.pick(symptomPool)
		}
		perHour[hour]++
		patients = append(patients, p)
	}
	return patients
}

// GenerateDepartments returns one occupancy record per fixed department.
func (g *Generator) GenerateDepartments() []domain.Department {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.Department, 0, len(departmentNames))
	for _, name := range departmentNames {
		out = append(out, domain.Department{
			ID:              g.nextID(),
			Name:            name,
			CurrentCapacity: g.rng.Intn(DepartmentMaxCapacity),
			MaxCapacity:     DepartmentMaxCapacity,
			WaitTime:        g.rng.Intn(maxGeneratedDepartmentWait),
		})
	}
	return out
}
