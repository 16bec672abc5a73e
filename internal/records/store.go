// Package records is the typed record store of the dashboard: patient,
// staff, department and user collections plus the current session, persisted
// through an encrypted store.
package records

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"erdash/internal/securestore"
	"erdash/internal/synth"
	"erdash/pkg/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSeedPatients is the number of patients Initialize generates.
const DefaultSeedPatients = 100

// Backend is the encrypted persistence the store writes through.
type Backend interface {
	Put(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dest any) error
	Remove(ctx context.Context, key string) error
	ClearAll(ctx context.Context) error
}

// Options configures a Store.
type Options struct {
	Keys Keys
	// DemoMode makes every Login reset the whole store first.
	DemoMode     bool
	SeedPatients int
	Generator    *synth.Generator
	Logger       zerolog.Logger
	BcryptCost   int
	Now          func() time.Time
}

// DefaultOptions returns the options the dashboard runs with.
func DefaultOptions() Options {
	return Options{
		Keys:         DefaultKeys(),
		DemoMode:     true,
		SeedPatients: DefaultSeedPatients,
		Logger:       zerolog.Nop(),
		BcryptCost:   bcrypt.DefaultCost,
		Now:          time.Now,
	}
}

// Store reads and writes the dashboard collections.
type Store struct {
	backend      Backend
	keys         Keys
	demo         bool
	seedPatients int
	gen          *synth.Generator
	log          zerolog.Logger
	bcryptCost   int
	now          func() time.Time

	// seedDepartments is generated once and used both to seed and as the
	// read fallback, so the two agree within a process.
	seedDepartments []domain.Department
}

// New returns a Store over backend. Zero-valued options fall back to defaults,
// except DemoMode.
func New(backend Backend, opts Options) (*Store, error) {
	if backend == nil {
		return nil, errors.New("records: backend required")
	}
	def := DefaultOptions()
	if opts.Keys == (Keys{}) {
		opts.Keys = def.Keys
	}
	if err := opts.Keys.validate(); err != nil {
		return nil, err
	}
	if opts.SeedPatients <= 0 {
		opts.SeedPatients = def.SeedPatients
	}
	if opts.Generator == nil {
		opts.Generator = synth.New()
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = def.BcryptCost
	}
	if opts.Now == nil {
		opts.Now = def.Now
	}
	return &Store{
		backend:         backend,
		keys:            opts.Keys,
		demo:            opts.DemoMode,
		seedPatients:    opts.SeedPatients,
		gen:             opts.Generator,
		log:             opts.Logger.With().Str("component", "records").Logger(),
		bcryptCost:      opts.BcryptCost,
		now:             opts.Now,
		seedDepartments: opts.Generator.GenerateDepartments(),
	}, nil
}

// Keys returns the storage keys in use.
func (s *Store) Keys() Keys { return s.keys }

// Generator returns the generator used for seeding and fallbacks.
func (s *Store) Generator() *synth.Generator { return s.gen }

// Initialize erases the whole backend and reseeds staff, departments and
// patients. The users collection starts empty and no session survives.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.backend.ClearAll(ctx); err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.keys.Staff, synth.SeedStaff()); err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.keys.Departments, s.departmentsFallback()); err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.keys.Patients, s.gen.GeneratePatients(s.seedPatients)); err != nil {
		return err
	}
	if err := s.backend.Put(ctx, s.keys.Users, []domain.User{}); err != nil {
		return err
	}
	s.log.Info().Int("patients", s.seedPatients).Msg("storage reset")
	return nil
}

// ResetStorage is Initialize.
func (s *Store) ResetStorage(ctx context.Context) error { return s.Initialize(ctx) }

// load reads a list under key. A missing, unreadable or null entry reports
// false; an empty stored list reports true.
func load[T any](ctx context.Context, s *Store, key string) ([]T, bool) {
	var out []T
	err := s.backend.Load(ctx, key, &out)
	switch {
	case err == nil:
		return out, out != nil
	case securestore.IsNotFound(err), securestore.IsCorrupt(err):
	default:
		s.log.Warn().Err(err).Str("key", key).Msg("read failed, using fallback")
	}
	return nil, false
}

func (s *Store) departmentsFallback() []domain.Department {
	return append([]domain.Department(nil), s.seedDepartments...)
}

// Patients returns the stored patients, or freshly generated ones (not
// persisted) when none are stored.
func (s *Store) Patients(ctx context.Context) []domain.Patient {
	if v, ok := load[domain.Patient](ctx, s, s.keys.Patients); ok {
		return v
	}
	return s.gen.GeneratePatients(s.seedPatients)
}

// SetPatients overwrites the patients collection.
func (s *Store) SetPatients(ctx context.Context, patients []domain.Patient) error {
	return s.backend.Put(ctx, s.keys.Patients, patients)
}

// Staff returns the stored staff, or the seed staff when none are stored.
func (s *Store) Staff(ctx context.Context) []domain.Staff {
	if v, ok := load[domain.Staff](ctx, s, s.keys.Staff); ok {
		return v
	}
	return synth.SeedStaff()
}

// SetStaff overwrites the staff collection.
func (s *Store) SetStaff(ctx context.Context, staff []domain.Staff) error {
	return s.backend.Put(ctx, s.keys.Staff, staff)
}

// Departments returns the stored departments, or the seed departments when none are stored.
func (s *Store) Departments(ctx context.Context) []domain.Department {
	if v, ok := load[domain.Department](ctx, s, s.keys.Departments); ok {
		return v
	}
	return s.departmentsFallback()
}

// SetDepartments overwrites the departments collection.
func (s *Store) SetDepartments(ctx context.Context, departments []domain.Department) error {
	return s.backend.Put(ctx, s.keys.Departments, departments)
}

func (s *Store) users(ctx context.Context) []domain.User {
	v, _ := load[domain.User](ctx, s, s.keys.Users)
	return v
}

// Users returns the created users without their credentials.
func (s *Store) Users(ctx context.Context) []domain.Staff {
	users := s.users(ctx)
	out := make([]domain.Staff, 0, len(users))
	for _, u := range users {
		out = append(out, u.Session())
	}
	return out
}

// CreateUser validates and appends a user to the users collection. The email
// must not match any seed or created user exactly.
func (s *Store) CreateUser(ctx context.Context, candidate NewUser) (domain.Staff, error) {
	if err := candidate.validate(); err != nil {
		return domain.Staff{}, err
	}
	users := s.users(ctx)
	for _, u := range synth.SeedRoster() {
		if u.Email == candidate.Email {
			return domain.Staff{}, ErrDuplicateEmail
		}
	}
	for _, u := range users {
		if u.Email == candidate.Email {
			return domain.Staff{}, ErrDuplicateEmail
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(candidate.Password), s.bcryptCost)
	if err != nil {
		return domain.Staff{}, err
	}
	user := domain.User{
		Staff: domain.Staff{
			ID:         uuid.NewString(),
			Email:      candidate.Email,
			Name:       candidate.Name,
			Role:       candidate.Role,
			Department: candidate.Department,
			Schedule:   []domain.ShiftEntry{},
			CreatedAt:  s.now().UTC().Truncate(time.Millisecond),
		},
		Password: string(hash),
	}
	if err := s.backend.Put(ctx, s.keys.Users, append(users, user)); err != nil {
		return domain.Staff{}, err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user.Session(), nil
}

// Login authenticates against the seed roster, then the created users. On
// success the user, without password, becomes the current session. In demo
// mode the store is reset first, which also discards created users.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	if s.demo {
		if err := s.Initialize(ctx); err != nil {
			return false, err
		}
	}
	for _, u := range synth.SeedRoster() {
		if u.Email == email && subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1 {
			return s.startSession(ctx, u.Session())
		}
	}
	for _, u := range s.users(ctx) {
		if u.Email == email && bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
			return s.startSession(ctx, u.Session())
		}
	}
	s.log.Debug().Msg("login rejected")
	return false, nil
}

func (s *Store) startSession(ctx context.Context, user domain.Staff) (bool, error) {
	if err := s.backend.Put(ctx, s.keys.CurrentSession, user); err != nil {
		return false, err
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return true, nil
}

// CurrentUser returns the signed-in user, if any.
func (s *Store) CurrentUser(ctx context.Context) (domain.Staff, bool) {
	var user *domain.Staff
	err := s.backend.Load(ctx, s.keys.CurrentSession, &user)
	if err != nil && !securestore.IsNotFound(err) && !securestore.IsCorrupt(err) {
		s.log.Warn().Err(err).Str("key", s.keys.CurrentSession).Msg("read session failed")
	}
	if err != nil || user == nil {
		return domain.Staff{}, false
	}
	return *user, true
}

// Logout ends the current session.
func (s *Store) Logout(ctx context.Context) error {
	return s.backend.Remove(ctx, s.keys.CurrentSession)
}

// AddShift appends entry to the schedule of staff member staffID and
// persists the staff collection.
func (s *Store) AddShift(ctx context.Context, staffID string, entry domain.ShiftEntry) (domain.Staff, error) {
	if err := validateShift(entry); err != nil {
		return domain.Staff{}, err
	}
	staff := s.Staff(ctx)
	for i := range staff {
		if staff[i].ID != staffID {
			continue
		}
		staff[i].Schedule = append(staff[i].Schedule, entry)
		if err := s.SetStaff(ctx, staff); err != nil {
			return domain.Staff{}, err
		}
		return staff[i], nil
	}
	return domain.Staff{}, ErrStaffNotFound
}

// Incidents returns the static incident list.
func (s *Store) Incidents() []domain.Incident { return synth.Incidents() }

// EnsurePatients returns the patients collection, generating and persisting
// n patients when it is empty.
func (s *Store) EnsurePatients(ctx context.Context, n int) ([]domain.Patient, error) {
	patients := s.Patients(ctx)
	if len(patients) > 0 {
		return patients, nil
	}
	patients = s.gen.GeneratePatients(n)
	if err := s.SetPatients(ctx, patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// EnsureDepartments returns the departments collection, persisting the seed
// departments when it is empty.
func (s *Store) EnsureDepartments(ctx context.Context) ([]domain.Department, error) {
	departments := s.Departments(ctx)
	if len(departments) > 0 {
		return departments, nil
	}
	departments = s.departmentsFallback()
	if err := s.SetDepartments(ctx, departments); err != nil {
		return nil, err
	}
	return departments, nil
}
