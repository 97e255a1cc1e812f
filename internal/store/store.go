package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/storage"
)

// Domain errors surfaced by store intents. Handlers translate them to HTTP
// status codes; nothing here is fatal.
var (
	ErrNoSession       = errors.New("no active session")
	ErrNotFound        = errors.New("record not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateReview = errors.New("user already reviewed this course")
	ErrMethodDisabled  = errors.New("payment method is disabled")
	ErrBadState        = errors.New("operation not allowed in current checkout state")
)

const mirrorTimeout = 5 * time.Second

// Mailer is the outbound notification sink: fire-and-forget, never fails the
// caller.
type Mailer interface {
	Send(to, subject, body string)
}

type noopMailer struct{}

func (noopMailer) Send(string, string, string) {}

// Options configures a Store.
type Options struct {
	Engine   storage.Engine
	Mailer   Mailer
	Snapshot *Snapshot

	// CheckoutDelay simulates payment-gateway processing time for the visa
	// and vodafone flows. Zero finalizes synchronously.
	CheckoutDelay  time.Duration
	WhatsAppNumber string
}

// Store is the single application-state container. All reads and mutations
// are serialized behind one mutex, so every intent observes and commits a
// consistent state. Durable writes are mirrored asynchronously: the in-memory
// state is authoritative for the running process and a failed mirror write is
// logged and dropped.
type Store struct {
	mu sync.Mutex

	engine         storage.Engine
	mailer         Mailer
	snapshot       *Snapshot
	checkoutDelay  time.Duration
	whatsAppNumber string

	users         []models.User
	courses       []models.Course
	session       *models.User
	cart          []models.CartItem
	coupons       []models.Coupon
	settings      models.SiteSettings
	notifications []models.SystemNotification
	checkout      Checkout

	mirrors sync.WaitGroup
}

// New builds a Store. Call Load before serving intents.
func New(opts Options) *Store {
	mailer := opts.Mailer
	if mailer == nil {
		mailer = noopMailer{}
	}

	return &Store{
		engine:         opts.Engine,
		mailer:         mailer,
		snapshot:       opts.Snapshot,
		checkoutDelay:  opts.CheckoutDelay,
		whatsAppNumber: opts.WhatsAppNumber,
		settings:       defaultSettings(),
		coupons:        seedCoupons(),
		checkout:       Checkout{Step: StepReview},
	}
}

// Load reads both collections from the storage engine, falling back to seed
// data when a collection is empty or unreadable, then restores a remembered
// session if one resolves to a live user.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = loadCollection[models.Course](ctx, s.engine, storage.CollectionCourses)
	if len(s.courses) == 0 {
		s.courses = seedCourses()
		for _, c := range s.courses {
			s.mirrorPut(storage.CollectionCourses, c.ID, c)
		}
	}

	s.users = loadCollection[models.User](ctx, s.engine, storage.CollectionUsers)
	if len(s.users) == 0 {
		s.users = seedUsers()
		for _, u := range s.users {
			s.mirrorPut(storage.CollectionUsers, u.ID, u)
		}
	}

	s.recomputeStudentCounts()
	s.restoreSession()
}

func loadCollection[T any](ctx context.Context, engine storage.Engine, name string) []T {
	raw, err := engine.GetAll(ctx, name)
	if err != nil {
		log.Printf("[Store] Failed to load %s, falling back to seed data: %v", name, err)
		return nil
	}

	out := make([]T, 0, len(raw))
	for _, data := range raw {
		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			log.Printf("[Store] Skipping corrupt %s record: %v", name, err)
			continue
		}
		out = append(out, record)
	}
	return out
}

// Wait blocks until every pending mirror write has settled. Used on shutdown
// and by tests.
func (s *Store) Wait() {
	s.mirrors.Wait()
}

// mirrorPut schedules a best-effort durable upsert. Errors are logged and
// swallowed; the next successful write reconciles (whole-record upserts make
// this safe).
func (s *Store) mirrorPut(collection, id string, record any) {
	s.mirrors.Add(1)
	go func() {
		defer s.mirrors.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := s.engine.Put(ctx, collection, id, record); err != nil {
			log.Printf("[Store] Mirror write failed (%s/%s): %v", collection, id, err)
		}
	}()
}

func (s *Store) mirrorDelete(collection, id string) {
	s.mirrors.Add(1)
	go func() {
		defer s.mirrors.Done()
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := s.engine.Delete(ctx, collection, id); err != nil {
			log.Printf("[Store] Mirror delete failed (%s/%s): %v", collection, id, err)
		}
	}()
}

// --- lookups (mutex held) ---

func (s *Store) findUser(id string) *models.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) findUserByIdentifier(identifier string) *models.User {
	for i := range s.users {
		if s.users[i].Email == identifier || (s.users[i].Phone != "" && s.users[i].Phone == identifier) {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) findCourse(id string) *models.Course {
	for i := range s.courses {
		if s.courses[i].ID == id {
			return &s.courses[i]
		}
	}
	return nil
}

// --- derived-state recomputation (mutex held) ---
//
// Recomputes run as pure functions over current state after each committed
// mutation, in a fixed order: enrollment -> studentsCount, review -> rating,
// canonical user -> session projection.

// recomputeStudentCounts derives every course's student count from the
// enrollment sets. Changed courses are mirrored.
func (s *Store) recomputeStudentCounts() {
	for i := range s.courses {
		count := 0
		for j := range s.users {
			if s.users[j].HasCourse(s.courses[i].ID) {
				count++
			}
		}
		if s.courses[i].StudentsCount != count {
			s.courses[i].StudentsCount = count
			s.mirrorPut(storage.CollectionCourses, s.courses[i].ID, s.courses[i])
		}
	}
}

// reconcileSession refreshes the session projection from the canonical user
// record and rewrites the remembered snapshot when one exists. A vanished
// canonical record terminates the session.
func (s *Store) reconcileSession() {
	if s.session == nil {
		return
	}

	canonical := s.findUser(s.session.ID)
	if canonical == nil {
		s.clearSession()
		return
	}

	projection := canonical.Redacted()
	s.session = &projection

	if s.snapshot != nil && s.snapshot.Exists() {
		s.snapshot.Save(projection)
	}
}

func (s *Store) clearSession() {
	s.session = nil
	s.cart = nil
	s.checkout = Checkout{Step: StepReview}
	if s.snapshot != nil {
		s.snapshot.Clear()
	}
}

// --- read accessors ---

// Courses returns a copy of the catalog.
func (s *Store) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Course returns a course by id.
func (s *Store) Course(id string) (models.Course, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findCourse(id); c != nil {
		return *c, true
	}
	return models.Course{}, false
}

// CurrentUser returns the session projection, or nil when anonymous.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// Users returns every canonical user with credentials redacted.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for i := range s.users {
		out = append(out, s.users[i].Redacted())
	}
	return out
}

// Settings returns the current site settings.
func (s *Store) Settings() models.SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Notifications returns the broadcast list, newest first.
func (s *Store) Notifications() []models.SystemNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SystemNotification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Coupons returns the in-memory coupon set.
func (s *Store) Coupons() []models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Coupon, len(s.coupons))
	copy(out, s.coupons)
	return out
}
