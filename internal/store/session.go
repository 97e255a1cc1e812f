package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/storage"
	"github.com/example/albaz/internal/utils"
)

// LoginResult discriminates the outcome of a login attempt.
type LoginResult string

const (
	LoginSuccess       LoginResult = "success"
	LoginNotFound      LoginResult = "not_found"
	LoginWrongPassword LoginResult = "wrong_password"
)

// Login authenticates by exact email or phone match. An empty password skips
// the credential check; that variant backs the admin impersonation path and
// must not be reachable from unauthenticated callers. On success the user's
// lastLogin is updated and, with rememberMe, the session snapshot is written.
func (s *Store) Login(identifier, password string, rememberMe bool) LoginResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUserByIdentifier(identifier)
	if user == nil {
		return LoginNotFound
	}

	if password != "" && !utils.CheckPassword(user.PasswordHash, password) {
		return LoginWrongPassword
	}

	user.LastLogin = time.Now()
	s.mirrorPut(storage.CollectionUsers, user.ID, *user)

	projection := user.Redacted()
	s.session = &projection

	if rememberMe && s.snapshot != nil {
		s.snapshot.Save(projection)
	}

	return LoginSuccess
}

// Register creates a Student account and authenticates it. Returns false when
// the identifier (email or phone) is already registered. An identifier
// containing '@' is treated as an email, anything else as a phone number.
func (s *Store) Register(name, identifier, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserByIdentifier(identifier) != nil {
		return false
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false
	}

	now := time.Now()
	user := models.User{
		ID:               "u-" + uuid.NewString(),
		Name:             name,
		Email:            identifier,
		PasswordHash:     hash,
		Role:             models.RoleStudent,
		PurchasedCourses: []string{},
		CompletedLessons: map[string][]string{},
		JoinedDate:       now,
		LastLogin:        now,
	}
	if !strings.Contains(identifier, "@") {
		user.Phone = identifier
	}

	s.users = append(s.users, user)
	s.mirrorPut(storage.CollectionUsers, user.ID, user)

	projection := user.Redacted()
	s.session = &projection
	return true
}

// Logout clears the session, the cart and the remembered snapshot. The
// canonical user record is untouched.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSession()
}

// UserUpdate carries a partial self-service profile update. Role and id are
// not part of it by construction.
type UserUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// UpdateUser merges the update into the caller's own canonical record. A
// password change triggers a security alert to the user's email.
func (s *Store) UpdateUser(update UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoSession
	}

	user := s.findUser(s.session.ID)
	if user == nil {
		return ErrNotFound
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}

	passwordChanged := false
	if update.Password != nil && *update.Password != "" {
		if !utils.CheckPassword(user.PasswordHash, *update.Password) {
			hash, err := utils.HashPassword(*update.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
			passwordChanged = true
		}
	}

	s.mirrorPut(storage.CollectionUsers, user.ID, *user)
	s.reconcileSession()

	if passwordChanged {
		s.mailer.Send(user.Email,
			"Security Alert: Password Changed",
			"Your account password has been updated successfully.")
	}

	return nil
}

// restoreSession resolves the remembered snapshot against the live user
// collection. The session is rebuilt from the current canonical record, not
// from the snapshot contents, so role and enrollment are always fresh. A
// snapshot pointing at a deleted user is discarded.
func (s *Store) restoreSession() {
	if s.snapshot == nil {
		return
	}

	remembered, ok := s.snapshot.Load()
	if !ok {
		return
	}

	canonical := s.findUser(remembered.ID)
	if canonical == nil {
		s.snapshot.Clear()
		return
	}

	projection := canonical.Redacted()
	s.session = &projection
}
