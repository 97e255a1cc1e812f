package store

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/storage"
	"github.com/example/albaz/internal/utils"
)

// AdminUserUpdate carries a privileged partial update of any user record.
type AdminUserUpdate struct {
	Name     *string      `json:"name"`
	Email    *string      `json:"email"`
	Phone    *string      `json:"phone"`
	Password *string      `json:"password"`
	Role     *models.Role `json:"role"`
}

// AdminUpdateUser merges the update into the target's canonical record. If
// the target is the active session, the projection follows immediately.
func (s *Store) AdminUpdateUser(userID string, update AdminUserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(userID)
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
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Password != nil && *update.Password != "" {
		hash, err := utils.HashPassword(*update.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	s.mirrorPut(storage.CollectionUsers, user.ID, *user)
	s.reconcileSession()
	return nil
}

// DeleteUser removes a canonical user. Deleting the active session's user
// terminates the session as a side effect.
func (s *Store) DeleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteUserLocked(userID)
}

func (s *Store) deleteUserLocked(userID string) error {
	for i := range s.users {
		if s.users[i].ID == userID {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.mirrorDelete(storage.CollectionUsers, userID)

			if s.session != nil && s.session.ID == userID {
				s.clearSession()
			}

			s.recomputeStudentCounts()
			return nil
		}
	}
	return ErrNotFound
}

// BulkDeleteUsers removes several users; absent ids are skipped.
func (s *Store) BulkDeleteUsers(userIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range userIDs {
		_ = s.deleteUserLocked(id)
	}
}

// LoginAsUser sets the session to the target's current canonical projection
// without a password check and without touching lastLogin. Impersonation is
// admin-only; route guards enforce that.
func (s *Store) LoginAsUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(userID)
	if user == nil {
		return ErrNotFound
	}

	projection := user.Redacted()
	s.session = &projection
	s.cart = nil
	s.checkout = Checkout{Step: StepReview}
	return nil
}

// SendNotification appends a broadcast notice, newest first.
func (s *Store) SendNotification(title, message string, typ models.NotificationType) models.SystemNotification {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification := models.SystemNotification{
		ID:      uuid.NewString(),
		Title:   title,
		Message: message,
		Type:    typ,
		Date:    time.Now(),
	}
	s.notifications = append([]models.SystemNotification{notification}, s.notifications...)
	return notification
}

// RemoveNotification dismisses a notice by id.
func (s *Store) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// UpdateSettings replaces the site settings singleton. Applies immediately to
// all readers.
func (s *Store) UpdateSettings(settings models.SiteSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// ExportUsersCSV renders the user list as a CSV document.
func (s *Store) ExportUsersCSV() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{"ID", "Name", "Email", "Phone", "Role", "Joined Date", "Enrolled Courses Count"})
	for i := range s.users {
		u := &s.users[i]
		_ = w.Write([]string{
			u.ID,
			u.Name,
			u.Email,
			u.Phone,
			string(u.Role),
			u.JoinedDate.Format(time.RFC3339),
			strconv.Itoa(len(u.PurchasedCourses)),
		})
	}
	w.Flush()
	return sb.String()
}
