package store_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/store"
)

func TestAdminUpdateUserReconcilesSession(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})
	loginStudent(t, s)

	name := "Promoted Student"
	role := models.RoleAdmin
	require.NoError(t, s.AdminUpdateUser("student-002", store.AdminUserUpdate{Name: &name, Role: &role}))

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "Promoted Student", user.Name)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestAdminUpdateUserPassword(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	password := "reset-by-admin"
	require.NoError(t, s.AdminUpdateUser("student-002", store.AdminUserUpdate{Password: &password}))

	assert.Equal(t, store.LoginSuccess, s.Login(store.SeedStudentEmail, "reset-by-admin", false))
}

func TestAdminUpdateUnknownUser(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	name := "Ghost"
	assert.ErrorIs(t, s.AdminUpdateUser("ghost", store.AdminUserUpdate{Name: &name}), store.ErrNotFound)
}

func TestDeleteUserRecountsStudents(t *testing.T) {
	s, engine := newTestStore(t, store.Options{})

	require.NoError(t, s.DeleteUser("student-002"))
	assert.Len(t, s.Users(), 1)

	course, _ := s.Course("1")
	assert.Equal(t, 0, course.StudentsCount)

	s.Wait()
	assert.Equal(t, 1, engine.Count("users"))

	assert.ErrorIs(t, s.DeleteUser("student-002"), store.ErrNotFound)
}

func TestDeleteOwnUserEndsSession(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})
	loginStudent(t, s)

	require.NoError(t, s.DeleteUser("student-002"))
	assert.Nil(t, s.CurrentUser())
}

func TestBulkDeleteSkipsMissingIDs(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	s.BulkDeleteUsers([]string{"student-002", "ghost"})
	assert.Len(t, s.Users(), 1)
}

func TestLoginAsUserClearsCartAndCheckout(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})
	require.Equal(t, store.LoginSuccess, s.Login(store.SeedAdminEmail, store.SeedAdminPassword, false))
	require.NoError(t, s.AddToCart("2"))

	require.NoError(t, s.LoginAsUser("student-002"))

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "student-002", user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.Empty(t, s.Cart())
	assert.Equal(t, store.StepReview, s.Checkout().Step)

	assert.ErrorIs(t, s.LoginAsUser("ghost"), store.ErrNotFound)
}

func TestNotificationsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	first := s.SendNotification("Maintenance", "Tonight at 2am", models.NoticeAlert)
	second := s.SendNotification("New course", "Check the catalog", models.NoticeInfo)

	list := s.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	s.RemoveNotification(first.ID)
	list = s.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestUpdateSettingsAppliesImmediately(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	settings := s.Settings()
	settings.SiteTheme = models.ThemeRamadan
	settings.BrandName = "Albaz Academy"
	s.UpdateSettings(settings)

	got := s.Settings()
	assert.Equal(t, models.ThemeRamadan, got.SiteTheme)
	assert.Equal(t, "Albaz Academy", got.BrandName)
}

func TestExportUsersCSV(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	out := s.ExportUsersCSV()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Email,Phone,Role,Joined Date,Enrolled Courses Count", lines[0])
	assert.Contains(t, out, store.SeedStudentEmail)
	assert.Contains(t, out, "student-002")
}
