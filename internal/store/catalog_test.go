package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/store"
)

func TestAddCourseValidatesPrices(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	_, err := s.AddCourse(models.Course{Title: "Bad", Price: -1})
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	discount := 1000.0
	_, err = s.AddCourse(models.Course{Title: "Bad", Price: 800, DiscountPrice: &discount})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestAddCourseIgnoresSubmittedDerivedFields(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	created, err := s.AddCourse(models.Course{
		ID:            "new-course",
		Title:         "Fresh",
		Price:         700,
		StudentsCount: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.StudentsCount)

	course, ok := s.Course("new-course")
	require.True(t, ok)
	assert.Equal(t, 0, course.StudentsCount)
	assert.NotNil(t, course.Reviews)
	assert.NotNil(t, course.Sections)
}

func TestAddCourseRejectsDuplicateID(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	_, err := s.AddCourse(models.Course{ID: "1", Title: "Clone", Price: 100})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestUpdateCoursePreservesReviewsAndDerivedState(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	require.NoError(t, s.UpdateCourse(models.Course{
		ID:     "1",
		Title:  "React Updated",
		Price:  2000,
		Rating: 1.0,
	}))

	course, ok := s.Course("1")
	require.True(t, ok)
	assert.Equal(t, "React Updated", course.Title)
	assert.Equal(t, 2000.0, course.Price)
	assert.Len(t, course.Reviews, 2)
	assert.Equal(t, 4.8, course.Rating)
	assert.Equal(t, 1, course.StudentsCount)
}

func TestDeleteCourse(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	require.NoError(t, s.DeleteCourse("5"))
	_, ok := s.Course("5")
	assert.False(t, ok)

	assert.ErrorIs(t, s.DeleteCourse("5"), store.ErrNotFound)
}

func TestEnrollIsIdempotentAndRecountsStudents(t *testing.T) {
	mailer := &mailRecorder{}
	s, _ := newTestStore(t, store.Options{Mailer: mailer})
	loginStudent(t, s)

	require.NoError(t, s.EnrollInCourses([]string{"2", "2", "3"}))

	user := s.CurrentUser()
	require.NotNil(t, user)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, user.PurchasedCourses)

	course, _ := s.Course("2")
	assert.Equal(t, 1, course.StudentsCount)

	// Replaying the same enrollment changes nothing.
	require.NoError(t, s.EnrollInCourses([]string{"2", "3"}))
	user = s.CurrentUser()
	assert.Len(t, user.PurchasedCourses, 3)

	assert.Contains(t, mailer.Subjects(), "Enrollment Successful")
}

func TestEnrollRequiresSession(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})
	assert.ErrorIs(t, s.EnrollInCourses([]string{"2"}), store.ErrNoSession)
}

func TestAdminManageEnrollment(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	require.NoError(t, s.AdminManageEnrollment("student-002", "1", false))
	course, _ := s.Course("1")
	assert.Equal(t, 0, course.StudentsCount)

	require.NoError(t, s.AdminManageEnrollment("student-002", "4", true))
	course, _ = s.Course("4")
	assert.Equal(t, 1, course.StudentsCount)

	assert.ErrorIs(t, s.AdminManageEnrollment("ghost", "1", true), store.ErrNotFound)
}

func TestLessonCompletionAndProgress(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})
	loginStudent(t, s)

	require.NoError(t, s.MarkLessonCompleted("1", "l1"))
	require.NoError(t, s.MarkLessonCompleted("1", "l1"))

	// Course 1 carries 5 lessons across two sections.
	progress, err := s.CourseProgress("1")
	require.NoError(t, err)
	assert.Equal(t, 20, progress)

	require.NoError(t, s.MarkLessonCompleted("1", "l2"))
	progress, err = s.CourseProgress("1")
	require.NoError(t, err)
	assert.Equal(t, 40, progress)
}

func TestCourseProgressWithoutLessons(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})
	loginStudent(t, s)

	progress, err := s.CourseProgress("2")
	require.NoError(t, err)
	assert.Equal(t, 0, progress)
}

func TestCourseProgressErrors(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	_, err := s.CourseProgress("1")
	assert.ErrorIs(t, err, store.ErrNoSession)

	loginStudent(t, s)
	_, err = s.CourseProgress("ghost")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddReviewRecomputesRating(t *testing.T) {
	mailer := &mailRecorder{}
	s, _ := newTestStore(t, store.Options{Mailer: mailer})
	loginStudent(t, s)

	review, err := s.AddReview("1", 3, "Decent but dated.")
	require.NoError(t, err)
	assert.Equal(t, "student-002", review.UserID)

	course, _ := s.Course("1")
	require.Len(t, course.Reviews, 3)
	// (5 + 4 + 3) / 3, rounded to one decimal.
	assert.Equal(t, 4.0, course.Rating)

	assert.Contains(t, mailer.Subjects(), "New Review Submitted")
}

func TestAddReviewOncePerUser(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})
	loginStudent(t, s)

	_, err := s.AddReview("1", 5, "First!")
	require.NoError(t, err)

	_, err = s.AddReview("1", 4, "Second?")
	assert.ErrorIs(t, err, store.ErrDuplicateReview)
}

func TestAddReviewValidation(t *testing.T) {
	s, _ := newTestStore(t, store.Options{})

	_, err := s.AddReview("1", 5, "anon")
	assert.ErrorIs(t, err, store.ErrNoSession)

	loginStudent(t, s)
	_, err = s.AddReview("1", 0, "bad rating")
	assert.ErrorIs(t, err, store.ErrInvalidInput)
	_, err = s.AddReview("1", 6, "bad rating")
	assert.ErrorIs(t, err, store.ErrInvalidInput)
	_, err = s.AddReview("ghost", 5, "no course")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
