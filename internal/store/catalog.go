package store

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/storage"
)

func validateCoursePrices(course models.Course) error {
	if course.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if course.DiscountPrice != nil && *course.DiscountPrice >= course.Price {
		return fmt.Errorf("%w: discount price must be below the list price", ErrInvalidInput)
	}
	return nil
}

// AddCourse inserts a new catalog entry and returns it with its assigned id.
// Derived fields are recomputed, not taken from the input.
func (s *Store) AddCourse(course models.Course) (models.Course, error) {
	if err := validateCoursePrices(course); err != nil {
		return models.Course{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if s.findCourse(course.ID) != nil {
		return models.Course{}, fmt.Errorf("%w: course id already exists", ErrInvalidInput)
	}
	if course.Reviews == nil {
		course.Reviews = []models.Review{}
	}
	if course.Sections == nil {
		course.Sections = []models.Section{}
	}
	course.StudentsCount = 0

	s.courses = append(s.courses, course)
	s.mirrorPut(storage.CollectionCourses, course.ID, course)
	s.recomputeStudentCounts()
	return course, nil
}

// UpdateCourse replaces a course's editable fields. Reviews are preserved
// when the update carries none; studentsCount and rating stay derived.
func (s *Store) UpdateCourse(course models.Course) error {
	if err := validateCoursePrices(course); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findCourse(course.ID)
	if existing == nil {
		return ErrNotFound
	}

	if course.Reviews == nil {
		course.Reviews = existing.Reviews
	}
	course.Rating = existing.Rating
	course.StudentsCount = existing.StudentsCount

	*existing = course
	s.mirrorPut(storage.CollectionCourses, existing.ID, *existing)
	return nil
}

// DeleteCourse removes a course from the catalog. Enrollment references in
// user records are left as-is; counts simply stop including the course.
func (s *Store) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			s.mirrorDelete(storage.CollectionCourses, id)
			return nil
		}
	}
	return ErrNotFound
}

// EnrollInCourses adds each course id to the current user's enrollment set.
// Re-enrolling is a no-op, so replays are safe. Fires an enrollment notice.
func (s *Store) EnrollInCourses(courseIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enrollLocked(courseIDs)
}

func (s *Store) enrollLocked(courseIDs []string) error {
	if s.session == nil {
		return ErrNoSession
	}

	user := s.findUser(s.session.ID)
	if user == nil {
		return ErrNotFound
	}

	added := 0
	for _, id := range courseIDs {
		if !user.HasCourse(id) {
			user.PurchasedCourses = append(user.PurchasedCourses, id)
			added++
		}
	}

	s.mirrorPut(storage.CollectionUsers, user.ID, *user)
	s.recomputeStudentCounts()
	s.reconcileSession()

	if added > 0 {
		s.mailer.Send(user.Email,
			"Enrollment Successful",
			fmt.Sprintf("You have successfully enrolled in %d courses.", len(courseIDs)))
	}
	return nil
}

// AdminManageEnrollment mutates any user's enrollment set directly.
func (s *Store) AdminManageEnrollment(userID, courseID string, enroll bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(userID)
	if user == nil {
		return ErrNotFound
	}

	if enroll {
		if !user.HasCourse(courseID) {
			user.PurchasedCourses = append(user.PurchasedCourses, courseID)
		}
	} else {
		for i, id := range user.PurchasedCourses {
			if id == courseID {
				user.PurchasedCourses = append(user.PurchasedCourses[:i], user.PurchasedCourses[i+1:]...)
				break
			}
		}
	}

	s.mirrorPut(storage.CollectionUsers, user.ID, *user)
	s.recomputeStudentCounts()
	s.reconcileSession()
	return nil
}

// MarkLessonCompleted records lesson completion for the current user.
// Idempotent.
func (s *Store) MarkLessonCompleted(courseID, lessonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrNoSession
	}

	user := s.findUser(s.session.ID)
	if user == nil {
		return ErrNotFound
	}

	for _, done := range user.CompletedLessons[courseID] {
		if done == lessonID {
			return nil
		}
	}

	if user.CompletedLessons == nil {
		user.CompletedLessons = map[string][]string{}
	}
	user.CompletedLessons[courseID] = append(user.CompletedLessons[courseID], lessonID)

	s.mirrorPut(storage.CollectionUsers, user.ID, *user)
	s.reconcileSession()
	return nil
}

// CourseProgress returns the current user's completion percentage for a
// course, rounded to an integer. A course without lessons reports 0.
func (s *Store) CourseProgress(courseID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return 0, ErrNoSession
	}

	course := s.findCourse(courseID)
	if course == nil {
		return 0, ErrNotFound
	}

	total := course.TotalLessons()
	if total == 0 {
		return 0, nil
	}

	completed := len(s.session.CompletedLessons[courseID])
	return int(math.Round(float64(completed) / float64(total) * 100)), nil
}

// AddReview appends a review for the current user and recomputes the course
// rating as the mean of all review ratings, rounded to one decimal place.
// One review per user per course.
func (s *Store) AddReview(courseID string, rating int, comment string) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return models.Review{}, ErrNoSession
	}
	if rating < 1 || rating > 5 {
		return models.Review{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	course := s.findCourse(courseID)
	if course == nil {
		return models.Review{}, ErrNotFound
	}

	for _, r := range course.Reviews {
		if r.UserID == s.session.ID {
			return models.Review{}, ErrDuplicateReview
		}
	}

	review := models.Review{
		ID:       uuid.NewString(),
		UserID:   s.session.ID,
		UserName: s.session.Name,
		Rating:   rating,
		Comment:  comment,
		Date:     time.Now().Format("2006-01-02"),
	}

	course.Reviews = append(course.Reviews, review)
	course.Rating = meanRating(course.Reviews)
	s.mirrorPut(storage.CollectionCourses, course.ID, *course)

	s.mailer.Send(s.settings.SupportEmail,
		"New Review Submitted",
		fmt.Sprintf("User %s reviewed course %s with %d stars.", review.UserName, courseID, rating))

	return review, nil
}

func meanRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}
