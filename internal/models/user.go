package models

import "time"

// Role distinguishes regular students from platform administrators.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is the canonical account record persisted in the "users" collection.
// Either Email or Phone may serve as the login identifier; whichever is set
// must be unique across all users.
type User struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone,omitempty"`
	PasswordHash     string              `json:"password_hash"`
	Role             Role                `json:"role"`
	PurchasedCourses []string            `json:"purchased_courses"`
	CompletedLessons map[string][]string `json:"completed_lessons"`
	JoinedDate       time.Time           `json:"joined_date"`
	LastLogin        time.Time           `json:"last_login"`
}

// HasCourse reports whether the user is enrolled in the given course.
func (u *User) HasCourse(courseID string) bool {
	for _, id := range u.PurchasedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// Redacted returns a deep copy of the user with credentials stripped,
// suitable for use as the in-memory session projection.
func (u User) Redacted() User {
	u.PasswordHash = ""
	purchased := make([]string, len(u.PurchasedCourses))
	copy(purchased, u.PurchasedCourses)
	u.PurchasedCourses = purchased

	completed := make(map[string][]string, len(u.CompletedLessons))
	for courseID, lessons := range u.CompletedLessons {
		cp := make([]string, len(lessons))
		copy(cp, lessons)
		completed[courseID] = cp
	}
	u.CompletedLessons = completed
	return u
}
