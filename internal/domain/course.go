package domain

import (
	"time"
)

// Course represents a course in the catalog. Every course is owned by
// exactly one user via the UserID foreign key.
type Course struct {
	// ID is the unique identifier for the course (auto-generated).
	ID int64 `json:"id"`

	// Title is the course title. Required, non-empty.
	Title string `json:"title"`

	// Description is the course description. Required, non-empty.
	Description string `json:"description"`

	// EstimatedTime is the estimated time to complete the course. Optional.
	EstimatedTime *string `json:"estimatedTime"`

	// MaterialsNeeded lists the materials needed for the course. Optional.
	MaterialsNeeded *string `json:"materialsNeeded"`

	// UserID is the ID of the user who owns this course. Required, must
	// reference an existing user.
	UserID int64 `json:"userId"`

	// User is the owning user, populated when the course is loaded with
	// its association. The password hash is never serialized.
	User *User `json:"user,omitempty"`

	// CreatedAt is the timestamp when the course was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the course was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCourse creates a new Course owned by the given user.
func NewCourse(title, description string, estimatedTime, materialsNeeded *string, userID int64) *Course {
	now := time.Now().UTC()
	return &Course{
		Title:           title,
		Description:     description,
		EstimatedTime:   estimatedTime,
		MaterialsNeeded: materialsNeeded,
		UserID:          userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
