// Package models defines the entities stored by the bot.
package models

import "time"

// User is created on first /start and never deleted.
type User struct {
	ID         int64     `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	Username   string    `db:"username"`
	FullName   string    `db:"full_name"`
	IsAdmin    bool      `db:"is_admin"`
	CreatedAt  time.Time `db:"created_at"`
}

// Mentor rows are retained after deactivation so historical event
// references stay resolvable.
type Mentor struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Bio            string `db:"bio"`
	Specialization string `db:"specialization"`
	ContactInfo    string `db:"contact_info"`
	IsActive       bool   `db:"is_active"`
}

// Event may reference a mentor that has since been deactivated.
type Event struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	EventType   string    `db:"event_type"`
	MentorID    *int64    `db:"mentor_id"`
	DateTime    time.Time `db:"date_time"`
	Location    string    `db:"location"`
	IsActive    bool      `db:"is_active"`
	CreatedBy   *int64    `db:"created_by"`

	// MentorName is populated by read-model queries that join mentors.
	MentorName *string `db:"mentor_name"`
}

// Lecture is an uploaded recording grouped by category.
type Lecture struct {
	ID              int64     `db:"id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Category        string    `db:"category"`
	MentorID        *int64    `db:"mentor_id"`
	FilePath        *string   `db:"file_path"`
	VideoURL        *string   `db:"video_url"`
	DurationMinutes int       `db:"duration_minutes"`
	UploadedAt      time.Time `db:"uploaded_at"`
	UploadedBy      *int64    `db:"uploaded_by"`

	MentorName *string `db:"mentor_name"`
}

// Vacancy is a job posting.
type Vacancy struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Company     string    `db:"company"`
	Description string    `db:"description"`
	Requirements string   `db:"requirements"`
	SalaryRange string    `db:"salary_range"`
	Location    string    `db:"location"`
	ContactInfo string    `db:"contact_info"`
	IsActive    bool      `db:"is_active"`
	PostedAt    time.Time `db:"posted_at"`
	PostedBy    *int64    `db:"posted_by"`
}

// Project is a collaborative community project.
type Project struct {
	ID             int64     `db:"id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Status         string    `db:"status"`
	RequiredSkills string    `db:"required_skills"`
	ContactPerson  *int64    `db:"contact_person"`
	IsActive       bool      `db:"is_active"`
	CreatedAt      time.Time `db:"created_at"`
}
