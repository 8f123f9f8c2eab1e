package model

import (
	"time"

	"github.com/supermega/opsd/internal/auth"
)

// DefaultSource tags submissions that arrive without an explicit source.
const DefaultSource = "contact_form"

type ContactForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company,omitempty"`
	Plan         string `json:"plan,omitempty"`
	UseCase      string `json:"useCase,omitempty"`
	Message      string `json:"message,omitempty"`
	ScheduleCall bool   `json:"scheduleCall,omitempty"`
	Source       string `json:"source,omitempty"`
}

type ContactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ContactID string `json:"contact_id"`
}

type GoogleAuthRequest struct {
	Credential string `json:"credential"`
	ClientID   string `json:"client_id"`
}

type GoogleAuthResponse struct {
	Success      bool          `json:"success"`
	User         *auth.Profile `json:"user"`
	SessionToken string        `json:"session_token"`
}

type CalendarEventRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Duration int    `json:"duration,omitempty"`
}

type CalendarEventResponse struct {
	Success  bool   `json:"success"`
	EventID  string `json:"event_id"`
	MeetLink string `json:"meet_link"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Submission is an accepted contact form. Immutable after creation; its only
// durable form is a spreadsheet row.
type Submission struct {
	ID           string
	CreatedAt    time.Time
	Name         string
	Email        string
	Company      string
	Plan         string
	UseCase      string
	Message      string
	ScheduleCall bool
	Source       string
	Status       string
}

// SheetHeader lists the spreadsheet columns, in row order.
func SheetHeader() []string {
	return []string{
		"id", "timestamp", "name", "email", "company", "plan",
		"use_case", "message", "schedule_call", "source", "status",
	}
}

// SheetRow renders the submission as a spreadsheet row matching SheetHeader.
func (s *Submission) SheetRow() []any {
	return []any{
		s.ID,
		s.CreatedAt.Format(time.RFC3339),
		s.Name,
		s.Email,
		s.Company,
		s.Plan,
		s.UseCase,
		s.Message,
		s.ScheduleCall,
		s.Source,
		s.Status,
	}
}
