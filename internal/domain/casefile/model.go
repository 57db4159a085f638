package casefile

import (
	"errors"
	"strings"
	"time"
)

// Case status constants.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength           = 200
	MaxCourtNameLength       = 200
	MaxReviewerLength        = 200
	MaxDescriptionLength     = 2000
	MaxLongDescriptionLength = 10000
	MaxLawyers               = 20
	MaxLawyerNameLength      = 200
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("case title cannot be empty")
	ErrInvalidStatus    = errors.New("case status must be one of: active, completed, cancelled")
	ErrNotActive        = errors.New("case is not active")
	ErrAlreadyActive    = errors.New("case is already active")
	ErrDeleted          = errors.New("case has been deleted")
	ErrTooManyLawyers   = errors.New("a case cannot list more than 20 lawyers")
	ErrLawyerNameLength = errors.New("lawyer name cannot exceed 200 characters")
)

// Case represents a legal matter tracked on the office calendar.
// A case persists as a single row across session reschedules; scheduling
// history lives in its sessions and activity entries.
// INVARIANT: Status is one of the Status* constants.
// INVARIANT: a non-zero DeletedAt means the case is hidden from all reads.
type Case struct {
	ID              string
	Title           string
	CourtName       string
	Lawyers         []string
	Reviewer        string
	Description     string
	LongDescription string
	Status          string
	CreatedAt       time.Time
	CreatedBy       string // account ID
	DeletedAt       time.Time
}

// Validate checks the case's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (c *Case) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if len(c.Title) > MaxTitleLength {
		return errors.New("case title cannot exceed 200 characters")
	}
	if c.Status != StatusActive && c.Status != StatusCompleted && c.Status != StatusCancelled {
		return ErrInvalidStatus
	}
	if len(c.CourtName) > MaxCourtNameLength {
		return errors.New("court name cannot exceed 200 characters")
	}
	if len(c.Reviewer) > MaxReviewerLength {
		return errors.New("reviewer cannot exceed 200 characters")
	}
	if len(c.Description) > MaxDescriptionLength {
		return errors.New("case description cannot exceed 2000 characters")
	}
	if len(c.LongDescription) > MaxLongDescriptionLength {
		return errors.New("case details cannot exceed 10000 characters")
	}
	if len(c.Lawyers) > MaxLawyers {
		return ErrTooManyLawyers
	}
	for _, l := range c.Lawyers {
		if len(l) > MaxLawyerNameLength {
			return ErrLawyerNameLength
		}
	}
	return nil
}

// IsDeleted returns true if the case has been soft-deleted.
// INVARIANT: Case fields are not mutated
func (c *Case) IsDeleted() bool {
	return !c.DeletedAt.IsZero()
}

// Complete transitions an active case to completed.
// PRE: case is active and not deleted
// POST: Status is completed
func (c *Case) Complete() error {
	if c.IsDeleted() {
		return ErrDeleted
	}
	if c.Status != StatusActive {
		return ErrNotActive
	}
	c.Status = StatusCompleted
	return nil
}

// Cancel transitions an active case to cancelled.
// PRE: case is active and not deleted
// POST: Status is cancelled
func (c *Case) Cancel() error {
	if c.IsDeleted() {
		return ErrDeleted
	}
	if c.Status != StatusActive {
		return ErrNotActive
	}
	c.Status = StatusCancelled
	return nil
}

// Reopen transitions a completed or cancelled case back to active.
// PRE: case is completed or cancelled and not deleted
// POST: Status is active
func (c *Case) Reopen() error {
	if c.IsDeleted() {
		return ErrDeleted
	}
	if c.Status == StatusActive {
		return ErrAlreadyActive
	}
	c.Status = StatusActive
	return nil
}

// SoftDelete marks the case deleted at the given time.
// Cases are never hard-deleted; a deleted case is excluded from month
// fetches and detail reads.
// PRE: case is not already deleted
// POST: DeletedAt is set
func (c *Case) SoftDelete(at time.Time) error {
	if c.IsDeleted() {
		return ErrDeleted
	}
	c.DeletedAt = at
	return nil
}
