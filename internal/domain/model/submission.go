package model

import (
	"strings"
	"time"

	derror "telegram-trending-ads/internal/error"
)

// Submission is a coin listing a submitter wants advertised. A submitter
// holds at most one live Submission at a time; it is destroyed on successful
// publication or an explicit clear.
type Submission struct {
	ID              string // UUID
	SubmitterID     int64  // Telegram chat id of the submitter
	Name            string
	ContractAddress string
	Link            string
	CreatedAt       time.Time
}

// ParseSubmission parses the free-text form `Name - Address - Link`.
// Exactly three " - " separated fields are required; fields are trimmed.
func ParseSubmission(submitterID int64, text string) (*Submission, error) {
	parts := strings.Split(strings.TrimSpace(text), " - ")
	if len(parts) != 3 {
		return nil, derror.ErrMalformedSubmissionFormat
	}
	name := strings.TrimSpace(parts[0])
	addr := strings.TrimSpace(parts[1])
	link := strings.TrimSpace(parts[2])
	if name == "" || addr == "" || link == "" {
		return nil, derror.ErrMalformedSubmissionFormat
	}
	return &Submission{
		SubmitterID:     submitterID,
		Name:            name,
		ContractAddress: addr,
		Link:            link,
		CreatedAt:       time.Now(),
	}, nil
}

// PendingEntry is a queued snapshot of a submission awaiting publication
// after payment confirmation.
type PendingEntry struct {
	ID          string // ULID, lexically time-ordered
	SubmitterID int64
	Submission  Submission
	EnqueuedAt  time.Time
}
