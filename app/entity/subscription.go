package entity

import "time"

type SubjectType string

const (
	SubjectPersonal  SubjectType = "personal"
	SubjectCorporate SubjectType = "corporate"
)

func (t SubjectType) Valid() bool {
	return t == SubjectPersonal || t == SubjectCorporate
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusHold     Status = "Hold for Customer"
	StatusEscalate Status = "Escalate to Manager"
	// StatusCompleted is a pseudo-state: it is never persisted, it triggers
	// the completion workflow and deletion of the subscription record.
	StatusCompleted Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusHold, StatusEscalate, StatusCompleted:
		return true
	default:
		return false
	}
}

// Subscription is the pipeline's unit of work: one subject (person or company)
// enrolled in one service.
type Subscription struct {
	ID            string
	SubjectType   SubjectType
	SubjectID     string
	ServiceID     string
	ServiceName   string
	SubjectName   string
	Phone         string
	Email         string
	ClientCode    string
	ProcessorIDs  []string
	Status        Status
	Notes         string
	BillingAmount *float64
	CreatedAt     time.Time
}

// AgeInDays is computed from the record creation time, never persisted.
func (s *Subscription) AgeInDays(now time.Time) int {
	if s.CreatedAt.IsZero() || now.Before(s.CreatedAt) {
		return 0
	}
	return int(now.Sub(s.CreatedAt).Hours() / 24)
}

func (s *Subscription) Unassigned() bool {
	return len(s.ProcessorIDs) == 0
}
