package service

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidSubjectType   = errors.New("invalid subject type")
)

// UpstreamError marks a failed call to the record store or the billing ledger.
// Reads are safe to retry; the completion workflow is not, because retrying a
// completion that already wrote its ledger entry would duplicate billing data.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
