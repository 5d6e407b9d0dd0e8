package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ListPipelineRequest struct {
	SubjectType string
	Service     string
	Processor   string
	Status      string
	Search      string
	SortKey     string
	SortDir     string
}

func NewListPipelineRequestFromContext(ctx echo.Context) (*ListPipelineRequest, error) {
	return &ListPipelineRequest{
		SubjectType: strings.TrimSpace(ctx.QueryParam("subject_type")),
		Service:     strings.TrimSpace(ctx.QueryParam("service")),
		Processor:   strings.TrimSpace(ctx.QueryParam("processor")),
		Status:      strings.TrimSpace(ctx.QueryParam("status")),
		Search:      strings.TrimSpace(ctx.QueryParam("search")),
		SortKey:     strings.TrimSpace(ctx.QueryParam("sort")),
		SortDir:     strings.TrimSpace(ctx.QueryParam("dir")),
	}, nil
}

func (r *ListPipelineRequest) Validate() error {
	if r.SubjectType == "" {
		return errors.New("subject_type is required")
	}
	if !entity.SubjectType(r.SubjectType).Valid() {
		return errors.New("subject_type must be personal or corporate")
	}
	return nil
}

type SetStatusRequest struct {
	ID          string
	SubjectType string `json:"subject_type"`
	Status      string `json:"status"`
}

func NewSetStatusRequestFromContext(ctx echo.Context) (*SetStatusRequest, error) {
	var body SetStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.ID = strings.TrimSpace(ctx.Param("id"))
	body.SubjectType = strings.TrimSpace(body.SubjectType)
	body.Status = strings.TrimSpace(body.Status)
	return &body, nil
}

func (r *SetStatusRequest) Validate() error {
	if r.ID == "" {
		return errors.New("subscription id is required")
	}
	if !entity.SubjectType(r.SubjectType).Valid() {
		return errors.New("subject_type must be personal or corporate")
	}
	if r.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

type AssignProcessorRequest struct {
	ID          string
	SubjectType string  `json:"subject_type"`
	ProcessorID *string `json:"processor_id"`
}

func NewAssignProcessorRequestFromContext(ctx echo.Context) (*AssignProcessorRequest, error) {
	var body AssignProcessorRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.ID = strings.TrimSpace(ctx.Param("id"))
	body.SubjectType = strings.TrimSpace(body.SubjectType)
	if body.ProcessorID != nil {
		trimmed := strings.TrimSpace(*body.ProcessorID)
		if trimmed == "" {
			body.ProcessorID = nil
		} else {
			body.ProcessorID = &trimmed
		}
	}
	return &body, nil
}

func (r *AssignProcessorRequest) Validate() error {
	if r.ID == "" {
		return errors.New("subscription id is required")
	}
	if !entity.SubjectType(r.SubjectType).Valid() {
		return errors.New("subject_type must be personal or corporate")
	}
	return nil
}

type SetNotesRequest struct {
	ID          string
	SubjectType string `json:"subject_type"`
	Notes       string `json:"notes"`
}

func NewSetNotesRequestFromContext(ctx echo.Context) (*SetNotesRequest, error) {
	var body SetNotesRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.ID = strings.TrimSpace(ctx.Param("id"))
	body.SubjectType = strings.TrimSpace(body.SubjectType)
	return &body, nil
}

func (r *SetNotesRequest) Validate() error {
	if r.ID == "" {
		return errors.New("subscription id is required")
	}
	if !entity.SubjectType(r.SubjectType).Valid() {
		return errors.New("subject_type must be personal or corporate")
	}
	return nil
}

type CompleteServiceRequest struct {
	ID             string
	SubjectType    string   `json:"subject_type"`
	Amount         *float64 `json:"amount"`
	Note           string   `json:"note"`
	BillingStatus  string   `json:"billing_status"`
	CreateFollowUp bool     `json:"create_follow_up"`
}

func NewCompleteServiceRequestFromContext(ctx echo.Context) (*CompleteServiceRequest, error) {
	var body CompleteServiceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.ID = strings.TrimSpace(ctx.Param("id"))
	body.SubjectType = strings.TrimSpace(body.SubjectType)
	body.BillingStatus = strings.TrimSpace(body.BillingStatus)
	return &body, nil
}

func (r *CompleteServiceRequest) Validate() error {
	if r.ID == "" {
		return errors.New("subscription id is required")
	}
	if !entity.SubjectType(r.SubjectType).Valid() {
		return errors.New("subject_type must be personal or corporate")
	}
	if r.Amount != nil && *r.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if r.BillingStatus != "" && !entity.BillingStatus(r.BillingStatus).Valid() {
		return errors.New("billing_status must be Unbilled, Part of Subscription or Waived")
	}
	return nil
}
