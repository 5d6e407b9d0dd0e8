package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/app/ledger"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

type subscriptionRepository interface {
	List(ctx context.Context, subjectType entity.SubjectType) ([]*entity.Subscription, error)
	FindByID(ctx context.Context, subjectType entity.SubjectType, id string) (*entity.Subscription, error)
	FindBySubjectAndService(ctx context.Context, subjectType entity.SubjectType, subjectID, serviceID string) (*entity.Subscription, error)
	Create(ctx context.Context, subjectType entity.SubjectType, subjectID, serviceID string) (*entity.Subscription, error)
	SetStatus(ctx context.Context, subjectType entity.SubjectType, id string, status entity.Status) (*entity.Subscription, error)
	AssignProcessor(ctx context.Context, subjectType entity.SubjectType, id string, processorID *string) (*entity.Subscription, error)
	SetNotes(ctx context.Context, subjectType entity.SubjectType, id, notes string) (*entity.Subscription, error)
	Delete(ctx context.Context, subjectType entity.SubjectType, id string) error
}

type catalogRepository interface {
	FindByName(ctx context.Context, subjectType entity.SubjectType, name string) (*entity.CatalogService, error)
}

type teamRepository interface {
	List(ctx context.Context) ([]*entity.Processor, error)
}

// CompleteOptions carries the caller's completion inputs. The zero value means:
// charge the stored billing amount, bill as Unbilled, no ledger note, and do
// not chain a follow-up subscription.
type CompleteOptions struct {
	AmountOverride *float64
	Note           string
	BillingStatus  entity.BillingStatus
	CreateFollowUp bool
}

// CompleteResult reports what the completion actually did. Warning is set when
// the ledger entry was written but the pipeline record could not be removed;
// the operation still counts as a success in that case.
type CompleteResult struct {
	Removed         bool
	FollowUpCreated bool
	LedgerEntryID   string
	Warning         string
}

// SetStatusResult carries the updated subscription, or the completion outcome
// when the requested status was Completed.
type SetStatusResult struct {
	Subscription *entity.Subscription
	Completed    *CompleteResult
}

type PipelineService struct {
	subscriptionRepo subscriptionRepository
	catalogRepo      catalogRepository
	teamRepo         teamRepository
	ledgerSink       ledger.Sink
	cfg              config.PipelineConfig
	logger           logrus.FieldLogger
}

func NewPipelineService(
	subscriptionRepo subscriptionRepository,
	catalogRepo catalogRepository,
	teamRepo teamRepository,
	ledgerSink ledger.Sink,
	cfg config.PipelineConfig,
	logger logrus.FieldLogger,
) *PipelineService {
	return &PipelineService{
		subscriptionRepo: subscriptionRepo,
		catalogRepo:      catalogRepo,
		teamRepo:         teamRepo,
		ledgerSink:       ledgerSink,
		cfg:              cfg,
		logger:           logger,
	}
}

func (s *PipelineService) ListPipeline(ctx context.Context, query ListQuery) ([]*entity.Subscription, error) {
	if !query.SubjectType.Valid() {
		return nil, ErrInvalidSubjectType
	}
	if err := query.validate(); err != nil {
		return nil, err
	}

	items, err := s.subscriptionRepo.List(ctx, query.SubjectType)
	if err != nil {
		return nil, upstream("list pipeline", err)
	}

	items = filterPipeline(items, query)
	s.sortPipeline(items, query)
	return items, nil
}

func (s *PipelineService) ListProcessors(ctx context.Context) ([]*entity.Processor, error) {
	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, upstream("list processors", err)
	}
	return items, nil
}

// SetStatus moves a subscription between the flat workflow states. Completed
// is a pseudo-state: it runs the completion workflow with default options
// instead of being persisted.
func (s *PipelineService) SetStatus(ctx context.Context, subjectType entity.SubjectType, id string, status entity.Status) (*SetStatusResult, error) {
	if !subjectType.Valid() {
		return nil, ErrInvalidSubjectType
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if status == entity.StatusCompleted {
		result, err := s.CompleteService(ctx, subjectType, id, CompleteOptions{})
		if err != nil {
			return nil, err
		}
		return &SetStatusResult{Completed: result}, nil
	}

	item, err := s.subscriptionRepo.FindByID(ctx, subjectType, id)
	if err != nil {
		return nil, upstream("find subscription", err)
	}
	if item == nil {
		return nil, ErrSubscriptionNotFound
	}

	updated, err := s.subscriptionRepo.SetStatus(ctx, subjectType, id, status)
	if err != nil {
		return nil, upstream("update status", err)
	}
	return &SetStatusResult{Subscription: updated}, nil
}

// AssignProcessor sets the single assigned handler, or clears the assignment
// when processorID is nil. Last write wins when two staff members race.
func (s *PipelineService) AssignProcessor(ctx context.Context, subjectType entity.SubjectType, id string, processorID *string) (*entity.Subscription, error) {
	if !subjectType.Valid() {
		return nil, ErrInvalidSubjectType
	}

	item, err := s.subscriptionRepo.FindByID(ctx, subjectType, id)
	if err != nil {
		return nil, upstream("find subscription", err)
	}
	if item == nil {
		return nil, ErrSubscriptionNotFound
	}

	updated, err := s.subscriptionRepo.AssignProcessor(ctx, subjectType, id, processorID)
	if err != nil {
		return nil, upstream("assign processor", err)
	}
	return updated, nil
}

func (s *PipelineService) SetNotes(ctx context.Context, subjectType entity.SubjectType, id, notes string) (*entity.Subscription, error) {
	if !subjectType.Valid() {
		return nil, ErrInvalidSubjectType
	}

	item, err := s.subscriptionRepo.FindByID(ctx, subjectType, id)
	if err != nil {
		return nil, upstream("find subscription", err)
	}
	if item == nil {
		return nil, ErrSubscriptionNotFound
	}

	updated, err := s.subscriptionRepo.SetNotes(ctx, subjectType, id, notes)
	if err != nil {
		return nil, upstream("update notes", err)
	}
	return updated, nil
}

// CompleteService finishes a pipeline item: it writes the billing ledger entry
// first, then removes the subscription record, then optionally chains the
// configured follow-up service. The two mutations are deliberately not
// transactional. A failed ledger write aborts everything; a failed deletion
// after the ledger write is downgraded to a warning because a lost billing
// entry is worse than a stale pipeline row.
func (s *PipelineService) CompleteService(ctx context.Context, subjectType entity.SubjectType, id string, opts CompleteOptions) (*CompleteResult, error) {
	if !subjectType.Valid() {
		return nil, ErrInvalidSubjectType
	}
	billingStatus := opts.BillingStatus
	if billingStatus == "" {
		billingStatus = entity.BillingUnbilled
	}
	if !billingStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown billing status %q", ErrInvalidRequest, opts.BillingStatus)
	}
	if opts.AmountOverride != nil && *opts.AmountOverride < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}

	item, err := s.subscriptionRepo.FindByID(ctx, subjectType, id)
	if err != nil {
		return nil, upstream("find subscription", err)
	}
	if item == nil {
		return nil, ErrSubscriptionNotFound
	}

	entry := &entity.ServiceRenderedEntry{
		SubscriptionID: item.ID,
		SubjectType:    subjectType,
		ClientName:     item.SubjectName,
		ServiceType:    item.ServiceName,
		Processor:      s.resolveProcessorName(ctx, item),
		ServiceDate:    time.Now().UTC(),
		AmountCharged:  effectiveAmount(item, opts.AmountOverride, billingStatus),
		BillingStatus:  billingStatus,
		Notes:          strings.TrimSpace(opts.Note),
	}

	entryID, err := s.ledgerSink.RecordServiceRendered(ctx, entry)
	if err != nil {
		return nil, upstream("record service rendered", err)
	}

	result := &CompleteResult{Removed: true, LedgerEntryID: entryID}
	if err := s.subscriptionRepo.Delete(ctx, subjectType, id); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"subscription_id": id,
			"ledger_entry_id": entryID,
		}).Warn("Subscription deletion failed after ledger entry was recorded")
		result.Warning = "billing entry recorded, but the pipeline record could not be removed"
	}

	if opts.CreateFollowUp {
		result.FollowUpCreated = s.createFollowUp(ctx, item)
	}

	return result, nil
}

// effectiveAmount is zero when the billing status says so, otherwise the
// override, otherwise the stored quote, otherwise absent. An absent amount
// stays absent; no zero is fabricated.
func effectiveAmount(item *entity.Subscription, override *float64, billingStatus entity.BillingStatus) *float64 {
	if billingStatus.Zeroed() {
		zero := 0.0
		return &zero
	}
	if override != nil {
		return override
	}
	return item.BillingAmount
}

// createFollowUp chains the next configured service for the same subject.
// Best effort: every failure is logged and reported as "not created", never
// as a completion failure.
func (s *PipelineService) createFollowUp(ctx context.Context, item *entity.Subscription) bool {
	targetName, ok := s.cfg.FollowUps[item.ServiceName]
	if !ok {
		return false
	}

	log := s.logger.WithFields(logrus.Fields{
		"subscription_id":   item.ID,
		"follow_up_service": targetName,
	})

	target, err := s.catalogRepo.FindByName(ctx, item.SubjectType, targetName)
	if err != nil {
		log.WithError(err).Warn("Follow-up service lookup failed")
		return false
	}
	if target == nil {
		log.Warn("Follow-up service not found in catalog")
		return false
	}

	existing, err := s.subscriptionRepo.FindBySubjectAndService(ctx, item.SubjectType, item.SubjectID, target.ID)
	if err != nil {
		log.WithError(err).Warn("Follow-up duplicate check failed")
		return false
	}
	if existing != nil {
		return false
	}

	if _, err := s.subscriptionRepo.Create(ctx, item.SubjectType, item.SubjectID, target.ID); err != nil {
		log.WithError(err).Warn("Follow-up subscription creation failed")
		return false
	}
	return true
}

// resolveProcessorName denormalizes the assigned handler's display name into
// the ledger entry so it survives the subscription's deletion. Lookup failures
// leave the field blank rather than blocking completion.
func (s *PipelineService) resolveProcessorName(ctx context.Context, item *entity.Subscription) string {
	if item.Unassigned() {
		return ""
	}
	processors, err := s.teamRepo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Processor name lookup failed")
		return ""
	}
	for _, p := range processors {
		if p.ID == item.ProcessorIDs[0] {
			return p.Name
		}
	}
	return ""
}
