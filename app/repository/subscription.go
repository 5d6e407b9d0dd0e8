package repository

import (
	"context"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/app/record"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

type SubscriptionRepository struct {
	store  record.Store
	tables config.TableNames
}

func NewSubscriptionRepository(store record.Store, tables config.TableNames) *SubscriptionRepository {
	return &SubscriptionRepository{store: store, tables: tables}
}

func (r *SubscriptionRepository) tableFor(subjectType entity.SubjectType) string {
	if subjectType == entity.SubjectCorporate {
		return r.tables.SubscriptionsCorporate
	}
	return r.tables.SubscriptionsPersonal
}

// List returns the full working set for one subject type. Filtering and
// sorting happen over this set in the service layer, not store-side.
func (r *SubscriptionRepository) List(ctx context.Context, subjectType entity.SubjectType) ([]*entity.Subscription, error) {
	records, err := r.store.List(ctx, r.tableFor(subjectType), "")
	if err != nil {
		return nil, err
	}

	spec := specFor(subjectType)
	items := make([]*entity.Subscription, 0, len(records))
	for _, rec := range records {
		items = append(items, decodeSubscription(subjectType, spec, rec))
	}
	return items, nil
}

// FindByID resolves a subscription from the active working set. Returns
// (nil, nil) when absent, which covers both never-existed and already
// completed-and-deleted.
func (r *SubscriptionRepository) FindByID(ctx context.Context, subjectType entity.SubjectType, id string) (*entity.Subscription, error) {
	items, err := r.List(ctx, subjectType)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

// FindBySubjectAndService reports an existing enrollment of the subject in
// the service, or (nil, nil) when there is none.
func (r *SubscriptionRepository) FindBySubjectAndService(ctx context.Context, subjectType entity.SubjectType, subjectID, serviceID string) (*entity.Subscription, error) {
	items, err := r.List(ctx, subjectType)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.SubjectID == subjectID && item.ServiceID == serviceID {
			return item, nil
		}
	}
	return nil, nil
}

// Create inserts a new junction record linking the subject to the service.
// Status defaults to Active store-side; the created record is returned as
// stored.
func (r *SubscriptionRepository) Create(ctx context.Context, subjectType entity.SubjectType, subjectID, serviceID string) (*entity.Subscription, error) {
	spec := specFor(subjectType)
	fields := map[string]any{
		spec.subjectLink: []string{subjectID},
		spec.serviceLink: []string{serviceID},
		spec.statusField: string(entity.StatusActive),
	}
	rec, err := r.store.Create(ctx, r.tableFor(subjectType), fields)
	if err != nil {
		return nil, err
	}
	return decodeSubscription(subjectType, spec, rec), nil
}

func (r *SubscriptionRepository) SetStatus(ctx context.Context, subjectType entity.SubjectType, id string, status entity.Status) (*entity.Subscription, error) {
	spec := specFor(subjectType)
	rec, err := r.store.Update(ctx, r.tableFor(subjectType), id, map[string]any{
		spec.statusField: string(status),
	})
	if err != nil {
		return nil, err
	}
	return decodeSubscription(subjectType, spec, rec), nil
}

// AssignProcessor sets the handler link to a single processor, or clears it
// when processorID is nil. Last write wins; there is no locking on the store.
func (r *SubscriptionRepository) AssignProcessor(ctx context.Context, subjectType entity.SubjectType, id string, processorID *string) (*entity.Subscription, error) {
	value := []string{}
	if processorID != nil {
		value = []string{*processorID}
	}

	spec := specFor(subjectType)
	rec, err := r.store.Update(ctx, r.tableFor(subjectType), id, map[string]any{
		spec.processorField: value,
	})
	if err != nil {
		return nil, err
	}
	return decodeSubscription(subjectType, spec, rec), nil
}

func (r *SubscriptionRepository) SetNotes(ctx context.Context, subjectType entity.SubjectType, id, notes string) (*entity.Subscription, error) {
	spec := specFor(subjectType)
	rec, err := r.store.Update(ctx, r.tableFor(subjectType), id, map[string]any{
		spec.notesField: notes,
	})
	if err != nil {
		return nil, err
	}
	return decodeSubscription(subjectType, spec, rec), nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subjectType entity.SubjectType, id string) error {
	return r.store.Delete(ctx, r.tableFor(subjectType), id)
}

func decodeSubscription(subjectType entity.SubjectType, spec tableSpec, rec record.Record) *entity.Subscription {
	status := entity.Status(record.StringField(rec.Fields, spec.statusField))
	if status == "" {
		status = entity.StatusActive
	}

	subjectIDs := record.StringsField(rec.Fields, spec.subjectLink)
	subjectID := ""
	if len(subjectIDs) > 0 {
		subjectID = subjectIDs[0]
	}
	serviceIDs := record.StringsField(rec.Fields, spec.serviceLink)
	serviceID := ""
	if len(serviceIDs) > 0 {
		serviceID = serviceIDs[0]
	}

	return &entity.Subscription{
		ID:            rec.ID,
		SubjectType:   subjectType,
		SubjectID:     subjectID,
		ServiceID:     serviceID,
		ServiceName:   record.StringField(rec.Fields, spec.serviceNameAliases...),
		SubjectName:   record.StringField(rec.Fields, spec.nameAliases...),
		Phone:         record.StringField(rec.Fields, spec.phoneAliases...),
		Email:         record.StringField(rec.Fields, spec.emailAliases...),
		ClientCode:    record.StringField(rec.Fields, spec.clientCodeAliases...),
		ProcessorIDs:  record.StringsField(rec.Fields, spec.processorField),
		Status:        status,
		Notes:         record.StringField(rec.Fields, spec.notesField),
		BillingAmount: record.NumberField(rec.Fields, spec.billingAmountAliases...),
		CreatedAt:     rec.CreatedAt,
	}
}
