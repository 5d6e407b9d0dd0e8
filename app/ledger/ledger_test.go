package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/app/record"
)

type fakeStore struct {
	createFn func(ctx context.Context, table string, fields map[string]any) (record.Record, error)
}

func (f *fakeStore) List(context.Context, string, string) ([]record.Record, error) {
	return nil, nil
}

func (f *fakeStore) Get(context.Context, string, string) (record.Record, error) {
	return record.Record{}, nil
}

func (f *fakeStore) Create(ctx context.Context, table string, fields map[string]any) (record.Record, error) {
	return f.createFn(ctx, table, fields)
}

func (f *fakeStore) Update(context.Context, string, string, map[string]any) (record.Record, error) {
	return record.Record{}, nil
}

func (f *fakeStore) Delete(context.Context, string, string) error {
	return nil
}

func TestRecordServiceRenderedPersonal(t *testing.T) {
	var gotTable string
	var gotFields map[string]any
	store := &fakeStore{
		createFn: func(_ context.Context, table string, fields map[string]any) (record.Record, error) {
			gotTable = table
			gotFields = fields
			return record.Record{ID: "led1", Fields: fields}, nil
		},
	}

	amount := 480.0
	sink := NewAirtableSink(store, "Services Rendered")
	id, err := sink.RecordServiceRendered(context.Background(), &entity.ServiceRenderedEntry{
		SubscriptionID: "rec1",
		SubjectType:    entity.SubjectPersonal,
		ClientName:     "Jane Smith",
		ServiceType:    "Tax Returns",
		Processor:      "Pat Doe",
		ServiceDate:    time.Date(2026, 8, 31, 17, 45, 0, 0, time.UTC),
		AmountCharged:  &amount,
		BillingStatus:  entity.BillingUnbilled,
		Notes:          "rush filing",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != "led1" {
		t.Fatalf("unexpected entry id: %s", id)
	}
	if gotTable != "Services Rendered" {
		t.Fatalf("unexpected table: %s", gotTable)
	}
	if gotFields["Service Rendered Date"] != "2026-08-31" {
		t.Fatalf("date must be stored without a time component, got %v", gotFields["Service Rendered Date"])
	}
	if gotFields["Amount Charged"] != 480.0 {
		t.Fatalf("unexpected amount: %v", gotFields["Amount Charged"])
	}
	if gotFields["Billing Status"] != "Unbilled" {
		t.Fatalf("unexpected billing status: %v", gotFields["Billing Status"])
	}
	link, ok := gotFields["Subscription Personal"].([]string)
	if !ok || len(link) != 1 || link[0] != "rec1" {
		t.Fatalf("unexpected subscription link: %v", gotFields["Subscription Personal"])
	}
	if _, present := gotFields["Subscription Corporate"]; present {
		t.Fatalf("personal entry must not carry a corporate link")
	}
}

func TestRecordServiceRenderedOmitsOptionalFields(t *testing.T) {
	var gotFields map[string]any
	store := &fakeStore{
		createFn: func(_ context.Context, _ string, fields map[string]any) (record.Record, error) {
			gotFields = fields
			return record.Record{ID: "led2", Fields: fields}, nil
		},
	}

	sink := NewAirtableSink(store, "Services Rendered")
	_, err := sink.RecordServiceRendered(context.Background(), &entity.ServiceRenderedEntry{
		SubscriptionID: "rec2",
		SubjectType:    entity.SubjectCorporate,
		ClientName:     "Acme Corp",
		ServiceType:    "Monthly Bookkeeping",
		ServiceDate:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		BillingStatus:  entity.BillingPartOfSubscription,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, present := gotFields["Amount Charged"]; present {
		t.Fatalf("absent amount must not be written as zero")
	}
	if _, present := gotFields["Notes"]; present {
		t.Fatalf("empty notes must be omitted")
	}
	if _, ok := gotFields["Subscription Corporate"].([]string); !ok {
		t.Fatalf("corporate entry must link the corporate subscription")
	}
}

func TestRecordServiceRenderedWrapsStoreError(t *testing.T) {
	storeErr := errors.New("airtable unavailable")
	store := &fakeStore{
		createFn: func(context.Context, string, map[string]any) (record.Record, error) {
			return record.Record{}, storeErr
		},
	}

	sink := NewAirtableSink(store, "Services Rendered")
	_, err := sink.RecordServiceRendered(context.Background(), &entity.ServiceRenderedEntry{
		SubscriptionID: "rec3",
		SubjectType:    entity.SubjectPersonal,
		BillingStatus:  entity.BillingUnbilled,
		ServiceDate:    time.Now(),
	})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
