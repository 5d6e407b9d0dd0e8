// Package ledger writes billing entries for completed services. An entry is
// appended exactly once per completion and is never updated or deleted by this
// service afterwards.
package ledger

import (
	"context"
	"fmt"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/app/record"
)

type Sink interface {
	RecordServiceRendered(ctx context.Context, entry *entity.ServiceRenderedEntry) (string, error)
}

type AirtableSink struct {
	store record.Store
	table string
}

func NewAirtableSink(store record.Store, table string) *AirtableSink {
	return &AirtableSink{store: store, table: table}
}

func (s *AirtableSink) RecordServiceRendered(ctx context.Context, entry *entity.ServiceRenderedEntry) (string, error) {
	fields := map[string]any{
		"Service Rendered Date": entry.ServiceDate.Format("2006-01-02"),
		"Billing Status":        string(entry.BillingStatus),
		"Client Name":           entry.ClientName,
		"Service Type":          entry.ServiceType,
		"Processor":             entry.Processor,
	}
	if entry.AmountCharged != nil {
		fields["Amount Charged"] = *entry.AmountCharged
	}
	if entry.Notes != "" {
		fields["Notes"] = entry.Notes
	}
	switch entry.SubjectType {
	case entity.SubjectCorporate:
		fields["Subscription Corporate"] = []string{entry.SubscriptionID}
	default:
		fields["Subscription Personal"] = []string{entry.SubscriptionID}
	}

	rec, err := s.store.Create(ctx, s.table, fields)
	if err != nil {
		return "", fmt.Errorf("record service rendered: %w", err)
	}
	return rec.ID, nil
}
