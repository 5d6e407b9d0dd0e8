package mapper

import (
	"testing"
	"time"

	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

func testConfig() config.PipelineConfig {
	return config.PipelineConfig{
		PersonalHighAgeDays:    14,
		PersonalMediumAgeDays:  7,
		CorporateHighAgeDays:   30,
		CorporateMediumAgeDays: 14,
	}
}

func TestSubscriptionToResponse(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	amount := 350.0
	item := &entity.Subscription{
		ID:            "rec1",
		SubjectType:   entity.SubjectCorporate,
		SubjectID:     "corp1",
		ServiceID:     "svc1",
		ServiceName:   "Monthly Bookkeeping",
		SubjectName:   "Acme Corp",
		ProcessorIDs:  []string{"team7"},
		Status:        entity.StatusActive,
		BillingAmount: &amount,
		CreatedAt:     now.Add(-31 * 24 * time.Hour),
	}

	resp := SubscriptionToResponse(item, testConfig(), now)
	if resp.ID != "rec1" || resp.SubjectType != "corporate" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.AgeInDays != 31 {
		t.Fatalf("unexpected age: %d", resp.AgeInDays)
	}
	if resp.Priority != "High" {
		t.Fatalf("31-day corporate item must be High, got %s", resp.Priority)
	}
	if resp.BillingAmount == nil || *resp.BillingAmount != 350 {
		t.Fatalf("unexpected amount: %v", resp.BillingAmount)
	}
	if resp.CreatedAt != "2026-07-31T12:00:00Z" {
		t.Fatalf("unexpected created_at: %s", resp.CreatedAt)
	}
}

func TestSubscriptionToResponseNormalizesNilProcessors(t *testing.T) {
	resp := SubscriptionToResponse(&entity.Subscription{ID: "rec1", SubjectType: entity.SubjectPersonal}, testConfig(), time.Now())
	if resp.ProcessorIDs == nil {
		t.Fatalf("processor ids must marshal as an empty list, not null")
	}
	if resp.CreatedAt != "" {
		t.Fatalf("zero created time must render empty, got %q", resp.CreatedAt)
	}
}
