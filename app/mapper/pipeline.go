package mapper

import (
	"time"

	"github.com/ledgerworks/ms-go-pipelines/app/dto"
	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/app/service"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

func SubscriptionToResponse(item *entity.Subscription, cfg config.PipelineConfig, now time.Time) dto.SubscriptionResponse {
	age := item.AgeInDays(now)
	processorIDs := item.ProcessorIDs
	if processorIDs == nil {
		processorIDs = []string{}
	}

	return dto.SubscriptionResponse{
		ID:            item.ID,
		SubjectType:   string(item.SubjectType),
		SubjectID:     item.SubjectID,
		ServiceID:     item.ServiceID,
		ServiceName:   item.ServiceName,
		SubjectName:   item.SubjectName,
		Phone:         item.Phone,
		Email:         item.Email,
		ClientCode:    item.ClientCode,
		ProcessorIDs:  processorIDs,
		Status:        string(item.Status),
		Notes:         item.Notes,
		BillingAmount: item.BillingAmount,
		CreatedAt:     formatTime(item.CreatedAt),
		AgeInDays:     age,
		Priority:      string(service.PriorityFor(item.SubjectType, age, cfg)),
	}
}

func SubscriptionsToResponse(items []*entity.Subscription, cfg config.PipelineConfig, now time.Time) []dto.SubscriptionResponse {
	result := make([]dto.SubscriptionResponse, 0, len(items))
	for _, item := range items {
		result = append(result, SubscriptionToResponse(item, cfg, now))
	}
	return result
}

func ProcessorsToResponse(items []*entity.Processor) []dto.ProcessorResponse {
	result := make([]dto.ProcessorResponse, 0, len(items))
	for _, item := range items {
		result = append(result, dto.ProcessorResponse{ID: item.ID, Name: item.Name, Email: item.Email})
	}
	return result
}

func CompleteResultToResponse(result *service.CompleteResult) dto.CompleteServiceResponse {
	return dto.CompleteServiceResponse{
		Removed:         result.Removed,
		FollowUpCreated: result.FollowUpCreated,
		LedgerEntryID:   result.LedgerEntryID,
		Warning:         result.Warning,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
