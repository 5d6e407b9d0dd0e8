package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ledgerworks/ms-go-pipelines/app/dto"
	"github.com/ledgerworks/ms-go-pipelines/app/entity"
	"github.com/ledgerworks/ms-go-pipelines/app/factory"
	"github.com/ledgerworks/ms-go-pipelines/app/mapper"
	"github.com/ledgerworks/ms-go-pipelines/app/service"
	"github.com/ledgerworks/ms-go-pipelines/app/types"
	"github.com/ledgerworks/ms-go-pipelines/config"
)

type PipelineController struct {
	pipelineService *service.PipelineService
	cfg             config.PipelineConfig
	logger          logrus.FieldLogger
}

func NewPipelineController(pipelineService *service.PipelineService, cfg config.PipelineConfig) *PipelineController {
	return &PipelineController{
		pipelineService: pipelineService,
		cfg:             cfg,
		logger:          factory.NewModuleLogger("pipeline-controller"),
	}
}

func (c *PipelineController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *PipelineController) ListPipeline(ctx echo.Context) error {
	req, err := types.NewListPipelineRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.pipelineService.ListPipeline(ctx.Request().Context(), service.ListQuery{
		SubjectType: entity.SubjectType(req.SubjectType),
		Service:     req.Service,
		Processor:   req.Processor,
		Status:      req.Status,
		Search:      req.Search,
		SortKey:     req.SortKey,
		SortDir:     req.SortDir,
	})
	if err != nil {
		return c.writeServiceError(ctx, err, "List pipeline failed")
	}

	return ctx.JSON(http.StatusOK, &dto.ListPipelineResponse{
		Subscriptions: mapper.SubscriptionsToResponse(items, c.cfg, time.Now().UTC()),
	})
}

func (c *PipelineController) ListProcessors(ctx echo.Context) error {
	items, err := c.pipelineService.ListProcessors(ctx.Request().Context())
	if err != nil {
		return c.writeServiceError(ctx, err, "List processors failed")
	}
	return ctx.JSON(http.StatusOK, &dto.ListProcessorsResponse{
		Processors: mapper.ProcessorsToResponse(items),
	})
}

func (c *PipelineController) SetStatus(ctx echo.Context) error {
	req, err := types.NewSetStatusRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.pipelineService.SetStatus(ctx.Request().Context(), entity.SubjectType(req.SubjectType), req.ID, entity.Status(req.Status))
	if err != nil {
		return c.writeServiceError(ctx, err, "Set status failed")
	}

	if result.Completed != nil {
		return ctx.JSON(http.StatusOK, mapper.CompleteResultToResponse(result.Completed))
	}
	return ctx.JSON(http.StatusOK, &dto.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(result.Subscription, c.cfg, time.Now().UTC()),
	})
}

func (c *PipelineController) AssignProcessor(ctx echo.Context) error {
	req, err := types.NewAssignProcessorRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.pipelineService.AssignProcessor(ctx.Request().Context(), entity.SubjectType(req.SubjectType), req.ID, req.ProcessorID)
	if err != nil {
		return c.writeServiceError(ctx, err, "Assign processor failed")
	}

	return ctx.JSON(http.StatusOK, &dto.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item, c.cfg, time.Now().UTC()),
	})
}

func (c *PipelineController) SetNotes(ctx echo.Context) error {
	req, err := types.NewSetNotesRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.pipelineService.SetNotes(ctx.Request().Context(), entity.SubjectType(req.SubjectType), req.ID, req.Notes)
	if err != nil {
		return c.writeServiceError(ctx, err, "Set notes failed")
	}

	return ctx.JSON(http.StatusOK, &dto.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item, c.cfg, time.Now().UTC()),
	})
}

func (c *PipelineController) CompleteService(ctx echo.Context) error {
	req, err := types.NewCompleteServiceRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.pipelineService.CompleteService(ctx.Request().Context(), entity.SubjectType(req.SubjectType), req.ID, service.CompleteOptions{
		AmountOverride: req.Amount,
		Note:           req.Note,
		BillingStatus:  entity.BillingStatus(req.BillingStatus),
		CreateFollowUp: req.CreateFollowUp,
	})
	if err != nil {
		return c.writeServiceError(ctx, err, "Complete service failed")
	}

	return ctx.JSON(http.StatusOK, mapper.CompleteResultToResponse(result))
}

func (c *PipelineController) writeServiceError(ctx echo.Context, err error, logMessage string) error {
	var upstreamErr *service.UpstreamError
	switch {
	case errors.Is(err, service.ErrSubscriptionNotFound):
		return c.writeError(ctx, http.StatusNotFound, "subscription not found")
	case errors.Is(err, service.ErrServiceNotFound):
		return c.writeError(ctx, http.StatusNotFound, "service not found")
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidSubjectType):
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	case errors.As(err, &upstreamErr):
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error(logMessage)
		return c.writeError(ctx, http.StatusBadGateway, "upstream record store error")
	default:
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error(logMessage)
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
}

func (c *PipelineController) writeError(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, &types.ErrorResponse{Error: message})
}
