package evaluator

import (
	"context"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/abtestlabs/campaignstack/interfaces"
	"github.com/abtestlabs/campaignstack/internal/enum"
	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/models"
	"github.com/abtestlabs/campaignstack/internal/repository"
	"github.com/abtestlabs/campaignstack/internal/tracing"
)

type evaluatorService struct {
	log             logger.Logger
	campaignService interfaces.CampaignService
	repositories    *repository.Repositories
}

func NewEvaluatorService(log logger.Logger, campaignService interfaces.CampaignService, repositories *repository.Repositories) interfaces.EvaluatorService {
	return &evaluatorService{
		log:             log,
		campaignService: campaignService,
		repositories:    repositories,
	}
}

// Evaluate runs one trial for the strategy. A successful outcome is appended
// to the result store exactly once and its opened value returned; rate
// limited and unclassified outcomes return nil without touching the store.
func (s *evaluatorService) Evaluate(ctx context.Context, strategy int) (*int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EvaluatorService.Evaluate")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagStrategy(span, strategy)

	outcome, err := s.campaignService.FetchCampaign(ctx, strategy)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.LogFields(tracingLog.String("outcome", outcome.Status.String()))

	switch outcome.Status {
	case enum.OutcomeRateLimited:
		s.log.Warnf("Rate limit exceeded: %s", outcome.RateLimit.Detail)
		return nil, nil
	case enum.OutcomeUnclassified:
		s.log.Errorf("API error: %s", string(outcome.Raw))
		return nil, nil
	case enum.OutcomeSuccess:
		if err := s.repositories.CampaignResultRepository.Append(ctx, outcome.Result); err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
		opened := outcome.Result.Opened
		return &opened, nil
	default:
		err := errors.Errorf("unexpected campaign outcome status %q", outcome.Status)
		tracing.TraceErr(span, err)
		return nil, err
	}
}

func (s *evaluatorService) GetResults(ctx context.Context) ([]models.CampaignResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EvaluatorService.GetResults")
	defer span.Finish()
	tracing.TagComponentService(span)

	return s.repositories.CampaignResultRepository.LoadAll(ctx)
}
