package campaign

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/abtestlabs/campaignstack/config"
	"github.com/abtestlabs/campaignstack/interfaces"
	"github.com/abtestlabs/campaignstack/internal/enum"
	er "github.com/abtestlabs/campaignstack/internal/errors"
	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/models"
	"github.com/abtestlabs/campaignstack/internal/tracing"
)

var campaignResultFields = []string{"strategy", "opened", "timestamp", "timezone"}

type campaignService struct {
	log      logger.Logger
	cfg      *config.CampaignAPIConfig
	email    string
	client   *http.Client
	validate *validator.Validate
}

func NewCampaignService(log logger.Logger, cfg *config.CampaignAPIConfig, email string) interfaces.CampaignService {
	return &campaignService{
		log:   log,
		cfg:   cfg,
		email: email,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		validate: validator.New(),
	}
}

// FetchCampaign evaluates one strategy against the campaign API and
// classifies the response. The server reuses one flat JSON shape for three
// conditions: a `detail` key means throttling, the four result fields mean
// success, anything else is unclassified and logged for diagnosis. Transport
// and decode failures are returned as errors; classification failures never
// are.
func (s *campaignService) FetchCampaign(ctx context.Context, strategy int) (*interfaces.CampaignOutcome, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CampaignService.FetchCampaign")
	defer span.Finish()
	tracing.TagComponentHttpClient(span)
	tracing.TagStrategy(span, strategy)
	tracing.TagUserEmail(span, s.email)

	body, err := s.get(ctx, span, fmt.Sprintf("campaign/%d", strategy), s.email)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.LogFields(tracingLog.String("responseBody", string(body)))

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		if !json.Valid(body) {
			tracing.TraceErr(span, errors.Wrap(err, "failed to decode campaign API response"))
			return nil, errors.Wrap(err, "failed to decode campaign API response")
		}
		// valid JSON but not an object; nothing to classify against
		s.log.Errorf("Unexpected campaign payload shape: %s", string(body))
		span.LogFields(tracingLog.String("outcome", enum.OutcomeUnclassified.String()))
		return &interfaces.CampaignOutcome{
			Status: enum.OutcomeUnclassified,
			Raw:    json.RawMessage(body),
		}, nil
	}

	if rawDetail, ok := payload["detail"]; ok {
		var detail string
		if err := json.Unmarshal(rawDetail, &detail); err != nil {
			detail = string(rawDetail)
		}
		span.LogFields(tracingLog.String("outcome", enum.OutcomeRateLimited.String()))
		return &interfaces.CampaignOutcome{
			Status:    enum.OutcomeRateLimited,
			RateLimit: &models.RateLimitSignal{Detail: detail},
		}, nil
	}

	result, err := s.parseResult(body, payload)
	if err != nil {
		s.log.Errorf("Error parsing campaign result: %v, payload: %s", err, string(body))
		span.LogFields(tracingLog.String("outcome", enum.OutcomeUnclassified.String()))
		return &interfaces.CampaignOutcome{
			Status: enum.OutcomeUnclassified,
			Raw:    json.RawMessage(body),
		}, nil
	}

	span.LogFields(tracingLog.String("outcome", enum.OutcomeSuccess.String()))
	return &interfaces.CampaignOutcome{
		Status: enum.OutcomeSuccess,
		Result: result,
	}, nil
}

// FetchRemaining returns the remaining-trials payload as-is; nothing branches
// on its shape yet.
func (s *campaignService) FetchRemaining(ctx context.Context) (json.RawMessage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CampaignService.FetchRemaining")
	defer span.Finish()
	tracing.TagComponentHttpClient(span)
	tracing.TagUserEmail(span, s.email)

	body, err := s.get(ctx, span, "remaining", s.email)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.LogFields(tracingLog.String("responseBody", string(body)))

	if !json.Valid(body) {
		err := errors.New("remaining endpoint returned invalid JSON")
		tracing.TraceErr(span, err)
		return nil, err
	}

	return json.RawMessage(body), nil
}

func (s *campaignService) FetchLeaderboard(ctx context.Context) (*models.Leaderboard, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "CampaignService.FetchLeaderboard")
	defer span.Finish()
	tracing.TagComponentHttpClient(span)

	// leaderboard is the one endpoint that takes no identity
	body, err := s.get(ctx, span, "leaderboard", "")
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.LogFields(tracingLog.String("responseBody", string(body)))

	var leaderboard models.Leaderboard
	if err := json.Unmarshal(body, &leaderboard); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to decode leaderboard response"))
		return nil, errors.Wrap(err, "failed to decode leaderboard response")
	}
	tracing.LogObjectAsJson(span, "leaderboard", &leaderboard)

	return &leaderboard, nil
}

func (s *campaignService) parseResult(body []byte, payload map[string]json.RawMessage) (*models.CampaignResult, error) {
	for _, field := range campaignResultFields {
		if _, ok := payload[field]; !ok {
			return nil, errors.Errorf("missing field %q", field)
		}
	}

	var result models.CampaignResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to parse campaign result")
	}
	if err := s.validate.Struct(&result); err != nil {
		return nil, errors.Wrap(err, "campaign result failed validation")
	}

	return &result, nil
}

func (s *campaignService) get(ctx context.Context, span opentracing.Span, path, email string) ([]byte, error) {
	endpoint := strings.TrimSuffix(s.cfg.RootURL, "/") + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build campaign API request")
	}
	if email != "" {
		q := req.URL.Query()
		q.Set("email", email)
		req.URL.RawQuery = q.Encode()
	}
	req = tracing.InjectSpanContextIntoHTTPRequest(req, span)

	resp, err := s.client.Do(req)
	if err != nil {
		if os.IsTimeout(err) {
			return nil, er.ErrConnectionTimeout
		}
		return nil, errors.Wrap(err, "failed to call campaign API")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read campaign API response")
	}

	return body, nil
}
