package repository

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/abtestlabs/campaignstack/internal/logger"
	"github.com/abtestlabs/campaignstack/internal/models"
	"github.com/abtestlabs/campaignstack/internal/tracing"
	"github.com/abtestlabs/campaignstack/internal/utils"
)

var resultsHeader = []string{"strategy", "opened", "timestamp", "timezone"}

type CampaignResultRepository interface {
	Append(ctx context.Context, result *models.CampaignResult) error
	LoadAll(ctx context.Context) ([]models.CampaignResult, error)
}

type campaignResultRepository struct {
	log  logger.Logger
	path string
}

// NewCampaignResultRepository ensures the results table exists at path,
// creating parent directories and the header row if needed. Calling it on an
// existing table leaves the rows untouched.
func NewCampaignResultRepository(log logger.Logger, path string) (CampaignResultRepository, error) {
	r := &campaignResultRepository{
		log:  log,
		path: path,
	}

	if err := r.initialize(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *campaignResultRepository) initialize() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create results directory")
	}

	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to stat results file")
	}

	file, err := os.Create(r.path)
	if err != nil {
		return errors.Wrap(err, "failed to create results file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(resultsHeader); err != nil {
		return errors.Wrap(err, "failed to write results header")
	}
	writer.Flush()

	return errors.Wrap(writer.Error(), "failed to flush results header")
}

// Append writes exactly one row per call. The table is append-only; existing
// rows are never rewritten.
func (r *campaignResultRepository) Append(ctx context.Context, result *models.CampaignResult) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "CampaignResultRepository.Append")
	defer span.Finish()
	tracing.TagComponentFileStore(span)
	tracing.TagStrategy(span, result.Strategy)

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to open results file"))
		return errors.Wrap(err, "failed to open results file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	row := []string{
		strconv.Itoa(result.Strategy),
		strconv.Itoa(result.Opened),
		result.Timestamp,
		result.Timezone,
	}
	if err := writer.Write(row); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to write result row"))
		return errors.Wrap(err, "failed to write result row")
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to flush result row"))
		return errors.Wrap(err, "failed to flush result row")
	}

	r.log.Infof("Stored result to %s", r.path)
	return nil
}

// LoadAll returns the stored history oldest-first. A missing or header-only
// file yields an empty slice.
func (r *campaignResultRepository) LoadAll(ctx context.Context) ([]models.CampaignResult, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "CampaignResultRepository.LoadAll")
	defer span.Finish()
	tracing.TagComponentFileStore(span)

	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.CampaignResult{}, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "failed to open results file"))
		return nil, errors.Wrap(err, "failed to open results file")
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to read results file"))
		return nil, errors.Wrap(err, "failed to read results file")
	}

	results := make([]models.CampaignResult, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		if len(row) != len(resultsHeader) {
			err := errors.Errorf("malformed row %d in %s", i, r.path)
			tracing.TraceErr(span, err)
			return nil, err
		}

		strategy, err := strconv.Atoi(row[0])
		if err != nil {
			tracing.TraceErr(span, errors.Wrap(err, "failed to parse strategy column"))
			return nil, errors.Wrap(err, "failed to parse strategy column")
		}
		opened, err := strconv.Atoi(row[1])
		if err != nil {
			tracing.TraceErr(span, errors.Wrap(err, "failed to parse opened column"))
			return nil, errors.Wrap(err, "failed to parse opened column")
		}
		occurredAt, err := utils.ParseCampaignTimestamp(row[2])
		if err != nil {
			tracing.TraceErr(span, errors.Wrap(err, "failed to parse timestamp column"))
			return nil, errors.Wrap(err, "failed to parse timestamp column")
		}

		results = append(results, models.CampaignResult{
			Strategy:   strategy,
			Opened:     opened,
			Timestamp:  row[2],
			Timezone:   row[3],
			OccurredAt: occurredAt,
		})
	}

	span.LogFields(tracingLog.Int("result.count", len(results)))
	return results, nil
}
