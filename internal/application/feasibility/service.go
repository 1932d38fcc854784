// Package feasibility provides the application-level service for house
// feasibility evaluations.  It sits between the CLI and the domain model,
// adding request validation, dataset comparison, logging and metrics.
package feasibility

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domain "github.com/turtacn/kandang-feasibility/internal/domain/feasibility"
	"github.com/turtacn/kandang-feasibility/internal/domain/history"
	"github.com/turtacn/kandang-feasibility/internal/infrastructure/dataset"
	"github.com/turtacn/kandang-feasibility/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/kandang-feasibility/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

// Service defines the interface for feasibility application operations.
type Service interface {
	Evaluate(ctx context.Context, req *EvaluateRequest) (*Report, error)
	LoadDataset(ctx context.Context, path string) (*DatasetSummary, error)
	Rules(ctx context.Context) []RuleView
}

// DatasetLoader reads historical datasets.
type DatasetLoader interface {
	LoadFile(ctx context.Context, path string) (*dataset.Dataset, error)
}

// EvaluateRequest contains the input for one evaluation.  When DatasetPath is
// set the house is compared against that dataset; Records, when non-nil,
// takes precedence and skips loading.
type EvaluateRequest struct {
	AreaM2         float64          `json:"area_m2" validate:"gt=0"`
	InitialCount   int              `json:"initial_count" validate:"gt=0"`
	SurvivingCount int              `json:"surviving_count" validate:"gte=0,ltefield=InitialCount"`
	DatasetPath    string           `json:"dataset_path,omitempty"`
	Records        []history.Record `json:"-"`
}

// Report is the outcome of an evaluation.
type Report struct {
	ID          string              `json:"id" yaml:"id"`
	Input       domain.Input        `json:"input" yaml:"input"`
	Result      domain.Result       `json:"result" yaml:"result"`
	Label       string              `json:"label" yaml:"label"`
	Advice      domain.Advice       `json:"advice" yaml:"advice"`
	Advisories  []domain.Advisory   `json:"advisories,omitempty" yaml:"advisories,omitempty"`
	Dataset     *DatasetSummary     `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Comparison  *history.Comparison `json:"comparison,omitempty" yaml:"comparison,omitempty"`
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
}

// DatasetSummary describes a loaded dataset.
type DatasetSummary struct {
	Source      string   `json:"source" yaml:"source"`
	Encoding    string   `json:"encoding" yaml:"encoding"`
	Delimiter   string   `json:"delimiter" yaml:"delimiter"`
	Columns     []string `json:"columns" yaml:"columns"`
	Rows        int      `json:"rows" yaml:"rows"`
	ValidRows   int      `json:"valid_rows" yaml:"valid_rows"`
	DroppedRows int      `json:"dropped_rows" yaml:"dropped_rows"`
	Repaired    bool     `json:"repaired" yaml:"repaired"`
	TotalBirds  int      `json:"total_birds" yaml:"total_birds"`
	TotalDeaths int      `json:"total_deaths" yaml:"total_deaths"`
	MeanDensity float64  `json:"mean_density" yaml:"mean_density"`
}

// RuleView is a display form of one rule.
type RuleView struct {
	Code       string  `json:"code" yaml:"code"`
	Density    string  `json:"density" yaml:"density"`
	Depletion  string  `json:"depletion" yaml:"depletion"`
	Consequent string  `json:"consequent" yaml:"consequent"`
	Derate     float64 `json:"derate" yaml:"derate"`
}

// ServiceConfig tunes the service.
type ServiceConfig struct {
	Advisory domain.AdvisoryThresholds
	Compare  history.Options
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	loader   DatasetLoader
	metrics  *prometheus.AppMetrics
	cfg      ServiceConfig
	validate *validator.Validate
	logger   logging.Logger
	now      func() time.Time
}

// NewService creates a new feasibility application service.  metrics may be
// nil.
func NewService(loader DatasetLoader, metrics *prometheus.AppMetrics, cfg ServiceConfig, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		loader:   loader,
		metrics:  metrics,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger.Named("feasibility"),
		now:      time.Now,
	}
}

func (s *serviceImpl) Evaluate(ctx context.Context, req *EvaluateRequest) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTimeout, "evaluation cancelled")
	}
	if req == nil {
		return nil, errors.InvalidParam("request is required")
	}
	if err := s.validateRequest(req); err != nil {
		s.recordError("evaluate", err)
		return nil, err
	}

	in := domain.Input{AreaM2: req.AreaM2, InitialCount: req.InitialCount, SurvivingCount: req.SurvivingCount}
	start := time.Now()
	result, err := domain.Evaluate(in)
	elapsed := time.Since(start)
	if err != nil {
		s.recordError("evaluate", err)
		return nil, err
	}

	log := s.logger.With(
		logging.Float64("density", result.Indicators.Density),
		logging.Float64("depletion_pct", result.Indicators.DepletionPct))
	if result.NoRuleFired {
		log.Warn("no rule fired; score defaults to 0")
	}

	report := &Report{
		ID:          uuid.NewString(),
		Input:       in,
		Result:      result,
		Label:       result.Category.Label(),
		Advice:      domain.Advise(result),
		Advisories:  domain.Advisories(in, result.Indicators, s.cfg.Advisory),
		GeneratedAt: s.now().UTC(),
	}
	for _, a := range report.Advisories {
		log.Warn("input advisory", logging.String("code", a.Code), logging.String("message", a.Message))
		if s.metrics != nil {
			prometheus.RecordAdvisory(s.metrics, a.Code)
		}
	}

	if err := s.compare(ctx, req, report); err != nil {
		s.recordError("dataset", err)
		return nil, err
	}

	if s.metrics != nil {
		codes := make([]string, len(result.Activations))
		for i, a := range result.Activations {
			codes[i] = a.Rule.Code()
		}
		prometheus.RecordEvaluation(s.metrics, string(result.Category), result.Score, codes, result.NoRuleFired, elapsed)
	}

	log.Debug("evaluation complete",
		logging.String("report_id", report.ID),
		logging.Float64("score", result.Score),
		logging.String("category", string(result.Category)),
		logging.Int("rules_fired", len(result.Activations)),
		logging.Duration("elapsed", elapsed))
	return report, nil
}

func (s *serviceImpl) compare(ctx context.Context, req *EvaluateRequest, report *Report) error {
	records := req.Records
	if records == nil && req.DatasetPath != "" {
		ds, err := s.loadDataset(ctx, req.DatasetPath)
		if err != nil {
			return err
		}
		records = ds.Records
		report.Dataset = summarize(ds, nil)
	}
	if records == nil {
		return nil
	}
	c := history.Compare(records, report.Result.Indicators.Density, s.cfg.Compare)
	report.Comparison = &c
	if report.Dataset != nil {
		report.Dataset.TotalBirds = c.TotalBirds
		report.Dataset.TotalDeaths = c.TotalDeaths
		report.Dataset.MeanDensity = c.MeanDensity
	}
	if n := c.Skipped.Total() + c.MissingDeaths; n > 0 {
		s.logger.Info("dataset rows with missing fields",
			logging.Int("skipped_bird_count", c.Skipped.BirdCount),
			logging.Int("skipped_density", c.Skipped.Density),
			logging.Int("skipped_depletion", c.Skipped.Depletion),
			logging.Int("missing_deaths", c.MissingDeaths))
	}
	return nil
}

func (s *serviceImpl) LoadDataset(ctx context.Context, path string) (*DatasetSummary, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidParam("dataset path is required")
	}
	ds, err := s.loadDataset(ctx, path)
	if err != nil {
		s.recordError("dataset", err)
		return nil, err
	}
	c := history.Compare(ds.Records, 0, s.cfg.Compare)
	return summarize(ds, &c), nil
}

func (s *serviceImpl) loadDataset(ctx context.Context, path string) (*dataset.Dataset, error) {
	if s.loader == nil {
		return nil, errors.New(errors.ErrCodeNotImplemented, "no dataset loader configured")
	}
	start := s.now()
	ds, err := s.loader.LoadFile(ctx, path)
	if s.metrics != nil {
		var rows, valid, dropped int
		if ds != nil {
			rows, valid, dropped = ds.Rows, ds.ValidRows, ds.DroppedRows
		}
		prometheus.RecordDatasetLoad(s.metrics, rows, valid, dropped, s.now().Sub(start), err)
	}
	if err != nil {
		s.logger.Error("dataset load failed", append(logging.ErrorFields(err), logging.String("path", path))...)
		return nil, err
	}
	return ds, nil
}

func (s *serviceImpl) Rules(_ context.Context) []RuleView {
	rules := domain.Rules()
	out := make([]RuleView, len(rules))
	for i, r := range rules {
		out[i] = RuleView{
			Code:       r.ID.Code(),
			Density:    r.Density.String(),
			Depletion:  r.Depletion.String(),
			Consequent: r.Consequent.String(),
			Derate:     r.Derate,
		}
	}
	return out
}

func (s *serviceImpl) validateRequest(req *EvaluateRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, errors.ErrCodeValidation, "request validation failed")
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldMessage(fe))
	}
	return errors.InvalidInput("invalid house input").WithDetail(strings.Join(details, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "ltefield":
		return fe.Field() + " must not exceed " + fe.Param()
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}

func (s *serviceImpl) recordError(component string, err error) {
	if s.metrics != nil {
		prometheus.RecordError(s.metrics, component, errors.GetCode(err).String())
	}
}

func summarize(ds *dataset.Dataset, c *history.Comparison) *DatasetSummary {
	sum := &DatasetSummary{
		Source:      ds.Source,
		Encoding:    ds.Encoding,
		Delimiter:   ds.Delimiter,
		Columns:     ds.Columns,
		Rows:        ds.Rows,
		ValidRows:   ds.ValidRows,
		DroppedRows: ds.DroppedRows,
		Repaired:    ds.Repaired,
	}
	if c != nil {
		sum.TotalBirds = c.TotalBirds
		sum.TotalDeaths = c.TotalDeaths
		sum.MeanDensity = c.MeanDensity
	}
	return sum
}

//Personal.AI order the ending
