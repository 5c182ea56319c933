package service

import (
	"context"
	"log/slog"
	"time"

	"lotus-engine/domain"
	"lotus-engine/engine"
	"lotus-engine/metrics"
	"lotus-engine/repository"
)

// Option configures the optional collaborators of a service.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	metrics  *metrics.Registry
	cacheTTL time.Duration
	insights *InsightService
}

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

func WithMetrics(m *metrics.Registry) Option { return func(o *options) { o.metrics = m } }

func WithCacheTTL(ttl time.Duration) Option { return func(o *options) { o.cacheTTL = ttl } }

// WithInsights attaches a plain-language summary to tranche responses.
func WithInsights(s *InsightService) Option { return func(o *options) { o.insights = s } }

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

type TrancheService struct {
	repo      repository.SnapshotRepository
	cache     *resultCache
	validator *Validator
	insights  *InsightService
	metrics   *metrics.Registry
	logger    *slog.Logger
}

// NewTrancheService creates a TrancheService backed by the given snapshot
// repository and result cache. Either may be nil.
func NewTrancheService(repo repository.SnapshotRepository,
	cache repository.CacheRepository,
	opts ...Option,
) *TrancheService {
	o := buildOptions(opts)
	return &TrancheService{
		repo: repo,
		cache: &resultCache{
			cache:   cache,
			ttl:     o.cacheTTL,
			metrics: o.metrics,
			logger:  o.logger,
		},
		validator: NewValidator(),
		insights:  o.insights,
		metrics:   o.metrics,
		logger:    o.logger,
	}
}

// Compute runs the accounting engine over the request's tranches.
func (s *TrancheService) Compute(
	ctx context.Context,
	req domain.TrancheRequest,
) (domain.TrancheResponse, error) {
	if err := s.validator.ValidateTrancheRequest(req); err != nil {
		return domain.TrancheResponse{}, err
	}

	key, err := cacheKey(opComputeTranches, req)
	if err != nil {
		return domain.TrancheResponse{}, err
	}
	var cached domain.TrancheResponse
	if s.cache.load(ctx, key, &cached) {
		cached.Cached = true
		return cached, nil
	}

	data := s.computeTranches(req)
	resp := domain.TrancheResponse{
		Tranches:       data,
		BindingIndices: engine.BindingIndices(data),
	}
	for _, t := range data {
		resp.TotalSupply += t.SupplyAssets
		resp.TotalBorrow += t.BorrowAssets
		resp.TotalInterest += t.BorrowAssets * t.BorrowRate
	}
	if s.insights != nil {
		resp.Insight = s.insights.Summarize(ctx, data)
	}

	// Saving is best effort.
	resp.SnapshotID = recordSnapshot(ctx, s.repo, s.logger, domain.SnapshotTranches, req, resp)
	s.cache.store(ctx, key, resp)

	return resp, nil
}

// FundingMatrix attributes every lender tranche's supply to the borrower
// tranches it funds.
func (s *TrancheService) FundingMatrix(
	ctx context.Context,
	req domain.TrancheRequest,
) (domain.FundingMatrix, error) {
	if err := s.validator.ValidateTrancheRequest(req); err != nil {
		return domain.FundingMatrix{}, err
	}

	key, err := cacheKey(opFundingMatrix, req)
	if err != nil {
		return domain.FundingMatrix{}, err
	}
	var cached domain.FundingMatrix
	if s.cache.load(ctx, key, &cached) {
		return cached, nil
	}

	fm := engine.ComputeFundingMatrix(req.Tranches, req.IncludePendingInterest)
	s.metrics.Computation(opFundingMatrix)

	recordSnapshot(ctx, s.repo, s.logger, domain.SnapshotFundingMatrix, req, fm)
	s.cache.store(ctx, key, fm)

	return fm, nil
}

// computeTranches runs the engine on an already validated request.
func (s *TrancheService) computeTranches(req domain.TrancheRequest) []domain.TrancheData {
	s.metrics.Computation(opComputeTranches)
	return engine.ComputeAllTranches(req.Tranches, req.IncludePendingInterest)
}
