package service

import (
	"context"
	"time"

	"github.com/upk-it/helpdesk/internal/domain"
	"github.com/upk-it/helpdesk/internal/repository"
	apperrors "github.com/upk-it/helpdesk/pkg/util"
)

// DefaultMetricsRangeDays is used when the caller omits or botches the
// range parameter.
const DefaultMetricsRangeDays = 30

// Metrics is the dashboard rollup over a creation-time window.
type Metrics struct {
	RangeDays       int
	From            time.Time
	To              time.Time
	TotalTickets    int
	ResolvedTickets int
	OpenTickets     int
	SLABreached     int
	ByStatus        []repository.StatusCount
	ByPriority      []repository.PriorityCount
	ByArea          []repository.AreaCount
	ByResolver      []repository.ResolverCount
}

// MetricsService computes the admin dashboard counts. Read-only, no
// caching; every call re-runs the queries.
type MetricsService struct {
	repo repository.MetricsRepository
	now  func() time.Time
}

// NewMetricsService constructs the service.
func NewMetricsService(repo repository.MetricsRepository) *MetricsService {
	return &MetricsService{repo: repo, now: time.Now}
}

// Compute aggregates ticket counts for the window [now - rangeDays, now].
// Non-positive ranges fall back to the default. The SLA-breached figure
// keeps the historical approximation: resolved/closed tickets that carry a
// due date, not tickets actually resolved late.
func (s *MetricsService) Compute(ctx context.Context, rangeDays int) (*Metrics, error) {
	if rangeDays <= 0 {
		rangeDays = DefaultMetricsRangeDays
	}

	to := s.now()
	from := to.Add(-time.Duration(rangeDays) * 24 * time.Hour)

	m := &Metrics{RangeDays: rangeDays, From: from, To: to}

	var err error
	if m.TotalTickets, err = s.repo.CountInRange(ctx, from, to); err != nil {
		return nil, apperrors.MapError(err)
	}
	if m.ByStatus, err = s.repo.CountByStatus(ctx, from, to); err != nil {
		return nil, apperrors.MapError(err)
	}
	if m.ByPriority, err = s.repo.CountByPriority(ctx, from, to); err != nil {
		return nil, apperrors.MapError(err)
	}
	if m.ByArea, err = s.repo.CountByArea(ctx, from, to); err != nil {
		return nil, apperrors.MapError(err)
	}
	if m.ResolvedTickets, err = s.repo.CountWithStatuses(ctx, from, to, domain.ClosedStatuses); err != nil {
		return nil, apperrors.MapError(err)
	}
	if m.OpenTickets, err = s.repo.CountWithStatuses(ctx, from, to, domain.OpenStatuses); err != nil {
		return nil, apperrors.MapError(err)
	}
	if m.SLABreached, err = s.repo.CountSLABreached(ctx, from, to); err != nil {
		return nil, apperrors.MapError(err)
	}
	if m.ByResolver, err = s.repo.ResolvedByAssignee(ctx, from, to); err != nil {
		return nil, apperrors.MapError(err)
	}
	return m, nil
}
