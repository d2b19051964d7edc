package services

import (
	"time"

	"github.com/HeyDYF/Money-Manager/internal/analytics"
	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
)

// analyticsService summarizes the ledger's transactions.
type analyticsService struct {
	manager *ledger.Manager
	now     func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(manager *ledger.Manager) AnalyticsServicer {
	return &analyticsService{manager: manager, now: time.Now}
}

// GetSummary filters by query and time range, then aggregates.
func (s *analyticsService) GetSummary(query, timeRange string) (*AnalyticsReport, error) {
	r, err := analytics.ParseRange(timeRange)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	state := s.manager.State()
	filter := analytics.Filter{Query: query, Range: r}
	matched := filter.Apply(state.Transactions, s.now())

	return &AnalyticsReport{
		Query:    query,
		Range:    r,
		Currency: state.Currency,
		Summary:  analytics.Summarize(matched),
	}, nil
}
