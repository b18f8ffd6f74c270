// service/analytics_service.go
package service

import (
	"context"
	"strconv"
	"time"

	"github.com/harborworks/causeway-api/dao"
	"github.com/harborworks/causeway-api/model"
)

// IAnalyticsService exposes the workflow counters in typed form.
type IAnalyticsService interface {
	TemplateStats(ctx context.Context, orgID, templateID string) (*model.TemplateStats, error)
	DailyStats(ctx context.Context, orgID string, day time.Time) (map[string]int64, error)
}

type AnalyticsService struct {
	analyticsStore AnalyticsStore
}

var _ IAnalyticsService = &AnalyticsService{}

func NewAnalyticsService(analyticsStore AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{analyticsStore: analyticsStore}
}

// TemplateStats reads the counter hash for one template. Missing fields
// read as zero; a template with no submissions yet returns all zeros.
func (s *AnalyticsService) TemplateStats(ctx context.Context, orgID, templateID string) (*model.TemplateStats, error) {
	raw, err := s.analyticsStore.TemplateStats(ctx, orgID, templateID)
	if err != nil {
		return nil, err
	}

	stats := &model.TemplateStats{
		TemplateID: templateID,
		Submitted:  parseCounter(raw, dao.CounterSubmitted),
		Pending:    parseCounter(raw, dao.CounterPending),
		Approved:   parseCounter(raw, dao.CounterApproved),
		Rejected:   parseCounter(raw, dao.CounterRejected),
		Samples:    parseCounter(raw, dao.StatSamples),
	}
	if value, ok := raw[dao.StatAvgHours]; ok {
		stats.AvgProcessingHours, _ = strconv.ParseFloat(value, 64)
	}
	return stats, nil
}

// DailyStats returns the organization-wide rollup for one day.
func (s *AnalyticsService) DailyStats(ctx context.Context, orgID string, day time.Time) (map[string]int64, error) {
	raw, err := s.analyticsStore.DailyStats(ctx, orgID, day)
	if err != nil {
		return nil, err
	}

	counters := make(map[string]int64, len(raw))
	for field := range raw {
		counters[field] = parseCounter(raw, field)
	}
	return counters, nil
}

func parseCounter(raw map[string]string, field string) int64 {
	value, ok := raw[field]
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(value, 10, 64)
	return n
}
