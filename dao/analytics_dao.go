// dao/analytics_dao.go
package dao

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harborworks/causeway-api/model"
)

// Analytics hash fields.
const (
	CounterSubmitted = "submitted"
	CounterPending   = "pending"
	CounterApproved  = "approved"
	CounterRejected  = "rejected"
	StatAvgHours     = "avg_hours"
	StatSamples      = "samples"
)

// AnalyticsDAO maintains increment-only workflow counters in Redis hashes,
// keyed by organization + template with per-day and per-actor rollups. All
// updates are atomic HINCRBY operations.
type AnalyticsDAO struct {
	Client *redis.Client
}

func NewAnalyticsDAO(client *redis.Client) *AnalyticsDAO {
	return &AnalyticsDAO{Client: client}
}

func templateKey(orgID, templateID string) string {
	return fmt.Sprintf("analytics:%s:template:%s", orgID, templateID)
}

func dailyKey(orgID, day string) string {
	return fmt.Sprintf("analytics:%s:daily:%s", orgID, day)
}

func actorKey(orgID, actorID, day string) string {
	return fmt.Sprintf("analytics:%s:actor:%s:%s", orgID, actorID, day)
}

// RecordSubmission counts a new pending submission.
func (dao *AnalyticsDAO) RecordSubmission(ctx context.Context, orgID, templateID, actorID string, at time.Time) error {
	day := at.Format("2006-01-02")
	pipe := dao.Client.TxPipeline()
	for _, key := range []string{templateKey(orgID, templateID), dailyKey(orgID, day), actorKey(orgID, actorID, day)} {
		pipe.HIncrBy(ctx, key, CounterSubmitted, 1)
		pipe.HIncrBy(ctx, key, CounterPending, 1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RecordDecision moves one pending submission into the approved or rejected
// bucket.
func (dao *AnalyticsDAO) RecordDecision(ctx context.Context, orgID, templateID, actorID, status string, at time.Time) error {
	var counter string
	switch status {
	case model.SubmissionStatusApproved:
		counter = CounterApproved
	case model.SubmissionStatusRejected:
		counter = CounterRejected
	default:
		return fmt.Errorf("not a decision status: %s", status)
	}

	day := at.Format("2006-01-02")
	pipe := dao.Client.TxPipeline()
	for _, key := range []string{templateKey(orgID, templateID), dailyKey(orgID, day), actorKey(orgID, actorID, day)} {
		pipe.HIncrBy(ctx, key, counter, 1)
		pipe.HIncrBy(ctx, key, CounterPending, -1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// RecordProcessingTime stores the latest processing-time sample. The
// "average" overwrites rather than folding into a weighted mean; the sample
// count is kept alongside so a true running mean can be introduced later.
func (dao *AnalyticsDAO) RecordProcessingTime(ctx context.Context, orgID, templateID string, hours float64) error {
	key := templateKey(orgID, templateID)
	pipe := dao.Client.TxPipeline()
	pipe.HSet(ctx, key, StatAvgHours, strconv.FormatFloat(hours, 'f', 1, 64))
	pipe.HIncrBy(ctx, key, StatSamples, 1)
	_, err := pipe.Exec(ctx)
	return err
}

// TemplateStats returns the raw counter hash for a template.
func (dao *AnalyticsDAO) TemplateStats(ctx context.Context, orgID, templateID string) (map[string]string, error) {
	return dao.Client.HGetAll(ctx, templateKey(orgID, templateID)).Result()
}

// DailyStats returns the organization-wide rollup for one day.
func (dao *AnalyticsDAO) DailyStats(ctx context.Context, orgID string, day time.Time) (map[string]string, error) {
	return dao.Client.HGetAll(ctx, dailyKey(orgID, day.Format("2006-01-02"))).Result()
}
