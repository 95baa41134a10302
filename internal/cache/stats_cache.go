package cache

import (
	"context"
	"encoding/json"
	"time"

	"formforge/internal/model"

	"github.com/redis/go-redis/v9"
)

// StatsCache handles Redis caching for dashboard stats: per-form response
// counts and full analytics reports. Both are invalidated together whenever
// a submission lands or the form goes away.
type StatsCache interface {
	GetResponseCount(ctx context.Context, formID string) (int64, bool, error)
	SetResponseCount(ctx context.Context, formID string, count int64) error

	GetReport(ctx context.Context, formID string) (*model.FormReport, error)
	SetReport(ctx context.Context, report *model.FormReport) error

	InvalidateForm(ctx context.Context, formID string) error
}

type statsCache struct {
	client    *redis.Client
	countTTL  time.Duration
	reportTTL time.Duration
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{
		client:    client,
		countTTL:  5 * time.Minute,
		reportTTL: 30 * time.Second,
	}
}

func (c *statsCache) countKey(formID string) string {
	return "form:" + formID + ":responses"
}

func (c *statsCache) reportKey(formID string) string {
	return "form:" + formID + ":report"
}

func (c *statsCache) GetResponseCount(ctx context.Context, formID string) (int64, bool, error) {
	n, err := c.client.Get(ctx, c.countKey(formID)).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *statsCache) SetResponseCount(ctx context.Context, formID string, count int64) error {
	return c.client.Set(ctx, c.countKey(formID), count, c.countTTL).Err()
}

func (c *statsCache) GetReport(ctx context.Context, formID string) (*model.FormReport, error) {
	data, err := c.client.Get(ctx, c.reportKey(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.FormReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *statsCache) SetReport(ctx context.Context, report *model.FormReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.reportKey(report.FormID), data, c.reportTTL).Err()
}

func (c *statsCache) InvalidateForm(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.countKey(formID), c.reportKey(formID)).Err()
}
