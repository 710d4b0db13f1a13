// Package cache holds the in-memory statistics cache. The import worker
// evicts entries for the reporting periods an import touched; the statistics
// service reads and fills them.
package cache

import (
	"context"
	"strconv"
	"sync"

	"github.com/banking-tools/transaction-aggregator/internal/domain"
	"github.com/banking-tools/transaction-aggregator/pkg/logger"
)

const (
	CategoryStatsCache = "categoryStats"
	IbanStatsCache     = "ibanStats"
	MonthlyStatsCache  = "monthlyStats"
)

// StatisticsCache caches statistics responses keyed by cache name plus
// period key ("2024-01" for month-scoped caches, "2024" for the yearly one).
type StatisticsCache struct {
	entries map[string]map[string]interface{}
	mu      sync.RWMutex
	logger  *logger.Logger
}

func NewStatisticsCache(log *logger.Logger) *StatisticsCache {
	return &StatisticsCache{
		entries: map[string]map[string]interface{}{
			CategoryStatsCache: {},
			IbanStatsCache:     {},
			MonthlyStatsCache:  {},
		},
		logger: log,
	}
}

func (c *StatisticsCache) Get(cacheName, key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, exists := c.entries[cacheName]
	if !exists {
		return nil, false
	}

	value, ok := cached[key]
	return value, ok
}

func (c *StatisticsCache) Put(cacheName, key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, exists := c.entries[cacheName]
	if !exists {
		return
	}

	cached[key] = value
}

// EvictStatisticsCache drops the month-scoped entries for every affected
// month and the yearly entry for every year any of those months falls in.
func (c *StatisticsCache) EvictStatisticsCache(ctx context.Context, affectedMonths map[domain.YearMonth]struct{}) {
	c.mu.Lock()

	years := make(map[int]struct{})
	for month := range affectedMonths {
		key := month.String()
		delete(c.entries[CategoryStatsCache], key)
		delete(c.entries[IbanStatsCache], key)
		years[month.Year] = struct{}{}
	}

	for year := range years {
		delete(c.entries[MonthlyStatsCache], strconv.Itoa(year))
	}

	c.mu.Unlock()

	c.logger.Debug(ctx, "Evicted statistics cache",
		"affected_months", len(affectedMonths),
		"affected_years", len(years),
	)
}

func (c *StatisticsCache) EvictAllStatisticsCache(ctx context.Context) {
	c.mu.Lock()
	for name := range c.entries {
		c.entries[name] = map[string]interface{}{}
	}
	c.mu.Unlock()

	c.logger.Debug(ctx, "Evicted all statistics caches")
}
