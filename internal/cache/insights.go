// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// insights.go caches computed insights summaries in Valkey. Entries are keyed
// by a per-process namespace plus the content store revision they were
// computed from, so any mutation of the store produces a miss and entries
// from earlier runs (whose revisions restart at zero) are never read back.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"devforum/internal/analytics"
)

const (
	// insightsKeyPrefix is the Valkey key prefix for cached summaries.
	insightsKeyPrefix = "insights:"

	// DefaultInsightsTTL is how long a summary stays cached.
	DefaultInsightsTTL = 10 * time.Minute
)

// InsightsCache stores insights summaries in Valkey. Cache failures are
// logged and reported as misses; they never fail the caller.
type InsightsCache struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewInsightsCache creates a cache backed by the given Valkey client. The
// namespace must be unique to the store instance whose revisions are used.
func NewInsightsCache(client *redis.Client, namespace string, ttl time.Duration) *InsightsCache {
	if ttl == 0 {
		ttl = DefaultInsightsTTL
	}
	return &InsightsCache{client: client, namespace: namespace, ttl: ttl}
}

// Get returns the summary computed at revision, if cached.
func (c *InsightsCache) Get(ctx context.Context, revision uint64) (*analytics.InsightsSummary, bool) {
	key := InsightsKey(c.namespace, revision)
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("insights cache get error", "key", key, "error", err)
		return nil, false
	}

	var s analytics.InsightsSummary
	if err := json.Unmarshal(val, &s); err != nil {
		slog.Warn("insights cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("insights cache hit", "key", key)
	return &s, true
}

// Set stores the summary computed at revision with the configured TTL.
func (c *InsightsCache) Set(ctx context.Context, revision uint64, s *analytics.InsightsSummary) {
	key := InsightsKey(c.namespace, revision)
	data, err := json.Marshal(s)
	if err != nil {
		slog.Warn("insights cache encode error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("insights cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached summary, from any namespace, by
// scanning for the prefix.
func (c *InsightsCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, insightsKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("insights cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("insights cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("insights cache cleared", "deleted", deleted)
	}
}

// InsightsKey returns the Valkey key for a store revision.
func InsightsKey(namespace string, revision uint64) string {
	return insightsKeyPrefix + namespace + ":" + strconv.FormatUint(revision, 10)
}
