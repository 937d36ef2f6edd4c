package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/repoguard/core/gitlog"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/schema"
)

// currentCacheVersion defines the version of the commit log cache payload
const currentCacheVersion = 1

// defaultCacheMaxAge bounds entry staleness when no --cache-max-age is set
const defaultCacheMaxAge = 7 * 24 * time.Hour

// cachedCommitLog retrieves the parsed commit log for the configured window,
// consulting the log cache store before shelling out to git.
func cachedCommitLog(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) ([]schema.CommitRecord, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetLogStore()
	}
	if store == nil {
		// Fallback to direct computation
		return fetchCommitLog(ctx, cfg, client)
	}

	key := generateCacheKey(ctx, cfg, client)

	if commits := checkCacheHit(store, key, cfg.CacheMaxAge); commits != nil {
		return commits, nil
	}

	// Cache miss: compute and store
	return fetchAndStore(ctx, cfg, client, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached commit log
func checkCacheHit(store contract.CacheStore, key string, maxAge time.Duration) []schema.CommitRecord {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if maxAge <= 0 {
		maxAge = defaultCacheMaxAge
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= maxAge {
			var commits []schema.CommitRecord
			if err := json.Unmarshal(data, &commits); err == nil {
				return commits // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// fetchAndStore fetches the commit log from git and stores it in cache
func fetchAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.CacheStore, key string) ([]schema.CommitRecord, error) {
	commits, err := fetchCommitLog(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	// Store in cache
	if data, err := json.Marshal(commits); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return commits, nil
}

// fetchCommitLog shells out for the raw delimited log and parses it.
func fetchCommitLog(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.CommitRecord, error) {
	format := gitlog.DefaultFormat()
	out, err := client.GetCommitLog(ctx, cfg.RepoPath, format.FormatArg(), cfg.StartTime, cfg.EndTime, cfg.CommitLimit)
	if err != nil {
		return nil, err
	}
	return format.ParseLog(out)
}

// generateCacheKey creates a unique key based on the audit window parameters
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) string {
	// Use canonical helpers from contract.Config to ensure consistent time granularity
	startHour := cfg.GetAuditStartTime()
	endHour := cfg.GetAuditEndTime()

	// Include repo hash to invalidate cache when repository state changes
	repoHash, err := client.GetRepoHash(ctx, cfg.RepoPath)
	if err != nil {
		repoHash = ""
	}

	key := fmt.Sprintf("%s:%d:%d:%d:%s:%s",
		cfg.RepoPath,
		cfg.CommitLimit,
		startHour.Unix(),
		endHour.Unix(),
		gitlog.DefaultFormat().FormatArg(),
		repoHash,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
