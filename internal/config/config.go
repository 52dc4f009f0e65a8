package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	BaseURL  string // TREELINE_BASE_URL (required unless --offline)
	Email    string // TREELINE_EMAIL (account for basic auth)
	Token    string // TREELINE_TOKEN (API token)
	AuthMode string // TREELINE_AUTH ("auto", "bearer", or "basic"; default "auto")

	TopologyID string // TREELINE_TOPOLOGY_ID (optional, empty = no folder overlay)
	CacheURL   string // TREELINE_CACHE_URL (optional, empty = no local cache)
	NATSURL    string // TREELINE_NATS_URL (optional, empty = no events)

	MaxResults int // TREELINE_MAX_RESULTS (default 50)
	ChildCap   int // TREELINE_CHILD_CAP (default 25)

	// Snapshot export settings
	SnapshotS3Bucket   string // TREELINE_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string // TREELINE_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string // TREELINE_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string // TREELINE_SNAPSHOT_S3_KEY (default "treeline/snapshot.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		BaseURL:            os.Getenv("TREELINE_BASE_URL"),
		Email:              os.Getenv("TREELINE_EMAIL"),
		Token:              os.Getenv("TREELINE_TOKEN"),
		AuthMode:           envOrDefault("TREELINE_AUTH", "auto"),
		TopologyID:         os.Getenv("TREELINE_TOPOLOGY_ID"),
		CacheURL:           os.Getenv("TREELINE_CACHE_URL"),
		NATSURL:            os.Getenv("TREELINE_NATS_URL"),
		SnapshotS3Bucket:   os.Getenv("TREELINE_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("TREELINE_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("TREELINE_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("TREELINE_SNAPSHOT_S3_KEY", "treeline/snapshot.jsonl"),
	}

	switch c.AuthMode {
	case "auto", "bearer", "basic":
	default:
		return nil, fmt.Errorf("TREELINE_AUTH must be auto, bearer, or basic (got %q)", c.AuthMode)
	}

	var err error
	if c.MaxResults, err = envInt("TREELINE_MAX_RESULTS", 50); err != nil {
		return nil, err
	}
	if c.ChildCap, err = envInt("TREELINE_CHILD_CAP", 25); err != nil {
		return nil, err
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
