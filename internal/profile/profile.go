package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the constellation server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where constellation stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// TickInterval drives the animation/density recompute loop.
	TickInterval time.Duration
	// MergeThreshold is the default merge aggressiveness preset.
	MergeThreshold float64

	// AI configuration for the optional embedding and narrative paths.
	AIEnabled        bool    // CONSTELLATION_AI_ENABLED
	AIBaseURL        string  // CONSTELLATION_AI_BASE_URL (default: https://api.openai.com/v1)
	AIAPIKey         string  // CONSTELLATION_AI_API_KEY
	AIEmbeddingModel string  // CONSTELLATION_AI_EMBEDDING_MODEL (default: text-embedding-3-small)
	AIChatModel      string  // CONSTELLATION_AI_CHAT_MODEL (default: gpt-4o-mini)
	AIRequestsPerSec float64 // CONSTELLATION_AI_REQUESTS_PER_SEC (default: 5)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if the optional AI paths are enabled and a key is
// configured. The lexical pipeline works without any of this.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from CONSTELLATION_* environment variables.
func (p *Profile) FromEnv() {
	p.AIEnabled = os.Getenv("CONSTELLATION_AI_ENABLED") == "true"
	p.AIBaseURL = getEnvOrDefault("CONSTELLATION_AI_BASE_URL", "https://api.openai.com/v1")
	p.AIAPIKey = os.Getenv("CONSTELLATION_AI_API_KEY")
	p.AIEmbeddingModel = getEnvOrDefault("CONSTELLATION_AI_EMBEDDING_MODEL", "text-embedding-3-small")
	p.AIChatModel = getEnvOrDefault("CONSTELLATION_AI_CHAT_MODEL", "gpt-4o-mini")
	p.AIRequestsPerSec = 5
	if v := os.Getenv("CONSTELLATION_AI_REQUESTS_PER_SEC"); v != "" {
		if _, err := fmt.Sscanf(v, "%f", &p.AIRequestsPerSec); err != nil {
			slog.Warn("invalid CONSTELLATION_AI_REQUESTS_PER_SEC, using default", "value", v)
			p.AIRequestsPerSec = 5
		}
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/constellation"
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("constellation_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.TickInterval <= 0 {
		p.TickInterval = 50 * time.Millisecond
	}
	if p.MergeThreshold <= 0 || p.MergeThreshold >= 1 {
		p.MergeThreshold = 0.30
	}

	return nil
}
