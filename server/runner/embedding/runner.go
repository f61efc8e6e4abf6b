// Package embedding precomputes thought embeddings in the background so the
// embedding-clustering path answers from the cache instead of calling the
// provider per analysis.
package embedding

import (
	"context"
	"log/slog"
	"time"

	"github.com/nebulanotes/constellation/plugin/markdown"
	"github.com/nebulanotes/constellation/server/ai"
	"github.com/nebulanotes/constellation/store"
)

type Runner struct {
	store    *store.Store
	provider *ai.Provider
	model    string

	interval  time.Duration
	batchSize int
}

// NewRunner creates a background embedding runner. Only meaningful on the
// postgres driver; on sqlite every upsert fails and the runner just logs.
func NewRunner(store *store.Store, provider *ai.Provider, model string) *Runner {
	return &Runner{
		store:     store,
		provider:  provider,
		model:     model,
		interval:  2 * time.Minute,
		batchSize: 8,
	}
}

// Run starts the background loop until the context is canceled.
func (r *Runner) Run(ctx context.Context) {
	r.RunOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.RunOnce(ctx)
		case <-ctx.Done():
			slog.Info("embedding runner stopped")
			return
		}
	}
}

// RunOnce processes pending thoughts a single time.
func (r *Runner) RunOnce(ctx context.Context) {
	thoughts, err := r.store.ListThoughtsWithoutEmbedding(ctx, r.model, r.batchSize*20)
	if err != nil {
		slog.Error("failed to list thoughts without embedding", "error", err)
		return
	}
	if len(thoughts) == 0 {
		return
	}

	slog.Info("processing thoughts for embedding", "count", len(thoughts))
	processed := 0
	for _, t := range thoughts {
		select {
		case <-ctx.Done():
			slog.Info("embedding processing canceled", "processed", processed, "total", len(thoughts))
			return
		default:
		}

		vector, err := r.provider.Embedding(ctx, markdown.PlainText(t.Text))
		if err != nil {
			slog.Error("failed to embed thought", "thought_id", t.ID, "error", err)
			continue
		}
		if _, err := r.store.UpsertThoughtEmbedding(ctx, &store.ThoughtEmbedding{
			ThoughtID: t.ID,
			Model:     r.model,
			Embedding: vector,
		}); err != nil {
			slog.Error("failed to upsert embedding", "thought_id", t.ID, "error", err)
			continue
		}
		processed++
	}
	slog.Info("embedding batch processed", "processed", processed, "total", len(thoughts))
}
