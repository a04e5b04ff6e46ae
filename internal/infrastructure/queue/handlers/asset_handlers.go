package handlers

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"biblioteca-backend/internal/domains/book"
	"biblioteca-backend/internal/infrastructure/storage"
	"biblioteca-backend/internal/shared"
	"biblioteca-backend/pkg/logger"
)

// DeleteBookAssetsHandler removes the files a deleted book left in
// the asset store.
func DeleteBookAssetsHandler(assets storage.AssetStorage) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.DeleteBookAssetsPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return asynq.SkipRetry
		}

		if err := assets.Remove(ctx, storage.ClassPDF, p.PDF); err != nil {
			return err
		}
		if p.Capa != nil {
			if err := assets.Remove(ctx, storage.ClassCover, *p.Capa); err != nil {
				return err
			}
		}
		if p.Thumb != nil {
			if err := assets.Remove(ctx, storage.ClassCover, *p.Thumb); err != nil {
				return err
			}
		}

		logger.Info("book assets removed", map[string]interface{}{
			"pdf": p.PDF,
		})
		return nil
	}
}

// SweepOrphansHandler deletes stored files no book row references.
// It runs on a schedule and backstops the inline and queued cleanup
// paths.
func SweepOrphansHandler(repo book.Repository, assets storage.AssetStorage) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		referenced, err := repo.AssetNames(ctx)
		if err != nil {
			return err
		}

		removed := 0
		for _, class := range []storage.AssetClass{storage.ClassPDF, storage.ClassCover} {
			names, err := assets.List(ctx, class)
			if err != nil {
				return err
			}
			for _, name := range names {
				if _, ok := referenced[name]; ok {
					continue
				}
				if err := assets.Remove(ctx, class, name); err != nil {
					logger.Warn("orphan removal failed: "+name, err)
					continue
				}
				removed++
			}
		}

		logger.Info("orphan sweep completed", map[string]interface{}{
			"removed": removed,
		})
		return nil
	}
}
