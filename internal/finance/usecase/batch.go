package usecase

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/finvault/internal/crypto/domain"
	"github.com/allisson/finvault/internal/metrics"
)

// maxDecryptWorkers bounds the decrypt fan-out per fetch.
const maxDecryptWorkers = 8

// decryptRows decrypts fetched rows concurrently, preserving input order.
// A row that fails to decrypt is dropped and logged so one corrupt or
// stale-key row cannot take down the whole view. A missing master key is
// different: nothing can be decrypted, so the entire call fails.
func decryptRows[R, E any](
	ctx context.Context,
	rows []R,
	kind string,
	decrypt func(*R) (*E, error),
	logger *slog.Logger,
	m metrics.BusinessMetrics,
) ([]*E, error) {
	results := make([]*E, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDecryptWorkers)

	for i := range rows {
		g.Go(func() error {
			entity, err := decrypt(&rows[i])
			if err != nil {
				if errors.Is(err, cryptoDomain.ErrKeyUnavailable) {
					return err
				}
				logger.Warn("dropping row that failed to decrypt",
					slog.String("kind", kind),
					slog.Any("error", err),
				)
				m.RecordDecryptFailure(gctx, kind)
				return nil
			}
			results[i] = entity
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*E, 0, len(rows))
	for _, entity := range results {
		if entity != nil {
			out = append(out, entity)
		}
	}
	return out, nil
}
