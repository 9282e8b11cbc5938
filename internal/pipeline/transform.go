package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/fbp-service/internal/domain"
	"github.com/couchcryptid/fbp-service/internal/fbp"
)

// FireBehaviorTransformer implements Transformer with the domain functions:
// parse, validate, enrich with elevation, evaluate.
type FireBehaviorTransformer struct {
	elevation domain.ElevationSource
	fuelTypes []fbp.FuelType
	logger    *slog.Logger
}

// NewTransformer creates a FireBehaviorTransformer. fuelTypes are evaluated
// for observations that name none. Pass a nil elevation source to disable
// elevation enrichment.
func NewTransformer(elevation domain.ElevationSource, fuelTypes []fbp.FuelType, logger *slog.Logger) *FireBehaviorTransformer {
	return &FireBehaviorTransformer{
		elevation: elevation,
		fuelTypes: fuelTypes,
		logger:    logger,
	}
}

func (t *FireBehaviorTransformer) Transform(ctx context.Context, raw domain.RawEvent) ([]domain.FireBehaviorEvent, error) {
	obs, err := domain.ParseObservation(raw)
	if err != nil {
		return nil, err
	}
	return t.Evaluate(ctx, obs)
}

// Evaluate validates an already decoded observation and predicts fire
// behaviour for it. Validation failures carry *fbp.ValidationError values.
func (t *FireBehaviorTransformer) Evaluate(ctx context.Context, obs domain.Observation) ([]domain.FireBehaviorEvent, error) {
	if err := domain.Validate(obs); err != nil {
		return nil, fmt.Errorf("validate observation: %w", err)
	}
	obs = domain.EnrichWithElevation(ctx, obs, t.elevation, t.logger)
	return domain.Evaluate(obs, t.fuelTypes)
}
