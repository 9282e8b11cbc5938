package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/fbp-service/internal/domain"
)

// FanOutLoader writes each batch to every loader in order and stops at the
// first failure, so offsets are only committed once all sinks have the batch.
// Sinks must tolerate replays of a batch that an earlier attempt partially wrote.
type FanOutLoader struct {
	loaders []BatchLoader
}

// NewFanOutLoader combines loaders, skipping nil entries.
func NewFanOutLoader(loaders ...BatchLoader) *FanOutLoader {
	f := &FanOutLoader{}
	for _, l := range loaders {
		if l != nil {
			f.loaders = append(f.loaders, l)
		}
	}
	return f
}

func (f *FanOutLoader) LoadBatch(ctx context.Context, events []domain.FireBehaviorEvent) error {
	for i, l := range f.loaders {
		if err := l.LoadBatch(ctx, events); err != nil {
			return fmt.Errorf("load batch into sink %d (%T): %w", i, l, err)
		}
	}
	return nil
}
