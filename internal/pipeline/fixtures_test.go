package pipeline_test

import (
	"bufio"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fbp-service/internal/domain"
	"github.com/couchcryptid/fbp-service/internal/fbp"
	"github.com/couchcryptid/fbp-service/internal/pipeline"
)

func TestFireBehaviorTransformer_WithFixtureObservations(t *testing.T) {
	transformer := pipeline.NewTransformer(nil, []fbp.FuelType{fbp.C2}, slog.Default())
	seen := make(map[string]bool)

	for i, raw := range readFixtureObservations(t) {
		events, err := transformer.Transform(context.Background(), raw)
		require.NoError(t, err, "line %d", i+1)
		require.NotEmpty(t, events, "line %d", i+1)

		for _, ev := range events {
			assert.False(t, seen[ev.ID], "duplicate id %s", ev.ID)
			seen[ev.ID] = true

			for name, v := range map[string]float64{
				"ros": ev.ROS, "fros": ev.FROS, "bros": ev.BROS, "hfi": ev.HFI,
				"tfc": ev.TFC, "cfb": ev.CFB, "fmc": ev.FMC, "raz": ev.RAZ,
			} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s %s = %v", ev.FuelType, name, v)
			}
			assert.GreaterOrEqual(t, ev.ROS, ev.BROS, ev.FuelType.String())
			assert.GreaterOrEqual(t, ev.CFB, 0.0)
			assert.LessOrEqual(t, ev.CFB, 1.0)
			assert.GreaterOrEqual(t, ev.RAZ, 0.0)
			assert.Less(t, ev.RAZ, 360.0)
			assert.Contains(t, []int{1, 2, 3, 4, 5, 6}, ev.IntensityClass)

			_, err := domain.SerializeFireBehaviorEvent(ev)
			require.NoError(t, err)
		}
	}
	assert.Len(t, seen, 17)
}

func readFixtureObservations(t *testing.T) []domain.RawEvent {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "observations.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	var out []domain.RawEvent
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := append([]byte(nil), sc.Bytes()...)
		if len(line) == 0 {
			continue
		}
		out = append(out, domain.RawEvent{Value: line, Topic: "fire-weather-observations", Offset: int64(len(out))})
	}
	require.NoError(t, sc.Err())
	return out
}
