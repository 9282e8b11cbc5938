package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/fbp-service/internal/domain"
	"github.com/couchcryptid/fbp-service/internal/fbp"
	"github.com/couchcryptid/fbp-service/internal/observability"
	"github.com/couchcryptid/fbp-service/internal/pipeline"
)

// --- mocks ---

// mockExtractor serves its events as one batch, then blocks until the
// context is cancelled to simulate waiting for messages.
type mockExtractor struct {
	events []domain.RawEvent
	served atomic.Bool
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	if len(m.events) > 0 && !m.served.Swap(true) {
		if len(m.events) > batchSize {
			return m.events[:batchSize], nil
		}
		return m.events, nil
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawEvent) ([]domain.FireBehaviorEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.FireBehaviorEvent{
		{ID: string(raw.Key) + "-C2", FuelType: fbp.C2, FireType: fbp.CrownFire, HFI: 12000},
		{ID: string(raw.Key) + "-D1", FuelType: fbp.D1, FireType: fbp.SurfaceFire, HFI: 900},
	}, nil
}

// keyedTransformer fails for the listed message keys and succeeds otherwise.
type keyedTransformer struct {
	fail map[string]bool
}

func (m *keyedTransformer) Transform(ctx context.Context, raw domain.RawEvent) ([]domain.FireBehaviorEvent, error) {
	if m.fail[string(raw.Key)] {
		return nil, errors.New("parse observation: bad json")
	}
	return (&mockTransformer{}).Transform(ctx, raw)
}

type mockLoader struct {
	loaded []domain.FireBehaviorEvent
	err    error
	calls  int
}

func (m *mockLoader) LoadBatch(_ context.Context, events []domain.FireBehaviorEvent) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, events...)
	return nil
}

func newTestMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

func runFor(t *testing.T, p *pipeline.Pipeline, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	require.NoError(t, p.Run(ctx))
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	ext := &mockExtractor{events: []domain.RawEvent{{Key: []byte("obs-1")}, {Key: []byte("obs-2")}}}
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, &mockTransformer{}, ldr, slog.Default(), metrics, 10)
	require.Error(t, p.CheckReadiness(context.Background()))

	runFor(t, p, 300*time.Millisecond)

	require.Len(t, ldr.loaded, 4)
	assert.Equal(t, "obs-1-C2", ldr.loaded[0].ID)
	assert.Equal(t, 1, ldr.calls, "one load per batch")
	require.NoError(t, p.CheckReadiness(context.Background()))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.MessagesConsumed))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.PredictionsEmitted))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.PredictionsByFireType.WithLabelValues("crown")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.PipelineRunning))
}

func TestPipeline_Run_RespectsBatchSize(t *testing.T) {
	ext := &mockExtractor{events: []domain.RawEvent{{Key: []byte("a")}, {Key: []byte("b")}, {Key: []byte("c")}}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 2)
	runFor(t, p, 200*time.Millisecond)

	assert.Len(t, ldr.loaded, 4)
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ldr := &mockLoader{}
	p := pipeline.New(&mockExtractor{}, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	assert.Empty(t, ldr.loaded)
}

func TestPipeline_Run_TransformErrorSkipsAndCommits(t *testing.T) {
	var commits atomic.Int32
	raw := domain.RawEvent{Key: []byte("obs-bad"), Commit: func(context.Context) error {
		commits.Add(1)
		return nil
	}}

	tests := []struct {
		name           string
		err            error
		wantTransform  float64
		wantValidation float64
	}{
		{"parse failure", errors.New("parse observation: bad json"), 1, 0},
		{"validation failure", &fbp.ValidationError{Field: "ffmc", Value: 120, Reason: "must be <= 101"}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits.Store(0)
			ldr := &mockLoader{}
			metrics := newTestMetrics()
			p := pipeline.New(&mockExtractor{events: []domain.RawEvent{raw}}, &mockTransformer{err: tt.err}, ldr, slog.Default(), metrics, 10)

			runFor(t, p, 200*time.Millisecond)

			assert.Empty(t, ldr.loaded)
			assert.Equal(t, 0, ldr.calls)
			assert.Equal(t, int32(1), commits.Load(), "bad messages are committed")
			assert.Error(t, p.CheckReadiness(context.Background()))
			assert.Equal(t, tt.wantTransform, testutil.ToFloat64(metrics.TransformErrors))
			assert.Equal(t, tt.wantValidation, testutil.ToFloat64(metrics.ValidationErrors))
		})
	}
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	committed := false
	raw := domain.RawEvent{Key: []byte("obs-5"), Topic: "fire-weather-observations", Commit: func(context.Context) error {
		committed = true
		return nil
	}}

	p := pipeline.New(&mockExtractor{events: []domain.RawEvent{raw}}, &mockTransformer{}, &mockLoader{}, slog.Default(), newTestMetrics(), 10)
	runFor(t, p, 200*time.Millisecond)

	assert.True(t, committed)
}

func TestPipeline_Run_LoadFailureLeavesOffsetsUncommitted(t *testing.T) {
	committed := false
	raw := domain.RawEvent{Key: []byte("obs-6"), Commit: func(context.Context) error {
		committed = true
		return nil
	}}
	ldr := &mockLoader{err: errors.New("broker unavailable")}

	p := pipeline.New(&mockExtractor{events: []domain.RawEvent{raw}}, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 10)
	runFor(t, p, 300*time.Millisecond)

	assert.Equal(t, 1, ldr.calls)
	assert.False(t, committed)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_SkippedMessagesCommitWithBatch(t *testing.T) {
	tests := []struct {
		name        string
		loadErr     error
		wantCommits []string
	}{
		{"load succeeds", nil, []string{"obs-7", "obs-bad", "obs-8"}},
		{"load fails", errors.New("broker unavailable"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var commits []string
			raw := func(key string, offset int64) domain.RawEvent {
				return domain.RawEvent{Key: []byte(key), Offset: offset, Commit: func(context.Context) error {
					commits = append(commits, key)
					return nil
				}}
			}
			ext := &mockExtractor{events: []domain.RawEvent{raw("obs-7", 7), raw("obs-bad", 8), raw("obs-8", 9)}}
			ldr := &mockLoader{err: tt.loadErr}
			tr := &keyedTransformer{fail: map[string]bool{"obs-bad": true}}

			p := pipeline.New(ext, tr, ldr, slog.Default(), newTestMetrics(), 10)
			runFor(t, p, 300*time.Millisecond)

			assert.Equal(t, 1, ldr.calls)
			assert.Equal(t, tt.wantCommits, commits)
		})
	}
}

func TestFireBehaviorTransformer_Transform(t *testing.T) {
	raw := makeRawObservation(t, map[string]any{
		"station_id":     "BC-0117",
		"observed_at":    "2024-07-07T21:00:00Z",
		"lat":            37,
		"lon":            -122,
		"wind_speed":     35,
		"wind_direction": 45,
		"slope":          10,
		"aspect":         90,
		"ffmc":           92.8856172635374,
		"bui":            67.3999378033527,
		"isi":            37.64953502241533,
	})

	tfm := pipeline.NewTransformer(nil, []fbp.FuelType{fbp.C2, fbp.O1a}, slog.Default())
	events, err := tfm.Transform(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, fbp.C2, events[0].FuelType)
	assert.InDelta(t, 59.02036259012382, events[0].ROS, 1e-9)
	assert.Equal(t, fbp.CrownFire, events[0].FireType)
	assert.Equal(t, fbp.O1a, events[1].FuelType)
	assert.Equal(t, fbp.SurfaceFire, events[1].FireType)
	assert.Equal(t, domain.ElevationNone, events[0].ElevationSource)
}

func TestFireBehaviorTransformer_RejectsInvalidObservation(t *testing.T) {
	raw := makeRawObservation(t, map[string]any{
		"observed_at":     "2024-07-07T21:00:00Z",
		"lat":             137,
		"ffmc":            92,
		"bui":             60,
		"percent_conifer": 140,
	})

	tfm := pipeline.NewTransformer(nil, []fbp.FuelType{fbp.C2}, slog.Default())
	_, err := tfm.Transform(context.Background(), raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate observation")
	assert.Len(t, fbp.ValidationErrors(err), 2)
}

type fixedElevation float64

func (f fixedElevation) Elevation(context.Context, float64, float64) (float64, bool, error) {
	return float64(f), true, nil
}

func TestFireBehaviorTransformer_EnrichesElevation(t *testing.T) {
	obs := domain.Observation{
		ObservedAt: time.Date(2024, 5, 29, 18, 0, 0, 0, time.UTC),
		Lat:        50,
		Lon:        -115,
		WindSpeed:  20,
		FFMC:       90,
		BUI:        ptr(60.0),
	}

	tfm := pipeline.NewTransformer(fixedElevation(1000), []fbp.FuelType{fbp.C2}, slog.Default())
	events, err := tfm.Evaluate(context.Background(), obs)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.ElevationMapbox, events[0].ElevationSource)
	assert.InDelta(t, 104.8488, events[0].FMC, 1e-9)
}

// --- helpers ---

func ptr[T any](v T) *T { return &v }

func makeRawObservation(t *testing.T, fields map[string]any) domain.RawEvent {
	t.Helper()
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	return domain.RawEvent{Value: data}
}
