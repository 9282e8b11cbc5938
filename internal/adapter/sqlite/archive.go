package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/fbp-service/internal/domain"
	"github.com/couchcryptid/fbp-service/internal/observability"
)

// DefaultListLimit caps ListByStation when the caller passes no limit.
const DefaultListLimit = 100

// Archive stores predictions in SQLite. It implements pipeline.BatchLoader.
type Archive struct {
	db      *sql.DB
	metrics *observability.Metrics
}

// NewArchive creates an Archive on an opened database. metrics may be nil.
func NewArchive(db *sql.DB, metrics *observability.Metrics) *Archive {
	return &Archive{db: db, metrics: metrics}
}

// LoadBatch inserts predictions in one transaction. Rows whose ID is already
// archived are ignored, so replayed batches are harmless.
func (a *Archive) LoadBatch(ctx context.Context, events []domain.FireBehaviorEvent) error {
	if len(events) == 0 {
		return nil
	}
	err := a.insertBatch(ctx, events)
	a.observe(err)
	return err
}

func (a *Archive) insertBatch(ctx context.Context, events []domain.FireBehaviorEvent) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting archive transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO fire_behavior_predictions
		(id, station_id, observed_at, time_bucket, lat, lon, fuel_type, fire_type,
		 intensity_class, ros, hfi, cfb, payload, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing prediction insert: %w", err)
	}
	defer stmt.Close()

	for i := range events {
		ev := &events[i]
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encoding prediction %s: %w", ev.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			ev.ID,
			ev.StationID,
			formatTime(ev.ObservedAt),
			formatTime(ev.TimeBucket),
			ev.Lat,
			ev.Lon,
			ev.FuelType.String(),
			string(ev.FireType),
			ev.IntensityClass,
			ev.ROS,
			ev.HFI,
			ev.CFB,
			string(payload),
			formatTime(ev.ProcessedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting prediction %s: %w", ev.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive transaction: %w", err)
	}
	return nil
}

// ListByStation returns a station's archived predictions, newest observation
// first. A non-positive limit means DefaultListLimit.
func (a *Archive) ListByStation(ctx context.Context, stationID string, limit int) ([]domain.FireBehaviorEvent, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := a.db.QueryContext(ctx, `SELECT payload FROM fire_behavior_predictions
		WHERE station_id = ?
		ORDER BY observed_at DESC, fuel_type
		LIMIT ?`, stationID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing predictions by station: %w", err)
	}
	defer rows.Close()

	out := []domain.FireBehaviorEvent{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		var ev domain.FireBehaviorEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("decoding prediction: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating predictions: %w", err)
	}
	return out, nil
}

// CheckReadiness reports whether the archive database is reachable.
func (a *Archive) CheckReadiness(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging archive: %w", err)
	}
	return nil
}

func (a *Archive) observe(err error) {
	if a.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	a.metrics.ArchiveWrites.WithLabelValues(outcome).Inc()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
