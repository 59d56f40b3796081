package clickhouse

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/Harissh-lab/arm-scout/internal/config"
	"github.com/Harissh-lab/arm-scout/internal/domain"
)

const saveTimeout = 5 * time.Second

const detectionsTable = `
CREATE TABLE IF NOT EXISTS hazard_detections (
	detected_at  DateTime64(3, 'UTC'),
	detection_id String,
	hazard_id    String,
	type         LowCardinality(String),
	latitude     Float64,
	longitude    Float64,
	accuracy_m   Float64,
	confidence   UInt8,
	speed_mps    Float64,
	heading_deg  Float64,
	merged       Bool,
	image_url    String
) ENGINE = MergeTree()
ORDER BY (type, detected_at)
TTL toDateTime(detected_at) + INTERVAL 1 YEAR`

// Archive keeps every detection for long-term analysis. The in-process
// detection log is bounded; this table is not.
type Archive struct {
	conn   driver.Conn
	logger *slog.Logger
}

func Open(ctx context.Context, cfg config.ClickHouseConfig, logger *slog.Logger) (*Archive, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: 5 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	a := &Archive{conn: conn, logger: logger}
	if err := a.InitSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("clickhouse archive ready", slog.String("addr", cfg.Addr))
	return a, nil
}

func (a *Archive) InitSchema(ctx context.Context) error {
	if err := a.conn.Exec(ctx, detectionsTable); err != nil {
		return fmt.Errorf("failed to create hazard_detections: %w", err)
	}
	return nil
}

func (a *Archive) SaveDetection(ctx context.Context, d domain.Detection) error {
	query := `
		INSERT INTO hazard_detections (detected_at, detection_id, hazard_id, type, latitude, longitude,
			accuracy_m, confidence, speed_mps, heading_deg, merged, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	err := a.conn.Exec(ctx, query,
		d.DetectedAt,
		d.ID,
		d.HazardID,
		string(d.Type),
		d.Coordinates.Latitude,
		d.Coordinates.Longitude,
		d.AccuracyMeters,
		uint8(d.Confidence),
		d.SpeedMPS,
		d.HeadingDegrees,
		d.Merged,
		d.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert detection %s: %w", d.ID, err)
	}
	return nil
}

// CountByType returns archived detection counts per hazard type since from.
func (a *Archive) CountByType(ctx context.Context, from time.Time) (map[domain.HazardType]uint64, error) {
	rows, err := a.conn.Query(ctx, `
		SELECT type, count() FROM hazard_detections
		WHERE detected_at >= ?
		GROUP BY type`, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query detection counts: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.HazardType]uint64)
	for rows.Next() {
		var (
			t string
			n uint64
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("failed to scan detection count: %w", err)
		}
		out[domain.HazardType(t)] = n
	}
	return out, rows.Err()
}

// OnDetection is a detection subscriber that archives each event.
func (a *Archive) OnDetection(ev domain.DetectionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	return a.SaveDetection(ctx, ev.Detection)
}

func (a *Archive) Close() error {
	return a.conn.Close()
}
