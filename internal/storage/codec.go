package storage

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Harissh-lab/arm-scout/pkg/e"
)

// SchemaVersion is written into every envelope. Payloads with another
// version are refused rather than half-decoded.
const SchemaVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Kind    string          `json:"kind"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

func Encode(kind string, v any) ([]byte, error) {
	const op = "storage.Encode"

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b, err := json.Marshal(envelope{
		Version: SchemaVersion,
		Kind:    kind,
		SavedAt: time.Now().UTC(),
		Data:    data,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// Decode unpacks an envelope written by Encode into dst.
func Decode(kind string, b []byte, dst any) error {
	const op = "storage.Decode"

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("%s: %v: %w", op, err, e.ErrCorruptPayload)
	}
	if env.Version != SchemaVersion {
		return fmt.Errorf("%s: version %d: %w", op, env.Version, e.ErrUnsupportedVersion)
	}
	if env.Kind != kind {
		return fmt.Errorf("%s: kind %q, want %q: %w", op, env.Kind, kind, e.ErrCorruptPayload)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%s: empty data: %w", op, e.ErrCorruptPayload)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("%s: %v: %w", op, err, e.ErrCorruptPayload)
	}
	return nil
}
