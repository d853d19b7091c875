// Package persist saves and restores the scene through a key-value store.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"citymap/internal/config"
	"citymap/internal/logging"
	"citymap/internal/scene"
	"citymap/internal/store"
)

// ErrDeserialize marks stored or pasted data that is not a valid object list.
var ErrDeserialize = errors.New("persist: malformed scene data")

const contentType = "application/json"

// Gateway reads and writes the plan under a single key.
type Gateway struct {
	store  store.Store
	key    string
	logger *slog.Logger
}

// New returns a gateway over s. An empty key means the default key.
func New(s store.Store, key string, logger *slog.Logger) *Gateway {
	if key == "" {
		key = config.DefaultStorageKey
	}
	return &Gateway{store: s, key: key, logger: logging.OrNop(logger)}
}

// Key is the storage key the plan lives under.
func (g *Gateway) Key() string { return g.key }

// Save writes the full object list, ignoring filters.
func (g *Gateway) Save(ctx context.Context, objs []scene.Object) error {
	data, err := Encode(objs)
	if err != nil {
		return err
	}
	info, err := g.store.Put(ctx, g.key, bytes.NewReader(data), store.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"objects": fmt.Sprint(len(objs))},
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", g.key, err)
	}
	g.logger.Info("plan saved", "key", g.key, "objects", len(objs), "bytes", info.Size, "driver", g.store.Driver())
	return nil
}

// Load returns the stored objects. A missing key or malformed payload yields
// an empty list; failures are logged, never returned.
func (g *Gateway) Load(ctx context.Context) []scene.Object {
	objs, err := g.load(ctx)
	switch {
	case err == nil:
		return objs
	case errors.Is(err, store.ErrNotFound):
		g.logger.Debug("no saved plan", "key", g.key)
	default:
		g.logger.Error("load plan failed, starting empty", "key", g.key, "err", err)
	}
	return []scene.Object{}
}

func (g *Gateway) load(ctx context.Context) ([]scene.Object, error) {
	_, rc, err := g.store.Get(ctx, g.key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", g.key, err)
	}
	return Decode(data)
}

// Encode renders objects as the persisted JSON array.
func Encode(objs []scene.Object) ([]byte, error) {
	if objs == nil {
		objs = []scene.Object{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return data, nil
}

// Decode parses a persisted JSON array. Unknown types, duplicate ids and
// non-positive sizes are rejected with ErrDeserialize.
func Decode(data []byte) ([]scene.Object, error) {
	var objs []scene.Object
	if err := json.Unmarshal(bytes.TrimSpace(data), &objs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	seen := make(map[int64]struct{}, len(objs))
	for i, o := range objs {
		if !o.Type.Valid() {
			return nil, fmt.Errorf("%w: object %d has unknown type %q", ErrDeserialize, i, string(o.Type))
		}
		if _, dup := seen[o.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrDeserialize, o.ID)
		}
		seen[o.ID] = struct{}{}
		if o.Size <= 0 {
			return nil, fmt.Errorf("%w: object %d has size %v", ErrDeserialize, o.ID, o.Size)
		}
	}
	if objs == nil {
		objs = []scene.Object{}
	}
	return objs, nil
}
