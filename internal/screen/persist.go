package screen

import (
	"context"
	"encoding/json"

	"github.com/i474232898/weather-screen/internal/store"
	"github.com/i474232898/weather-screen/internal/weather"
)

// Store failures are logged and otherwise treated as an absent value.

func (c *Controller) saveJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("encode for store failed", "key", key, "err", err)
		return
	}
	if err := c.store.Set(ctx, key, string(data)); err != nil {
		c.logger.Error("store write failed", "key", key, "err", err)
		c.metrics.RecordStoreError("set")
	}
}

func (c *Controller) loadJSON(ctx context.Context, key string, v any) bool {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Error("store read failed", "key", key, "err", err)
		c.metrics.RecordStoreError("get")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		c.logger.Warn("stored value is not decodable, ignoring it", "key", key, "err", err)
		c.metrics.RecordStoreError("decode")
		return false
	}
	return true
}

func (c *Controller) saveLocation(ctx context.Context, loc weather.Location) {
	c.saveJSON(ctx, store.KeyLastLocation, loc)
}

func (c *Controller) saveWeather(ctx context.Context, snap *weather.Snapshot) {
	c.saveJSON(ctx, store.KeyLastWeather, snap)
}

// lastLocation returns the persisted location, or nil when absent or unreadable.
func (c *Controller) lastLocation(ctx context.Context) *weather.Location {
	var loc weather.Location
	if !c.loadJSON(ctx, store.KeyLastLocation, &loc) || loc.Name == "" {
		return nil
	}
	return &loc
}

// lastWeather returns the persisted snapshot when it is still displayable.
func (c *Controller) lastWeather(ctx context.Context) *weather.Snapshot {
	var snap weather.Snapshot
	if !c.loadJSON(ctx, store.KeyLastWeather, &snap) || !snap.Valid() {
		return nil
	}
	return &snap
}
