// Package cache provides a small Redis-backed cache for availability slot
// responses. Entries live for a short TTL only; booking writes never depend
// on it for correctness.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"deskhive/internal/utils"
)

const slotTTL = 60 * time.Second

type SlotCache struct {
	client *redis.Client
}

// New connects to Redis at addr. An empty addr disables caching by returning
// nil; the services treat a nil cache as a no-op.
func New(addr, password string) *SlotCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("WARN: redis unavailable at %s, slot caching disabled: %v", addr, err)
		return nil
	}
	return &SlotCache{client: client}
}

func (c *SlotCache) GetSlots(ctx context.Context, key string) ([]utils.TimeSlot, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var slots []utils.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) SetSlots(ctx context.Context, key string, slots []utils.TimeSlot) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, slotTTL).Err(); err != nil {
		log.Printf("WARN: failed to cache slots for %s: %v", key, err)
	}
}
