// Copyright (c) 2026 TelleRecipes. All rights reserved.
// Author: mlk.kfupm@gmail.com

package recipe

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Mlk-KFUPM/tellerecipes-sub000/internal/platform/constants"
)

// RedisCounterStore implements [CounterStore] using Redis.
//
// Every counter lives under its own key so increments are single atomic
// INCR commands with no read-modify-write window.
type RedisCounterStore struct {
	client *redis.Client
}

// NewCounterStore creates a new Redis-backed CounterStore.
func NewCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// counterKey maps a counter kind to its Redis key for a recipe.
func counterKey(counter Counter, recipeID string) string {
	switch counter {
	case CounterSaves:
		return constants.RedisPrefixSaves + recipeID
	case CounterListAdds:
		return constants.RedisPrefixListAdds + recipeID
	default:
		return constants.RedisPrefixViews + recipeID
	}
}

/*
Increment bumps a counter atomically and returns the new value.

Parameters:
  - context: context.Context
  - counter: Counter (views, saves, listadds)
  - recipeID: string

Returns:
  - int64: The counter value after the increment
  - error: Execution errors
*/
func (store *RedisCounterStore) Increment(context context.Context, counter Counter, recipeID string) (int64, error) {

	value, err := store.client.Incr(context, counterKey(counter, recipeID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_counter_incr_failed: %w", err)
	}

	return value, nil
}

/*
Snapshot reads all three counters for a recipe in a single round-trip.

Description: Uses MGET; missing keys read as zero, so a recipe that was
never viewed reports an all-zero snapshot rather than an error.

Returns:
  - Engagement: Current counter values
  - error: Connectivity errors
*/
func (store *RedisCounterStore) Snapshot(context context.Context, recipeID string) (Engagement, error) {

	values, err := store.client.MGet(context,
		counterKey(CounterViews, recipeID),
		counterKey(CounterSaves, recipeID),
		counterKey(CounterListAdds, recipeID),
	).Result()
	if err != nil {
		return Engagement{}, fmt.Errorf("redis_counter_snapshot_failed: %w", err)
	}

	return Engagement{
		Views:    parseCounter(values[0]),
		Saves:    parseCounter(values[1]),
		ListAdds: parseCounter(values[2]),
	}, nil
}

/*
Purge removes all counters for a recipe.

Description: Called after a hard delete so dead keys do not accumulate.

Returns:
  - error: Deletion failures
*/
func (store *RedisCounterStore) Purge(context context.Context, recipeID string) error {

	err := store.client.Del(context,
		counterKey(CounterViews, recipeID),
		counterKey(CounterSaves, recipeID),
		counterKey(CounterListAdds, recipeID),
	).Err()
	if err != nil {
		return fmt.Errorf("redis_counter_purge_failed: %w", err)
	}

	return nil
}

// parseCounter converts an MGET result entry to an int64, treating nil and
// malformed values as zero.
func parseCounter(value any) int64 {
	s, ok := value.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
