package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"strconv"
	"time"

	// Local Packages
	errors "fraud-service/errors"
	models "fraud-service/models"

	// External Packages
	"github.com/redis/go-redis/v9"
)

const (
	historyKeyPrefix = "user_transactions:"
	averageKeyPrefix = "user_avg_amount:"

	// Expiry is delegated entirely to redis; the service never prunes.
	historyTTL = 24 * time.Hour
	averageTTL = 30 * 24 * time.Hour
)

// HistoryRepository is the per-user sliding-window transaction log plus
// the running average scalar. Entries live in a sorted set scored by
// epoch seconds with a collection-level TTL refreshed on every write.
type HistoryRepository struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

func historyKey(userID string) string { return historyKeyPrefix + userID }
func averageKey(userID string) string { return averageKeyPrefix + userID }

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func formatScore(t time.Time) string {
	return strconv.FormatFloat(epochSeconds(t), 'f', -1, 64)
}

// Record appends the serialized transaction to the user's history scored
// by now and refreshes the 24h window expiry.
func (r *HistoryRepository) Record(ctx context.Context, userID string, tx models.Transaction, now time.Time) error {
	payload, err := json.Marshal(tx)
	if err != nil {
		return errors.E(errors.Internal, "marshal history entry", err)
	}

	key := historyKey(userID)
	entry := redis.Z{Score: epochSeconds(now), Member: payload}
	if err := r.client.ZAdd(ctx, key, entry).Err(); err != nil {
		return errors.StoreErr("zadd", err)
	}
	if err := r.client.Expire(ctx, key, historyTTL).Err(); err != nil {
		return errors.StoreErr("expire", err)
	}
	return nil
}

// RecentTransactions returns the user's entries scored within [from, to],
// both bounds inclusive.
func (r *HistoryRepository) RecentTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	members, err := r.client.ZRangeByScore(ctx, historyKey(userID), &redis.ZRangeBy{
		Min: formatScore(from),
		Max: formatScore(to),
	}).Result()
	if err != nil {
		return nil, errors.StoreErr("zrangebyscore", err)
	}

	txs := make([]models.Transaction, 0, len(members))
	for _, member := range members {
		var tx models.Transaction
		if err := json.Unmarshal([]byte(member), &tx); err != nil {
			return nil, errors.E(errors.Unavailable, "malformed history entry", err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Count returns the total entries currently held for the user, bounded by
// the 24h TTL.
func (r *HistoryRepository) Count(ctx context.Context, userID string) (int64, error) {
	n, err := r.client.ZCard(ctx, historyKey(userID)).Result()
	if err != nil {
		return 0, errors.StoreErr("zcard", err)
	}
	return n, nil
}

// GetAverage reads the user's running average. found is false when no
// average has been stored yet.
func (r *HistoryRepository) GetAverage(ctx context.Context, userID string) (avg float64, found bool, err error) {
	raw, err := r.client.Get(ctx, averageKey(userID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.StoreErr("get", err)
	}

	avg, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, errors.E(errors.Unavailable, "malformed stored average", err)
	}
	return avg, true, nil
}

// SetAverage persists the running average, refreshing the 30-day expiry.
func (r *HistoryRepository) SetAverage(ctx context.Context, userID string, value float64) error {
	raw := strconv.FormatFloat(value, 'f', -1, 64)
	if err := r.client.Set(ctx, averageKey(userID), raw, averageTTL).Err(); err != nil {
		return errors.StoreErr("set", err)
	}
	return nil
}
