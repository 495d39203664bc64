package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	models "fraud-service/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DeadLetterQueue parks stream records whose analysis failed so they can
// be inspected or replayed later.
type DeadLetterQueue struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
}

func NewDeadLetterQueue(client *redis.Client, logger *zap.Logger) *DeadLetterQueue {
	return &DeadLetterQueue{client: client, logger: logger, keyPrefix: "failed-tx:"}
}

// Send stores each failed record under "failed-tx:{record key}". Storage
// problems are logged and skipped; the DLQ never propagates errors back
// into the poll loop.
func (r *DeadLetterQueue) Send(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	successCount := 0
	for _, record := range records {
		jsonData, err := json.Marshal(record)
		if err != nil {
			r.logger.Error("failed to marshal record", zap.Error(err))
			continue
		}

		key := fmt.Sprintf("%s%s", r.keyPrefix, record.Key)
		if err = r.client.Set(ctx, key, jsonData, 0).Err(); err != nil {
			r.logger.Error("failed to store record", zap.String("key", key), zap.Error(err))
			continue
		}
		successCount++
	}

	if successCount > 0 {
		r.logger.Info("parked failed records", zap.Int("count", successCount))
	}

	return nil
}
