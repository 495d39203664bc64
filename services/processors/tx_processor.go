package processors

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	models "fraud-service/models"
	detector "fraud-service/services/detector"

	// External Packages
	"go.uber.org/zap"
)

// Risk scores at or above this are logged at warn on the stream path.
const highRiskScore = 50

type Analyzer interface {
	Analyze(ctx context.Context, tx models.Transaction, source string) (models.AnalysisResult, error)
}

type DeadLetterQueue interface {
	Send(ctx context.Context, records []models.Record) error
}

// TxProcessor pushes stream records through the analysis pipeline.
// Records that fail analysis are parked in the dead-letter queue.
type TxProcessor struct {
	Logger   *zap.Logger
	Detector Analyzer
	DLQueue  DeadLetterQueue
}

func NewTxProcessor(logger *zap.Logger, det Analyzer, dlq DeadLetterQueue) *TxProcessor {
	return &TxProcessor{Logger: logger, Detector: det, DLQueue: dlq}
}

// ProcessRecords analyzes each record in the batch. Unmarshal failures
// and analysis failures go to the DLQ; the batch itself never errors so
// the consumer keeps polling.
func (p *TxProcessor) ProcessRecords(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	var failed []models.Record
	for _, record := range records {
		var tx models.Transaction
		if err := json.Unmarshal(record.Value, &tx); err != nil {
			p.Logger.Error("failed to unmarshal transaction", zap.Error(err))
			failed = append(failed, record)
			continue
		}

		result, err := p.Detector.Analyze(ctx, tx, detector.SourceKafka)
		if err != nil {
			p.Logger.Error("failed to analyze transaction",
				zap.String("user", tx.FromUser), zap.Error(err))
			failed = append(failed, record)
			continue
		}

		if result.RiskScore >= highRiskScore {
			p.Logger.Warn("high risk transaction",
				zap.String("user", tx.FromUser),
				zap.Int("risk_score", result.RiskScore),
				zap.Int("alerts", len(result.Alerts)))
		}
	}

	if len(failed) > 0 {
		return p.DLQueue.Send(ctx, failed)
	}
	return nil
}
