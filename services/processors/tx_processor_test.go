package processors

import (
	// Go Internal Packages
	"context"
	"errors"
	"testing"

	// Local Packages
	models "fraud-service/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAnalyzer struct {
	calls []models.Transaction
	score int
	err   error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, tx models.Transaction, _ string) (models.AnalysisResult, error) {
	f.calls = append(f.calls, tx)
	if f.err != nil {
		return models.AnalysisResult{}, f.err
	}
	return models.AnalysisResult{RiskScore: f.score}, nil
}

type fakeDLQ struct {
	sent []models.Record
}

func (f *fakeDLQ) Send(_ context.Context, records []models.Record) error {
	f.sent = append(f.sent, records...)
	return nil
}

func record(key, payload string) models.Record {
	return models.Record{Key: []byte(key), Value: []byte(payload), Topic: "transactions"}
}

func TestProcessRecordsAnalyzesBatch(t *testing.T) {
	analyzer := &fakeAnalyzer{score: 15}
	dlq := &fakeDLQ{}
	p := NewTxProcessor(zap.NewNop(), analyzer, dlq)

	records := []models.Record{
		record("tx-1", `{"fromUser":"alice","amount":300}`),
		record("tx-2", `{"fromUser":"bob","amount":50}`),
	}
	err := p.ProcessRecords(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, analyzer.calls, 2)
	assert.Equal(t, "alice", analyzer.calls[0].FromUser)
	assert.Empty(t, dlq.sent)
}

func TestProcessRecordsParksBadPayloads(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	dlq := &fakeDLQ{}
	p := NewTxProcessor(zap.NewNop(), analyzer, dlq)

	records := []models.Record{
		record("tx-1", `not json`),
		record("tx-2", `{"fromUser":"bob","amount":50}`),
	}
	err := p.ProcessRecords(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, analyzer.calls, 1)
	require.Len(t, dlq.sent, 1)
	assert.Equal(t, []byte("tx-1"), dlq.sent[0].Key)
}

func TestProcessRecordsParksFailedAnalyses(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("redis down")}
	dlq := &fakeDLQ{}
	p := NewTxProcessor(zap.NewNop(), analyzer, dlq)

	err := p.ProcessRecords(context.Background(), []models.Record{
		record("tx-1", `{"fromUser":"alice","amount":300}`),
	})
	require.NoError(t, err)
	require.Len(t, dlq.sent, 1)
}

func TestProcessRecordsEmptyBatch(t *testing.T) {
	p := NewTxProcessor(zap.NewNop(), &fakeAnalyzer{}, &fakeDLQ{})
	require.NoError(t, p.ProcessRecords(context.Background(), nil))
}
