package detector

import (
	// Go Internal Packages
	"context"
	"math/rand"
	"time"

	// Local Packages
	models "fraud-service/models"

	// External Packages
	"go.uber.org/zap"
)

// Points each rule contributes when it fires. The total is clamped to
// [0, maxRiskScore].
const (
	velocityPoints = 30
	amountPoints   = 25
	locationPoints = 20
	patternPoints  = 15

	maxRiskScore = 100
)

// Sources recorded on archived analyses.
const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

type HistoryRepository interface {
	Record(ctx context.Context, userID string, tx models.Transaction, now time.Time) error
	RecentTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error)
	Count(ctx context.Context, userID string) (int64, error)
	GetAverage(ctx context.Context, userID string) (avg float64, found bool, err error)
	SetAverage(ctx context.Context, userID string, value float64) error
}

type ArchiveRepository interface {
	InsertAnalysis(ctx context.Context, rec models.AnalysisRecord) error
}

// Rand is the randomness source behind the location stub and the
// risk-score jitter. *rand.Rand satisfies it; tests inject a fixed one.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Thresholds tune the rules. Owned by the detector, passed at
// construction.
type Thresholds struct {
	VelocityCount              int     // alert above this many tx per hour
	VelocityHighCount          int     // high severity above this
	AbsoluteAmount             float64 // fallback when no average exists
	AverageMultiplier          float64 // alert above avg * this
	HighMultiplier             float64 // high severity above avg * this
	LocationAnomalyProbability float64 // stub draw probability
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		VelocityCount:              10,
		VelocityHighCount:          15,
		AbsoluteAmount:             1000,
		AverageMultiplier:          5,
		HighMultiplier:             10,
		LocationAnomalyProbability: 0.2,
	}
}

// Detector runs the heuristic scoring pipeline over the history store.
type Detector struct {
	logger     *zap.Logger
	history    HistoryRepository
	archive    ArchiveRepository // nil disables archiving
	thresholds Thresholds
	rng        Rand
	now        func() time.Time
}

// Option configures the detector.
type Option func(*Detector)

// WithArchive enables best-effort archiving of completed analyses.
func WithArchive(archive ArchiveRepository) Option {
	return func(d *Detector) { d.archive = archive }
}

// WithRand replaces the randomness source (for deterministic tests).
func WithRand(rng Rand) Option {
	return func(d *Detector) { d.rng = rng }
}

// WithClock replaces the wall clock (for deterministic tests).
func WithClock(now func() time.Time) Option {
	return func(d *Detector) { d.now = now }
}

func New(logger *zap.Logger, history HistoryRepository, thresholds Thresholds, opts ...Option) *Detector {
	d := &Detector{
		logger:     logger,
		history:    history,
		thresholds: thresholds,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Analyze records the transaction into the user's history, updates the
// running average and evaluates the rules in fixed order. Recording
// happens before scoring, so the velocity window includes the entry just
// written; the amount rule still compares against the pre-transaction
// average read up front. Any history store failure fails the whole call.
func (d *Detector) Analyze(ctx context.Context, tx models.Transaction, source string) (models.AnalysisResult, error) {
	now := d.now()

	var (
		avg      float64
		avgFound bool
	)
	if tx.FromUser != "" {
		var err error
		avg, avgFound, err = d.history.GetAverage(ctx, tx.FromUser)
		if err != nil {
			return models.AnalysisResult{}, err
		}

		if err = d.history.Record(ctx, tx.FromUser, tx, now); err != nil {
			return models.AnalysisResult{}, err
		}

		// Decayed average, not a true mean: each update halves the weight
		// of everything before it. The alert multipliers are calibrated
		// against this formula.
		newAvg := tx.Amount
		if avgFound {
			newAvg = (avg + tx.Amount) / 2
		}
		if err = d.history.SetAverage(ctx, tx.FromUser, newAvg); err != nil {
			return models.AnalysisResult{}, err
		}
	}

	alerts := make([]models.Alert, 0, 4)
	score := 0

	velocityAlert, err := d.checkVelocity(ctx, tx, now)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	if velocityAlert != nil {
		alerts = append(alerts, *velocityAlert)
		score += velocityPoints
	}

	if alert := d.checkAmount(tx, avg, avgFound); alert != nil {
		alerts = append(alerts, *alert)
		score += amountPoints
	}

	if alert := d.checkLocation(tx); alert != nil {
		alerts = append(alerts, *alert)
		score += locationPoints
	}

	patternAlert, err := d.checkPattern(tx, now)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	if patternAlert != nil {
		alerts = append(alerts, *patternAlert)
		score += patternPoints
	}

	if score > maxRiskScore {
		score = maxRiskScore
	}

	result := models.AnalysisResult{
		RiskScore: score,
		Alerts:    alerts,
		Timestamp: now.Format(time.RFC3339),
	}

	d.archiveResult(ctx, tx, result, source, now)
	return result, nil
}

// UserRiskScore is the cruder on-demand score for a user: activity count
// doubled and capped at 50, plus a random jitter in [0, 20).
func (d *Detector) UserRiskScore(ctx context.Context, userID string) (models.UserRiskScore, error) {
	count, err := d.history.Count(ctx, userID)
	if err != nil {
		return models.UserRiskScore{}, err
	}

	base := int(count) * 2
	if base > 50 {
		base = 50
	}

	score := base + d.rng.Intn(20)
	if score > maxRiskScore {
		score = maxRiskScore
	}

	return models.UserRiskScore{
		UserID:    userID,
		RiskScore: score,
		Factors: models.RiskFactors{
			TransactionFrequency: count,
			BaseScore:            base,
		},
	}, nil
}

// archiveResult writes the audit copy. Best-effort: a lost record is
// logged, never surfaced to the caller.
func (d *Detector) archiveResult(ctx context.Context, tx models.Transaction, result models.AnalysisResult, source string, now time.Time) {
	if d.archive == nil {
		return
	}

	rec := models.AnalysisRecord{
		UserID:    tx.FromUser,
		RiskScore: result.RiskScore,
		Alerts:    result.Alerts,
		Amount:    tx.Amount,
		Source:    source,
		Timestamp: now,
	}
	if err := d.archive.InsertAnalysis(ctx, rec); err != nil {
		d.logger.Warn("failed to archive analysis",
			zap.String("user", tx.FromUser), zap.Error(err))
	}
}
