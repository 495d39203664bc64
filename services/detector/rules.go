package detector

import (
	// Go Internal Packages
	"context"
	"fmt"
	"math"
	"time"

	// Local Packages
	errors "fraud-service/errors"
	models "fraud-service/models"
)

// Placeholder until a real geolocation provider is wired in.
var usualLocations = []string{"Lagos", "Abuja"}

// checkVelocity counts the user's entries in the trailing hour relative
// to now (not the transaction's own timestamp).
func (d *Detector) checkVelocity(ctx context.Context, tx models.Transaction, now time.Time) (*models.Alert, error) {
	recent, err := d.history.RecentTransactions(ctx, tx.FromUser, now.Add(-time.Hour), now)
	if err != nil {
		return nil, err
	}

	count := len(recent)
	if count <= d.thresholds.VelocityCount {
		return nil, nil
	}

	severity := models.SeverityMedium
	if count > d.thresholds.VelocityHighCount {
		severity = models.SeverityHigh
	}
	return &models.Alert{
		Type:        models.AlertVelocity,
		Severity:    severity,
		Description: fmt.Sprintf("High transaction velocity: %d in the last hour", count),
		Metadata: map[string]any{
			"transaction_count": count,
			"threshold":         d.thresholds.VelocityCount,
		},
	}, nil
}

// checkAmount compares the amount against the user's pre-transaction
// running average, or against the absolute threshold when no average has
// been stored yet. Exactly one of the two branches can fire.
func (d *Detector) checkAmount(tx models.Transaction, avg float64, avgFound bool) *models.Alert {
	amount := tx.Amount

	if avgFound && avg > 0 {
		if amount <= avg*d.thresholds.AverageMultiplier {
			return nil
		}
		severity := models.SeverityMedium
		if amount > avg*d.thresholds.HighMultiplier {
			severity = models.SeverityHigh
		}
		return &models.Alert{
			Type:        models.AlertAmount,
			Severity:    severity,
			Description: fmt.Sprintf("Transaction amount $%.2f significantly higher than average $%.2f", amount, avg),
			Metadata: map[string]any{
				"amount":     amount,
				"average":    avg,
				"multiplier": amount / avg,
			},
		}
	}

	if amount > d.thresholds.AbsoluteAmount {
		return &models.Alert{
			Type:        models.AlertAmount,
			Severity:    models.SeverityMedium,
			Description: fmt.Sprintf("Large transaction amount: $%.2f", amount),
			Metadata: map[string]any{
				"amount":    amount,
				"threshold": d.thresholds.AbsoluteAmount,
			},
		}
	}
	return nil
}

// checkLocation is a randomized stub standing in for a real geolocation
// provider: when a location is present it flags with fixed probability,
// independent of any geographic comparison.
func (d *Detector) checkLocation(tx models.Transaction) *models.Alert {
	if tx.Location == "" {
		return nil
	}
	if d.rng.Float64() > 1-d.thresholds.LocationAnomalyProbability {
		return &models.Alert{
			Type:        models.AlertLocation,
			Severity:    models.SeverityMedium,
			Description: "Transaction from unusual location",
			Metadata: map[string]any{
				"current_location": tx.Location,
				"usual_locations":  usualLocations,
			},
		}
	}
	return nil
}

// checkPattern runs two sub-checks, first match wins: round amounts
// (possible automation), then off-hours against the transaction's own
// timestamp.
func (d *Detector) checkPattern(tx models.Transaction, now time.Time) (*models.Alert, error) {
	amount := tx.Amount

	if amount > 100 && math.Mod(amount, 100) == 0 {
		return &models.Alert{
			Type:        models.AlertPattern,
			Severity:    models.SeverityLow,
			Description: "Round number transaction amount may indicate automation",
			Metadata: map[string]any{
				"amount":       amount,
				"pattern_type": models.PatternRoundAmount,
			},
		}, nil
	}

	ts, err := tx.Time(now)
	if err != nil {
		return nil, errors.E(errors.Internal, "parse transaction timestamp", err)
	}
	if hour := ts.Hour(); hour < 6 || hour > 22 {
		return &models.Alert{
			Type:        models.AlertPattern,
			Severity:    models.SeverityLow,
			Description: "Transaction during unusual hours",
			Metadata: map[string]any{
				"hour":         hour,
				"pattern_type": models.PatternUnusualTime,
			},
		}, nil
	}
	return nil, nil
}
