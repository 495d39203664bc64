package models

import (
	// Go Internal Packages
	"time"
)

// Alert types, one per rule.
const (
	AlertVelocity = "velocity"
	AlertAmount   = "amount"
	AlertLocation = "location"
	AlertPattern  = "pattern"
)

// Alert severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Pattern sub-types carried in alert metadata.
const (
	PatternRoundAmount = "round_amount"
	PatternUnusualTime = "unusual_time"
)

// Alert is a single rule's flagged anomaly. Alerts are produced fresh per
// analysis and never stored on their own.
type Alert struct {
	Type        string         `json:"type" bson:"type"`
	Severity    string         `json:"severity" bson:"severity"`
	Description string         `json:"description" bson:"description"`
	Metadata    map[string]any `json:"metadata" bson:"metadata"`
}

// AnalysisResult is the scoring outcome for one transaction. Alerts keep
// rule-evaluation order: velocity, amount, location, pattern.
type AnalysisResult struct {
	RiskScore int     `json:"risk_score"`
	Alerts    []Alert `json:"alerts"`
	Timestamp string  `json:"timestamp"`
}

// RiskFactors explains a user risk score lookup.
type RiskFactors struct {
	TransactionFrequency int64 `json:"transaction_frequency"`
	BaseScore            int   `json:"base_score"`
}

// UserRiskScore is the on-demand per-user score, cruder than a full
// analysis and not tied to any one transaction.
type UserRiskScore struct {
	UserID    string      `json:"user_id"`
	RiskScore int         `json:"risk_score"`
	Factors   RiskFactors `json:"factors"`
}

// AnalysisRecord is the audit copy of a completed analysis persisted to
// mongo. Best-effort only; losing one never fails the request.
type AnalysisRecord struct {
	UserID    string    `bson:"user_id"`
	RiskScore int       `bson:"risk_score"`
	Alerts    []Alert   `bson:"alerts"`
	Amount    float64   `bson:"amount"`
	Source    string    `bson:"source"`
	Timestamp time.Time `bson:"timestamp"`
}
