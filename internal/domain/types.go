package domain

import "time"

type UserID string
type SessionID string

// RiskTolerance is the normalized risk classification of a user.
type RiskTolerance string

const (
	RiskConservative     RiskTolerance = "conservative"
	RiskModerate         RiskTolerance = "moderate"
	RiskAggressive       RiskTolerance = "aggressive"
	RiskReadyForAnything RiskTolerance = "ready_for_anything"
)

// TimeHorizon is the normalized investment duration classification.
type TimeHorizon string

const (
	HorizonShortTerm        TimeHorizon = "short_term"
	HorizonMediumTerm       TimeHorizon = "medium_term"
	HorizonLongTerm         TimeHorizon = "long_term"
	HorizonReadyForAnything TimeHorizon = "ready_for_anything"
)

// UserProfile is derived once at the start of a session and is never
// recomputed mid-loop.
type UserProfile struct {
	RiskTolerance RiskTolerance `json:"risk_tolerance"`
	TimeHorizon   TimeHorizon   `json:"time_horizon"`
}

// Normalize maps free-form engine output onto the enumerated domain,
// falling back to ready_for_anything for anything unrecognized.
func (p UserProfile) Normalize() UserProfile {
	switch p.RiskTolerance {
	case RiskConservative, RiskModerate, RiskAggressive:
	default:
		p.RiskTolerance = RiskReadyForAnything
	}
	switch p.TimeHorizon {
	case HorizonShortTerm, HorizonMediumTerm, HorizonLongTerm:
	default:
		p.TimeHorizon = HorizonReadyForAnything
	}
	return p
}

type Timestamp = time.Time
