package profile

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dravina/dravina-agent/internal/domain"
)

// Annualized growth-rate boundaries separating the risk classes.
const (
	conservativeCeiling = 0.15
	moderateCeiling     = 0.22
)

// NumericInputs are the figures the numeric rule needs: a savings
// target, a recurring monthly contribution and a duration in months.
type NumericInputs struct {
	Target       float64
	Contribution float64
	Months       int
}

func (n NumericInputs) Complete() bool {
	return n.Target > 0 && n.Contribution > 0 && n.Months > 0
}

// RequiredMonthlyRate back-solves the compound-growth relation
// target = contribution * (1+r)^(months+1) for the periodic rate r by
// bisection over [0, 1]. The relation is monotone in r, so the bracket
// halving converges; width tolerance 1e-9, capped at 200 iterations.
func RequiredMonthlyRate(in NumericInputs) float64 {
	grow := func(r float64) float64 {
		return in.Contribution * math.Pow(1+r, float64(in.Months+1))
	}

	if grow(0) >= in.Target {
		return 0
	}
	lo, hi := 0.0, 1.0
	if grow(hi) < in.Target {
		return hi
	}
	for i := 0; i < 200 && hi-lo > 1e-9; i++ {
		mid := (lo + hi) / 2
		if grow(mid) < in.Target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// Annualize converts a monthly rate into its annual equivalent.
func Annualize(monthly float64) float64 {
	return math.Pow(1+monthly, 12) - 1
}

// ClassifyRate maps an annualized required growth rate onto a risk class.
func ClassifyRate(annual float64) domain.RiskTolerance {
	switch {
	case annual <= conservativeCeiling:
		return domain.RiskConservative
	case annual <= moderateCeiling:
		return domain.RiskModerate
	default:
		return domain.RiskAggressive
	}
}

var (
	targetRe       = regexp.MustCompile(`(?i)(?:save|target|goal|reach|accumulate|need)\D{0,40}?([0-9][0-9,]*(?:\.[0-9]+)?)\s*(lakh|lac|crore|k)?`)
	contributionRe = regexp.MustCompile(`(?i)([0-9][0-9,]*(?:\.[0-9]+)?)\s*(lakh|lac|crore|k)?\s*(?:per month|a month|monthly|every month|each month)`)
	yearsRe        = regexp.MustCompile(`(?i)(?:in|for|over|next|within)\s+([0-9]+(?:\.[0-9]+)?)\s*(?:years?|yrs?)`)
	monthsRe       = regexp.MustCompile(`(?i)(?:in|for|over|next|within)\s+([0-9]+)\s*months?`)
)

// ParseNumericInputs pulls a target amount, a recurring contribution and
// a duration out of free text. Anything missing leaves its field zero.
func ParseNumericInputs(text string) NumericInputs {
	var in NumericInputs

	if m := contributionRe.FindStringSubmatch(text); m != nil {
		in.Contribution = parseAmount(m[1], m[2])
	}
	if m := targetRe.FindStringSubmatch(text); m != nil {
		amount := parseAmount(m[1], m[2])
		// The target must be a different figure than the contribution.
		if amount != in.Contribution {
			in.Target = amount
		}
	}
	if m := yearsRe.FindStringSubmatch(text); m != nil {
		if years, err := strconv.ParseFloat(m[1], 64); err == nil {
			in.Months = int(years * 12)
		}
	} else if m := monthsRe.FindStringSubmatch(text); m != nil {
		if months, err := strconv.Atoi(m[1]); err == nil {
			in.Months = months
		}
	}
	return in
}

func parseAmount(number, unit string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(unit) {
	case "k":
		v *= 1_000
	case "lakh", "lac":
		v *= 100_000
	case "crore":
		v *= 10_000_000
	}
	return v
}

var (
	conservativeCues = []string{"worried", "worry", "afraid", "scared", "losing", "lose money", "safe", "safety", "not sure about risk", "don't know if", "dont know if", "protect"}
	aggressiveCues   = []string{"aggressive", "maximize", "maximise", "as soon as possible", "asap", "high growth", "quick", "fast", "double my"}
	moderateCues     = []string{"steady", "balanced", "stable", "moderate", "consistent"}

	longCues  = []string{"retirement", "retire", "long term", "decade"}
	shortCues = []string{"immediate", "immediately", "as soon as possible", "asap", "short term", "right away", "urgent"}
)

// Classify derives a profile from free text without any engine call.
// Numeric inputs take precedence; lexical cues decide otherwise. The
// same input always yields the same profile.
func Classify(text string) domain.UserProfile {
	lower := strings.ToLower(text)
	profile := domain.UserProfile{
		RiskTolerance: domain.RiskReadyForAnything,
		TimeHorizon:   domain.HorizonReadyForAnything,
	}

	in := ParseNumericInputs(text)
	if in.Complete() {
		profile.RiskTolerance = ClassifyRate(Annualize(RequiredMonthlyRate(in)))
	} else {
		switch {
		case containsAny(lower, conservativeCues):
			profile.RiskTolerance = domain.RiskConservative
		case containsAny(lower, aggressiveCues):
			profile.RiskTolerance = domain.RiskAggressive
		case containsAny(lower, moderateCues):
			profile.RiskTolerance = domain.RiskModerate
		}
	}

	switch {
	case in.Months > 0:
		profile.TimeHorizon = horizonFromMonths(in.Months)
	case containsAny(lower, longCues):
		profile.TimeHorizon = domain.HorizonLongTerm
	case containsAny(lower, shortCues):
		profile.TimeHorizon = domain.HorizonShortTerm
	}
	return profile
}

// Horizon boundaries follow the tool-contract wording: under 3 years is
// short term, 3-5 medium, above 5 long.
func horizonFromMonths(months int) domain.TimeHorizon {
	switch {
	case months < 36:
		return domain.HorizonShortTerm
	case months <= 60:
		return domain.HorizonMediumTerm
	default:
		return domain.HorizonLongTerm
	}
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
