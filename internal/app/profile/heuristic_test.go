package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dravina/dravina-agent/internal/app/profile"
	"github.com/dravina/dravina-agent/internal/domain"
)

func TestParseNumericInputs(t *testing.T) {
	in := profile.ParseNumericInputs("I can put aside 50,000 every month; my goal is 1 lakh in 5 years")
	assert.Equal(t, 100_000.0, in.Target)
	assert.Equal(t, 50_000.0, in.Contribution)
	assert.Equal(t, 60, in.Months)
	assert.True(t, in.Complete())
}

func TestParseNumericInputsUnits(t *testing.T) {
	in := profile.ParseNumericInputs("I invest 5k monthly and want to reach 2 crore over 20 years")
	assert.Equal(t, 5_000.0, in.Contribution)
	assert.Equal(t, 20_000_000.0, in.Target)
	assert.Equal(t, 240, in.Months)
}

func TestParseNumericInputsMonths(t *testing.T) {
	in := profile.ParseNumericInputs("need 3 lakh in 18 months, I put in 10,000 per month")
	assert.Equal(t, 18, in.Months)
	assert.Equal(t, 300_000.0, in.Target)
	assert.Equal(t, 10_000.0, in.Contribution)
}

func TestParseNumericInputsRejectsTargetEqualToContribution(t *testing.T) {
	// "save 5k" names the contribution, not a goal.
	in := profile.ParseNumericInputs("I save 5k monthly")
	assert.Equal(t, 5_000.0, in.Contribution)
	assert.Zero(t, in.Target)
	assert.False(t, in.Complete())
}

func TestRequiredMonthlyRate(t *testing.T) {
	r := profile.RequiredMonthlyRate(profile.NumericInputs{Target: 100_000, Contribution: 50_000, Months: 60})
	assert.InDelta(t, 0.011428, r, 1e-4)

	// Already reachable with zero growth.
	assert.Zero(t, profile.RequiredMonthlyRate(profile.NumericInputs{Target: 1_000, Contribution: 2_000, Months: 12}))

	// Unreachable even at the bracket ceiling.
	assert.Equal(t, 1.0, profile.RequiredMonthlyRate(profile.NumericInputs{Target: 1e9, Contribution: 1, Months: 12}))
}

func TestClassifyRateBoundaries(t *testing.T) {
	assert.Equal(t, domain.RiskConservative, profile.ClassifyRate(0.10))
	assert.Equal(t, domain.RiskConservative, profile.ClassifyRate(0.15))
	assert.Equal(t, domain.RiskModerate, profile.ClassifyRate(0.16))
	assert.Equal(t, domain.RiskModerate, profile.ClassifyRate(0.22))
	assert.Equal(t, domain.RiskAggressive, profile.ClassifyRate(0.23))
}

func TestClassifyNumericPrecedence(t *testing.T) {
	cases := []struct {
		query string
		risk  domain.RiskTolerance
	}{
		// annual rate ~14.6%
		{"I can put aside 50,000 every month; my goal is 1 lakh in 5 years", domain.RiskConservative},
		// annual rate ~19.8%
		{"I can invest 40,000 each month and need 1 lakh in 5 years", domain.RiskModerate},
		// annual rate well above 22%
		{"I contribute 10,000 monthly and want to reach 10 lakh in 5 years", domain.RiskAggressive},
	}
	for _, tc := range cases {
		p := profile.Classify(tc.query)
		assert.Equal(t, tc.risk, p.RiskTolerance, "query %q", tc.query)
		assert.Equal(t, domain.HorizonMediumTerm, p.TimeHorizon, "query %q", tc.query)
	}
}

func TestClassifyLexicalCues(t *testing.T) {
	p := profile.Classify("I'm worried about losing money")
	assert.Equal(t, domain.RiskConservative, p.RiskTolerance)
	assert.Equal(t, domain.HorizonReadyForAnything, p.TimeHorizon)

	p = profile.Classify("I want to maximize returns for my retirement")
	assert.Equal(t, domain.RiskAggressive, p.RiskTolerance)
	assert.Equal(t, domain.HorizonLongTerm, p.TimeHorizon)

	p = profile.Classify("something steady I can start right away")
	assert.Equal(t, domain.RiskModerate, p.RiskTolerance)
	assert.Equal(t, domain.HorizonShortTerm, p.TimeHorizon)
}

func TestClassifyDefaultsToReadyForAnything(t *testing.T) {
	p := profile.Classify("tell me about mutual funds")
	assert.Equal(t, domain.RiskReadyForAnything, p.RiskTolerance)
	assert.Equal(t, domain.HorizonReadyForAnything, p.TimeHorizon)
}

func TestClassifyIsDeterministic(t *testing.T) {
	const query = "I can invest 40,000 each month and need 1 lakh in 5 years"
	first := profile.Classify(query)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, profile.Classify(query))
	}
}

func TestHorizonFromMonthsViaClassify(t *testing.T) {
	cases := []struct {
		query string
		want  domain.TimeHorizon
	}{
		{"need 3 lakh in 18 months, I put in 10,000 per month", domain.HorizonShortTerm},
		{"I can invest 40,000 each month and need 1 lakh in 5 years", domain.HorizonMediumTerm},
		{"I invest 5k monthly and want to reach 2 crore over 20 years", domain.HorizonLongTerm},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, profile.Classify(tc.query).TimeHorizon, "query %q", tc.query)
	}
}
