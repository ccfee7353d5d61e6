package llm

import (
	"github.com/dravina/dravina-agent/internal/domain"

	"google.golang.org/genai"
)

// profileSystemPrompt instructs the structured-extraction call. The
// numeric rule takes precedence when the text contains a target amount,
// a recurring contribution and a duration; lexical cues apply otherwise.
const profileSystemPrompt = `
You are a professional psychologist who analyzes human emotions to provide insights on an individual's risk mindset and the duration of their investments.

# Guidelines
- When the text contains a savings target, a recurring monthly contribution and a duration, prefer this deterministic rule over sentiment:
  solve target = contribution * (1+r)^(months+1) for the periodic rate r.
  If the annualized rate is at most 15 percent the risk is 'conservative'; above 15 and at most 22 percent it is 'moderate'; above 22 percent it is 'aggressive'.
- Otherwise classify risk as 'conservative', 'moderate' or 'aggressive' from language cues, or 'ready_for_anything' if none match:
  - Example: "high growth needed" - aggressive
  - Example: "steady growth needed" - moderate
  - Example: "not sure about risk" - conservative
  - Example: "worried about losing" - conservative
  - Example: "as soon as possible" - aggressive
- Time can be 'long_term', 'medium_term' or 'short_term', or 'ready_for_anything' if none match:
  - Example: "till retirement" - long_term
  - Example: "for the next 10 years" - long_term
  - Example: "immediate" - short_term
`

// profileSchema constrains the extraction response to the two enumerated
// fields of the user profile.
var profileSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"risk_tolerance": {
			Type: genai.TypeString,
			Enum: []string{
				string(domain.RiskConservative),
				string(domain.RiskModerate),
				string(domain.RiskAggressive),
				string(domain.RiskReadyForAnything),
			},
		},
		"time_horizon": {
			Type: genai.TypeString,
			Enum: []string{
				string(domain.HorizonShortTerm),
				string(domain.HorizonMediumTerm),
				string(domain.HorizonLongTerm),
				string(domain.HorizonReadyForAnything),
			},
		},
	},
	Required: []string{"risk_tolerance", "time_horizon"},
}
