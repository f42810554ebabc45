package generation

import (
	"math"

	"resume-tailor/internal/llm"
)

// Per-character-token rates in USD. Display only.
var costRates = map[llm.Provider]float64{
	llm.ProviderOpenAI:    0.00001,
	llm.ProviderAnthropic: 0.000015,
}

// EstimateCost is the display heuristic shown next to a generated resume:
// ceil(promptLen/4) tokens, scaled by 1 + 0.1 per work and education record, times the provider rate,
// rounded to four decimals.
func EstimateCost(promptLen, workCount, educationCount int, provider llm.Provider) float64 {
	if promptLen < 0 {
		promptLen = 0
	}
	tokens := math.Ceil(float64(promptLen) / 4)
	complexity := 1 + 0.1*float64(workCount+educationCount)
	cost := tokens * complexity * costRates[provider]
	return math.Round(cost*10000) / 10000
}
