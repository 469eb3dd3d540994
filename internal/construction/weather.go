package construction

import "math/rand/v2"

// Weather conditions a site forecast can report.
var Conditions = []string{"clear", "rainy", "windy", "hot", "cold"}

// weatherImpacts maps activity → condition → recommendation.
var weatherImpacts = map[string]map[string]string{
	"concrete_pour": {
		"rainy": "❌ DELAY - No concrete pouring in rain",
		"windy": "⚠️ CAUTION - High winds affect placement",
		"hot":   "🌡️ ADJUST - Early morning pour recommended",
		"cold":  "❄️ HEAT - Concrete heating required",
		"clear": "✅ OPTIMAL - Perfect conditions",
	},
	"excavation": {
		"rainy": "❌ DELAY - Muddy conditions unsafe",
		"clear": "✅ OPTIMAL - Good digging conditions",
	},
}

const defaultImpact = "✅ PROCEED - Normal conditions"

// RandomCondition picks a forecast condition at random. The tool layer
// injects this so tests can pin the condition.
func RandomCondition() string {
	return Conditions[rand.IntN(len(Conditions))]
}

// WeatherImpact returns the recommendation for performing an activity
// under a given condition. Unlisted combinations proceed normally.
func WeatherImpact(activity, condition string) string {
	if impact, ok := weatherImpacts[activity][condition]; ok {
		return impact
	}
	return defaultImpact
}
