package monitoring

import "strings"

// Urgency levels attached to negative mentions.
const (
	UrgencyGreen  = "Verde"
	UrgencyYellow = "Amarillo"
	UrgencyRed    = "Rojo"
)

var negativeKeywords = []string{
	"caída", "fraude", "malo", "fome", "peor", "problema", "no funciona", "estafa",
	"reclamo", "error", "falla",
}

var positiveKeywords = []string{
	"bueno", "excelente", "gracias", "mejor", "rápido", "premio",
}

// AnalyzeSentiment classifies a mention's text with a keyword scan. A
// specialized model would do better; the label only colors the report and
// is stored on the fingerprint record for later audit.
func AnalyzeSentiment(text string) (sentiment, urgency string) {
	lower := strings.ToLower(text)

	score := 0
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			score--
		}
	}
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}

	switch {
	case score < 0:
		urgency = UrgencyYellow
		if score < -2 {
			urgency = UrgencyRed
		}
		return "negativo", urgency
	case score > 0:
		return "positivo", UrgencyGreen
	default:
		return "neutral", UrgencyGreen
	}
}
