package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		sentiment string
		urgency   string
	}{
		{
			name:      "positive",
			text:      "Excelente servicio, gracias por la atención rápida",
			sentiment: "positivo",
			urgency:   UrgencyGreen,
		},
		{
			name:      "negative",
			text:      "Qué malo, la app no funciona otra vez",
			sentiment: "negativo",
			urgency:   UrgencyYellow,
		},
		{
			name:      "strongly negative escalates urgency",
			text:      "Fraude y estafa, la peor falla, un problema tras otro",
			sentiment: "negativo",
			urgency:   UrgencyRed,
		},
		{
			name:      "neutral",
			text:      "El banco anunció su junta de accionistas",
			sentiment: "neutral",
			urgency:   UrgencyGreen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentiment, urgency := AnalyzeSentiment(tt.text)
			assert.Equal(t, tt.sentiment, sentiment)
			assert.Equal(t, tt.urgency, urgency)
		})
	}
}
