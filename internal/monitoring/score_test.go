package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
		ok       bool
	}{
		{
			name:     "canonical format",
			text:     "resumen... Brand Health Index: 87/100",
			expected: 87,
			ok:       true,
		},
		{
			name:     "score appears later in the text",
			text:     "<p>Brand Health Index</p><p>La evaluación del día es 72/100 considerando...</p>",
			expected: 72,
			ok:       true,
		},
		{
			name:     "score of zero",
			text:     "Brand Health Index: 0/100",
			expected: 0,
			ok:       true,
		},
		{
			name:     "score of one hundred",
			text:     "Brand Health Index: 100/100",
			expected: 100,
			ok:       true,
		},
		{
			name: "no label anywhere",
			text: "El puntaje es 87/100 pero sin etiqueta",
		},
		{
			name: "empty text",
			text: "",
		},
		{
			name: "label with no score",
			text: "Brand Health Index: pendiente de evaluación",
		},
		{
			name: "near miss: spaces around the slash",
			text: "Brand Health Index: 87 / 100",
		},
		{
			name: "near miss: score before the label",
			text: "87/100 es el Brand Health Index de hoy",
		},
		{
			name: "near miss: different denominator",
			text: "Brand Health Index: 87/10",
		},
		{
			name: "out of range",
			text: "Brand Health Index: 150/100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := ExtractHealthScore(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, score)
			}
		})
	}
}
