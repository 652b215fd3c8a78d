package notifications

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/vigilmarca/brand-health-bot/internal/config"
	"github.com/vigilmarca/brand-health-bot/internal/models"
)

func testService(dial func(m *gomail.Message) error) *Service {
	return &Service{
		config: &config.Config{
			Recipients:   []string{"riesgo@example.cl"},
			SMTPUsername: "bot@example.cl",
			Brand: &config.Brand{
				ID:             "banco_chile",
				Name:           "Banco de Chile",
				PrimaryColor:   "#003399",
				SecondaryColor: "#f0f4f8",
			},
		},
		dial: dial,
	}
}

func TestSubject(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t,
		"[Ago 31, 2026] Banco de Chile: Resumen de Marca e Inteligencia de Mercado",
		Subject("Banco de Chile", now))

	january := time.Date(2027, 1, 2, 10, 0, 0, 0, time.UTC)
	assert.Contains(t, Subject("BancoEstado", january), "[Ene 2, 2027]")
}

func TestSendReport_BuildsBrandedHTML(t *testing.T) {
	var sent *gomail.Message
	service := testService(func(m *gomail.Message) error {
		sent = m
		return nil
	})

	score := 76
	report := &models.Report{
		GeneratedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		BrandID:     "banco_chile",
		BrandName:   "Banco de Chile",
		Summary:     "```html\n<p>Resumen ejecutivo</p>\n```",
		Score:       &score,
		Chart:       []byte{0x89, 0x50, 0x4E, 0x47},
		Indicators:  []models.Indicator{{Name: "UF", Value: "$38072.45"}},
	}

	require.NoError(t, service.SendReport(report))
	require.NotNil(t, sent)

	html, err := service.buildEmailHTML(report)
	require.NoError(t, err)
	assert.Contains(t, html, "<p>Resumen ejecutivo</p>")
	assert.NotContains(t, html, "```", "code fences are stripped before rendering")
	assert.Contains(t, html, "#003399")
	assert.Contains(t, html, `cid:trend.png`)
	assert.Contains(t, html, "UF")
	assert.Contains(t, html, "Banco de Chile")
}

func TestSendReport_NoChartOmitsImage(t *testing.T) {
	service := testService(func(m *gomail.Message) error { return nil })

	report := &models.Report{
		GeneratedAt: time.Now(),
		BrandName:   "Banco de Chile",
		Summary:     "<p>sin tendencia</p>",
	}

	html, err := service.buildEmailHTML(report)
	require.NoError(t, err)
	assert.NotContains(t, html, "cid:trend.png")
}

func TestSendReport_TransportFailure(t *testing.T) {
	service := testService(func(m *gomail.Message) error {
		return errors.New("smtp: auth failed")
	})

	err := service.SendReport(&models.Report{GeneratedAt: time.Now(), BrandName: "Banco de Chile"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp")
}

func TestSendNoNovelty(t *testing.T) {
	var sent *gomail.Message
	service := testService(func(m *gomail.Message) error {
		sent = m
		return nil
	})

	require.NoError(t, service.SendNoNovelty("Banco de Chile"))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"riesgo@example.cl"}, sent.GetHeader("To"))
}
