// test-report renders a sample cycle report against the in-memory store
// and writes the email HTML and trend chart to disk for inspection.
// With SMTP configured it also sends the report.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/chart"
	"github.com/vigilmarca/brand-health-bot/internal/config"
	"github.com/vigilmarca/brand-health-bot/internal/memory"
	"github.com/vigilmarca/brand-health-bot/internal/models"
	"github.com/vigilmarca/brand-health-bot/internal/notifications"
	"github.com/vigilmarca/brand-health-bot/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	brandID := os.Getenv("BRAND_ID")
	if brandID == "" {
		brandID = "banco_chile"
	}
	brandsFile := os.Getenv("BRANDS_FILE")
	if brandsFile == "" {
		brandsFile = "brands.yaml"
	}

	brand, err := config.LoadBrand(brandsFile, brandID)
	if err != nil {
		logrus.Fatalf("Failed to load brand: %v", err)
	}

	ctx := context.Background()
	documentStore := store.NewMemoryStore()
	ledger := memory.NewHistoryLedger(documentStore, brand.ID)

	// Seed a week of scores so the chart has something to show.
	now := time.Now()
	for i, score := range []int{78, 81, 74, 69, 72, 80} {
		ledger.Append(ctx, score, now.AddDate(0, 0, i-6))
	}

	entries, err := ledger.ReadRecent(ctx, 11)
	if err != nil {
		logrus.Fatalf("Failed to read sample history: %v", err)
	}
	entries = append(entries, models.ScoreEntry{Timestamp: now, Score: 76, Label: now.Format("02/01")})

	trend, err := chart.NewRenderer(brand.PrimaryColor).Render(entries)
	if err != nil {
		logrus.Fatalf("Failed to render sample chart: %v", err)
	}
	if err := os.WriteFile("sample-trend.png", trend, 0o644); err != nil {
		logrus.Fatalf("Failed to write sample chart: %v", err)
	}
	logrus.Info("Wrote sample-trend.png")

	score := 76
	report := &models.Report{
		GeneratedAt: now,
		BrandID:     brand.ID,
		BrandName:   brand.Name,
		Mentions:    sampleMentions(brand.Name),
		Summary:     sampleSummary(),
		Score:       &score,
		Chart:       trend,
		Indicators: []models.Indicator{
			{Name: "UF", Value: "$38.072,45"},
			{Name: "Dólar Obs.", Value: "$945,12"},
		},
	}

	logrus.Infof("Sample report: brand=%s mentions=%d score=%d", report.BrandName, len(report.Mentions), *report.Score)
	logrus.Infof("Subject: %s", notifications.Subject(report.BrandName, report.GeneratedAt))

	if os.Getenv("SMTP_HOST") == "" {
		logrus.Info("SMTP not configured; skipping send")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := notifications.NewService(cfg).SendReport(report); err != nil {
		logrus.Fatalf("Failed to send sample report: %v", err)
	}
	logrus.Info("Sample report sent")
}

func sampleMentions(brandName string) []models.Mention {
	published := time.Now().Add(-6 * time.Hour)
	return []models.Mention{
		{
			Title:       brandName + " anuncia resultados trimestrales",
			URL:         "https://www.df.cl/resultados-trimestrales",
			Snippet:     "Resultados mejores a lo esperado por el mercado.",
			PublishedAt: &published,
			Category:    models.CategoryFinancialNews,
			Sentiment:   "positivo",
		},
		{
			Title:     "Reclamos por caída de la app móvil",
			URL:       "https://twitter.com/usuario/status/12345",
			Snippet:   "La app no funciona desde esta mañana, pésimo servicio.",
			Category:  models.CategorySocial,
			Sentiment: "negativo",
		},
	}
}

func sampleSummary() string {
	return `<p><strong>Estado General:</strong> <span style="color: yellow;">Alerta</span></p>
<p><strong>Análisis:</strong> Resultados financieros positivos contrarrestados por reclamos de disponibilidad en canales digitales.</p>
<p><strong>Recomendación:</strong> Comunicar públicamente el estado de la app y los plazos de resolución.</p>
<hr>
<h4>Detalle de Menciones</h4>
<ul>
  <li><strong>Mención:</strong> Resultados trimestrales. <strong>Sentimiento:</strong> <span style="color: #00C853;">Positivo</span>. <a href="https://www.df.cl/resultados-trimestrales" target="_blank">leer más</a></li>
  <li><strong>Mención:</strong> Caída de la app móvil. <strong>Sentimiento:</strong> <span style="color: #D32F2F;">Negativo</span>. <a href="https://twitter.com/usuario/status/12345" target="_blank">leer más</a></li>
</ul>
<p>Brand Health Index: 76/100</p>`
}
