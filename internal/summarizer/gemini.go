package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiSummarizer calls the Gemini generateContent API with Google Search
// grounding enabled, so the model can verify mentions against live results.
type GeminiSummarizer struct {
	apiKey  string
	model   string
	client  *resty.Client
	baseURL string
}

// Ensure GeminiSummarizer implements Summarizer
var _ Summarizer = (*GeminiSummarizer)(nil)

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	Tools             []geminiTool    `json:"tools,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiTool struct {
	GoogleSearch map[string]interface{} `json:"google_search,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGeminiSummarizer creates a summarizer for the given model.
func NewGeminiSummarizer(apiKey, model string) *GeminiSummarizer {
	if model == "" {
		model = "gemini-2.5-pro"
	}
	return &GeminiSummarizer{
		apiKey:  apiKey,
		model:   model,
		client:  resty.New().SetTimeout(3 * time.Minute),
		baseURL: defaultGeminiBaseURL,
	}
}

// Summarize sends all novel mentions as one combined request and returns
// the model's HTML report body.
func (g *GeminiSummarizer) Summarize(ctx context.Context, mentions []models.Mention, brand BrandContext) (string, error) {
	req := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemInstruction(brand)}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: buildPrompt(mentions, brand)}}},
		},
		Tools: []geminiTool{{GoogleSearch: map[string]interface{}{}}},
	}

	var result geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", g.apiKey).
		SetBody(req).
		SetResult(&result).
		Post(fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model))

	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	if result.Error != nil {
		return "", fmt.Errorf("gemini error: %s", result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	text := CleanReportBody(result.Candidates[0].Content.Parts[0].Text)
	logrus.Infof("Gemini produced a %d-character report body", len(text))
	return text, nil
}

func systemInstruction(brand BrandContext) string {
	return fmt.Sprintf(`Eres un Analista de Riesgo Reputacional Senior de %s.
Tu trabajo es analizar las menciones ingresadas y generar un reporte ejecutivo HTML.

Reglas:
1. Evalúa la SEVERIDAD (Baja, Media, Crítica).
2. Si la mención es 'fake news' o irrelevante, descártala.
3. Genera un resumen HTML limpio y profesional: 'Estado General', 'Análisis' y 'Recomendación' al inicio, luego el detalle de menciones.
4. Usa etiquetas de sentimiento con colores: <span style="color: #00C853;">Positivo</span>, <span style="color: #607D8B;">Neutro</span>, <span style="color: #D32F2F;">Negativo</span>.
5. Incluye enlaces 'leer más' a las fuentes.
6. Cierra con una línea exacta 'Brand Health Index: NN/100' donde NN es tu evaluación 0-100 de la salud de marca.`, brand.BrandName)
}

func buildPrompt(mentions []models.Mention, brand BrandContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analiza las siguientes menciones NUEVAS recolectadas hoy %s:\n\n", time.Now().Format("2006-01-02"))
	for _, m := range mentions {
		title := m.Title
		if title == "" {
			title = "Sin título"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", m.Category, title, m.URL)
		if m.Snippet != "" {
			fmt.Fprintf(&b, "  %s\n", m.Snippet)
		}
	}

	b.WriteString("\nContexto estratégico:\n")
	if len(brand.Competitors) > 0 {
		fmt.Fprintf(&b, "- Competidores a vigilar: %s\n", strings.Join(brand.Competitors, ", "))
	}
	if brand.TechFocus != "" {
		fmt.Fprintf(&b, "- Foco tecnológico: %s\n", brand.TechFocus)
	}

	b.WriteString(`
Tarea:
1. Verifica la veracidad usando Google Search.
2. Genera el 'Resumen Ejecutivo de Riesgo' en formato HTML para el cuerpo del correo.
3. Termina con la línea 'Brand Health Index: NN/100'.`)

	return b.String()
}

// CleanReportBody strips the markdown code fences Gemini sometimes wraps
// HTML output in.
func CleanReportBody(text string) string {
	text = strings.ReplaceAll(text, "```html", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
