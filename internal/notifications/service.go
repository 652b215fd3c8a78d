package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/vigilmarca/brand-health-bot/internal/config"
	"github.com/vigilmarca/brand-health-bot/internal/models"
)

// Service delivers reports by email over SMTP.
type Service struct {
	config *config.Config
	dial   func(m *gomail.Message) error
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// NewService creates the email notification service.
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		dial: func(m *gomail.Message) error {
			d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
			return d.DialAndSend(m)
		},
	}
}

var monthsES = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// Subject builds the dated report subject line.
func Subject(brandName string, now time.Time) string {
	return fmt.Sprintf("[%s %d, %d] %s: Resumen de Marca e Inteligencia de Mercado",
		monthsES[now.Month()-1], now.Day(), now.Year(), brandName)
}

// SendReport renders and sends the full cycle report.
func (s *Service) SendReport(report *models.Report) error {
	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.Recipients...)
	m.SetHeader("Subject", Subject(report.BrandName, report.GeneratedAt))
	m.SetBody("text/html", htmlBody)

	if len(report.Chart) > 0 {
		png := report.Chart
		m.Embed("trend.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(png)
			return err
		}))
	}

	if err := s.dial(m); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	logrus.Infof("Report delivered to %d recipients", len(s.config.Recipients))
	return nil
}

// SendNoNovelty sends the fixed "no news" notice for a cycle with no novel
// mentions.
func (s *Service) SendNoNovelty(brandName string) error {
	now := time.Now()

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.Recipients...)
	m.SetHeader("Subject", Subject(brandName, now))
	m.SetBody("text/html", fmt.Sprintf(
		"<p>No hay menciones nuevas relevantes de <strong>%s</strong> desde la última ejecución (%s).</p>",
		template.HTMLEscapeString(brandName), now.Format("2006-01-02 15:04")))

	if err := s.dial(m); err != nil {
		return fmt.Errorf("failed to send no-novelty notice: %w", err)
	}

	logrus.Info("No-novelty notice delivered")
	return nil
}

const emailTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; margin: 0; padding: 0; background-color: #f4f4f4;">
    <div style="max-width: 800px; margin: 0 auto; background-color: #ffffff; border: 1px solid #ddd;">
        <div style="background-color: {{.PrimaryColor}}; padding: 20px; text-align: center;">
            {{if .HeaderHTML}}{{.HeaderHTML}}{{else}}<h1 style="color: white; margin: 0; font-size: 24px;">{{.BrandName}}</h1>{{end}}
            <p style="color: #ccc; margin: 5px 0 0 0; font-size: 14px;">Vigilancia de Marca &amp; Inteligencia de Mercado</p>
        </div>
        <div style="padding: 20px;">
            <div style="background-color: {{.SecondaryColor}}; padding: 20px; border-left: 5px solid {{.PrimaryColor}}; margin-bottom: 25px;">
                <h2 style="color: {{.PrimaryColor}}; margin-top: 0; font-size: 18px; border-bottom: 1px solid {{.PrimaryColor}}; padding-bottom: 10px;">Resumen Ejecutivo de Riesgo</h2>
                <div style="font-size: 15px; line-height: 1.6; color: #333;">
                    {{.Summary}}
                </div>
            </div>

            {{if .HasChart}}
            <div style="text-align: center; margin-bottom: 25px;">
                <img src="cid:trend.png" alt="Brand Health Index" style="max-width: 100%;">
            </div>
            {{end}}

            {{if .Indicators}}
            <div style="background-color: #fafafa; padding: 12px; border: 1px solid #eee; margin-bottom: 25px;">
                <h3 style="margin: 0 0 8px 0; font-size: 14px; color: #666;">Indicadores Económicos</h3>
                {{range .Indicators}}<span style="display: inline-block; margin-right: 20px; font-size: 13px;"><strong>{{.Name}}:</strong> {{.Value}}</span>{{end}}
            </div>
            {{end}}

            <div style="font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 15px; text-align: center;">
                <p style="margin: 5px 0;">Este es un mensaje automático del Agente de Vigilancia de Marca.</p>
                <p style="margin: 5px 0;">Generado el {{.GeneratedAt}}</p>
            </div>
        </div>
    </div>
</body>
</html>
`

type emailData struct {
	BrandName      string
	PrimaryColor   string
	SecondaryColor string
	HeaderHTML     template.HTML
	Summary        template.HTML
	HasChart       bool
	Indicators     []models.Indicator
	GeneratedAt    string
}

func (s *Service) buildEmailHTML(report *models.Report) (string, error) {
	t, err := template.New("email").Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	brand := s.config.Brand
	data := emailData{
		BrandName:      report.BrandName,
		PrimaryColor:   brand.PrimaryColor,
		SecondaryColor: brand.SecondaryColor,
		HeaderHTML:     template.HTML(brand.HeaderHTML),
		Summary:        template.HTML(cleanSummary(report.Summary)),
		HasChart:       len(report.Chart) > 0,
		Indicators:     report.Indicators,
		GeneratedAt:    report.GeneratedAt.Format("2006-01-02 15:04 MST"),
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func cleanSummary(summary string) string {
	summary = strings.ReplaceAll(summary, "```html", "")
	summary = strings.ReplaceAll(summary, "```", "")
	return strings.TrimSpace(summary)
}
