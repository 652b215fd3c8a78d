package notifications

import "github.com/vigilmarca/brand-health-bot/internal/models"

// NotificationInterface is the mail transport consumed by the orchestrator.
// A send failure is cycle-fatal: fingerprints are only committed once a
// report that mentioned them was actually delivered.
type NotificationInterface interface {
	SendReport(report *models.Report) error
	SendNoNovelty(brandName string) error
}
