// reset-memory purges a brand's fingerprint and/or score-history
// collections. Irreversible; every affected URL becomes reprocessable.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/memory"
	"github.com/vigilmarca/brand-health-bot/internal/store"
)

func main() {
	brands := flag.String("brands", "", "comma-separated brand ids to reset (required)")
	fingerprints := flag.Bool("fingerprints", true, "purge the processed-news fingerprint collection")
	history := flag.Bool("history", false, "purge the score history collection")
	project := flag.String("project", "", "Google Cloud project id (defaults to GOOGLE_CLOUD_PROJECT)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	if *brands == "" {
		logrus.Fatal("-brands is required, e.g. -brands banco_chile,banco_estado")
	}

	projectID := *project
	if projectID == "" {
		projectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if projectID == "" {
		logrus.Fatal("Google Cloud project id required via -project or GOOGLE_CLOUD_PROJECT")
	}

	ctx := context.Background()
	documentStore, err := store.NewFirestoreStore(ctx, projectID)
	if err != nil {
		logrus.Fatalf("Failed to initialize document store: %v", err)
	}
	defer documentStore.Close()

	for _, brandID := range strings.Split(*brands, ",") {
		brandID = strings.TrimSpace(brandID)
		if brandID == "" {
			continue
		}

		if *fingerprints {
			index := memory.NewFingerprintIndex(documentStore, brandID)
			deleted, err := index.Reset(ctx)
			if err != nil {
				logrus.Errorf("Failed to reset fingerprints for %s: %v", brandID, err)
			} else {
				logrus.Infof("Deleted %d fingerprints for %s", deleted, brandID)
			}
		}

		if *history {
			ledger := memory.NewHistoryLedger(documentStore, brandID)
			deleted, err := ledger.Reset(ctx)
			if err != nil {
				logrus.Errorf("Failed to reset score history for %s: %v", brandID, err)
			} else {
				logrus.Infof("Deleted %d score entries for %s", deleted, brandID)
			}
		}
	}
}
