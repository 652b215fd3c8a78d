// test-apis exercises the external search and indicators APIs with the
// configured credentials and prints what comes back.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/indicators"
	"github.com/vigilmarca/brand-health-bot/internal/sources"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	ctx := context.Background()
	term := "Banco de Chile"
	if len(os.Args) > 1 {
		term = os.Args[1]
	}

	apiKey := os.Getenv("SERPAPI_KEY")
	providers := []sources.Provider{
		sources.NewFinancialNewsProvider(apiKey, nil),
		sources.NewSocialProvider(apiKey),
	}

	for _, provider := range providers {
		fmt.Printf("=== %s search for %q ===\n", provider.Category(), term)
		mentions, err := provider.Search(ctx, term, 3)
		if err != nil {
			fmt.Printf("  error: %v\n", err)
			continue
		}
		for _, m := range mentions {
			fmt.Printf("  - %s\n    %s\n", m.Title, m.URL)
		}
	}

	fmt.Println("=== economic indicators ===")
	for _, ind := range indicators.NewClient("https://mindicador.cl/api").Fetch(ctx) {
		fmt.Printf("  %s: %s\n", ind.Name, ind.Value)
	}
}
