package indicators

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/vigilmarca/brand-health-bot/internal/models"
)

// Client fetches Chilean economic indicators from mindicador.cl for the
// report footer. Entirely optional: any failure yields nil and the report
// simply omits the block.
type Client struct {
	url    string
	client *resty.Client
}

type apiResponse struct {
	UF    apiIndicator `json:"uf"`
	Dolar apiIndicator `json:"dolar"`
	Euro  apiIndicator `json:"euro"`
	UTM   apiIndicator `json:"utm"`
}

type apiIndicator struct {
	Valor float64 `json:"valor"`
}

// NewClient creates an indicators client. An empty URL disables it.
func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

// Fetch returns the indicator block, retrying up to three times. Returns
// nil when disabled or when all attempts fail.
func (c *Client) Fetch(ctx context.Context) []models.Indicator {
	if c.url == "" {
		return nil
	}

	var result apiResponse
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(c.url)

		if err == nil && resp.StatusCode() == 200 {
			lastErr = nil
			break
		}
		if err == nil {
			err = fmt.Errorf("status %d", resp.StatusCode())
		}
		lastErr = err
		logrus.Warnf("Indicators attempt %d/3 failed: %v", attempt, err)
	}

	if lastErr != nil {
		logrus.Errorf("Economic indicators unavailable, omitting block: %v", lastErr)
		return nil
	}

	return []models.Indicator{
		{Name: "UF", Value: fmt.Sprintf("$%.2f", result.UF.Valor)},
		{Name: "Dólar Obs.", Value: fmt.Sprintf("$%.2f", result.Dolar.Valor)},
		{Name: "Euro", Value: fmt.Sprintf("$%.2f", result.Euro.Valor)},
		{Name: "UTM", Value: fmt.Sprintf("$%.0f", result.UTM.Valor)},
	}
}
