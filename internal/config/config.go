package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Brand is one tenant's static configuration from brands.yaml. It selects
// which storage collections are addressed, so two brands never share a
// fingerprint or history namespace.
type Brand struct {
	ID             string   `yaml:"-"`
	Name           string   `yaml:"name"`
	SearchTerms    []string `yaml:"search_terms"`
	Competitors    []string `yaml:"competitors"`
	TechFocus      string   `yaml:"tech_focus"`
	PrimaryColor   string   `yaml:"primary_color"`
	SecondaryColor string   `yaml:"secondary_color"`
	HeaderHTML     string   `yaml:"header_html"`
	FinancialSites []string `yaml:"financial_sites"`
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Schedule configuration
	ReportSchedule string // "daily" or "weekly"
	TimeZone       string

	// Tenant selection
	BrandID    string
	BrandsFile string
	Brand      *Brand

	// Document store (Firestore)
	GoogleCloudProject string

	// Report archive (Azure Blob, optional)
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	Recipients   []string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// API keys
	SerpAPIKey   string
	GeminiAPIKey string
	GeminiModel  string

	// Economic indicators (optional, empty disables the block)
	IndicatorsURL string

	// Sentiment analysis
	EnableSentimentAnalysis bool
}

// Load loads configuration from environment variables and the brand
// registry file, selecting the tenant named by BRAND_ID.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          getBoolEnv("DEBUG", false),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "daily"),
		TimeZone:       getEnv("TIMEZONE", "UTC"),

		BrandID:    getEnv("BRAND_ID", "banco_chile"),
		BrandsFile: getEnv("BRANDS_FILE", "brands.yaml"),

		GoogleCloudProject: getEnv("GOOGLE_CLOUD_PROJECT", ""),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "reports"),

		Recipients:   getSliceEnv("NOTIFICATION_EMAILS", nil),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getIntEnv("SMTP_PORT", 465),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SerpAPIKey:   getEnv("SERPAPI_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-pro"),

		IndicatorsURL: getEnv("INDICATORS_URL", "https://mindicador.cl/api"),

		EnableSentimentAnalysis: getBoolEnv("ENABLE_SENTIMENT_ANALYSIS", true),
	}

	brand, err := LoadBrand(cfg.BrandsFile, cfg.BrandID)
	if err != nil {
		return nil, err
	}
	cfg.Brand = brand

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadBrand reads the brand registry and returns the configuration for
// the given brand id. An unknown id is a fatal configuration error.
func LoadBrand(path, brandID string) (*Brand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand registry %s: %w", path, err)
	}

	var registry map[string]*Brand
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse brand registry %s: %w", path, err)
	}

	brand, ok := registry[brandID]
	if !ok || brand == nil {
		return nil, fmt.Errorf("brand id %q not found in %s", brandID, path)
	}
	brand.ID = brandID

	if brand.Name == "" {
		return nil, fmt.Errorf("brand %q has no name", brandID)
	}
	if len(brand.SearchTerms) == 0 {
		return nil, fmt.Errorf("brand %q has no search_terms", brandID)
	}
	if brand.PrimaryColor == "" {
		brand.PrimaryColor = "#003399"
	}
	if brand.SecondaryColor == "" {
		brand.SecondaryColor = "#f0f4f8"
	}

	return brand, nil
}

func (c *Config) validate() error {
	if c.ReportSchedule != "daily" && c.ReportSchedule != "weekly" {
		return fmt.Errorf("REPORT_SCHEDULE must be 'daily' or 'weekly'")
	}

	if c.SerpAPIKey == "" {
		return fmt.Errorf("SERPAPI_KEY is required")
	}

	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	if len(c.Recipients) == 0 {
		return fmt.Errorf("NOTIFICATION_EMAILS is required")
	}

	if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
		return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAILS is set")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
