package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	HTTP     ServerConfig
	Airtable AirtableConfig
	Log      LogConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	ServiceName string
	APIKey      string
}

type ServerConfig struct {
	Host string
	Port string
}

type AirtableConfig struct {
	APIKey  string
	BaseID  string
	Timeout time.Duration
	Tables  TableNames
}

// TableNames carries the external table names so a renamed Airtable table is a
// config change, not a code change.
type TableNames struct {
	SubscriptionsPersonal  string
	SubscriptionsCorporate string
	ServicesPersonal       string
	ServicesCorporate      string
	Teams                  string
	ServicesRendered       string
}

type LogConfig struct {
	Level string
}

type PipelineConfig struct {
	PersonalHighAgeDays    int
	PersonalMediumAgeDays  int
	CorporateHighAgeDays   int
	CorporateMediumAgeDays int

	PersonalSortKey  string
	PersonalSortDir  string
	CorporateSortKey string
	CorporateSortDir string

	// FollowUps maps a completed service name to the service that should be
	// offered as the next enrollment for the same subject.
	FollowUps map[string]string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	airtableAPIKey := os.Getenv("AIRTABLE_API_KEY")
	if airtableAPIKey == "" {
		return nil, errors.New("AIRTABLE_API_KEY environment variable is required")
	}
	airtableBaseID := os.Getenv("AIRTABLE_BASE_ID")
	if airtableBaseID == "" {
		return nil, errors.New("AIRTABLE_BASE_ID environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "pipelines-service"),
			APIKey:      getEnv("APP_API_KEY", ""),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		Airtable: AirtableConfig{
			APIKey:  airtableAPIKey,
			BaseID:  airtableBaseID,
			Timeout: getSecondsEnv("AIRTABLE_TIMEOUT_SECONDS", 15*time.Second),
			Tables: TableNames{
				SubscriptionsPersonal:  getEnv("AIRTABLE_TABLE_SUBSCRIPTIONS_PERSONAL", "Subscriptions Personal"),
				SubscriptionsCorporate: getEnv("AIRTABLE_TABLE_SUBSCRIPTIONS_CORPORATE", "Subscriptions Corporate"),
				ServicesPersonal:       getEnv("AIRTABLE_TABLE_SERVICES_PERSONAL", "Services"),
				ServicesCorporate:      getEnv("AIRTABLE_TABLE_SERVICES_CORPORATE", "Services Corporate"),
				Teams:                  getEnv("AIRTABLE_TABLE_TEAMS", "Teams"),
				ServicesRendered:       getEnv("AIRTABLE_TABLE_SERVICES_RENDERED", "Services Rendered"),
			},
		},
		Log: LogConfig{Level: getEnv("LOG_LEVEL", "info")},
		Pipeline: PipelineConfig{
			PersonalHighAgeDays:    getIntEnv("PIPELINE_PERSONAL_HIGH_AGE_DAYS", 14),
			PersonalMediumAgeDays:  getIntEnv("PIPELINE_PERSONAL_MEDIUM_AGE_DAYS", 7),
			CorporateHighAgeDays:   getIntEnv("PIPELINE_CORPORATE_HIGH_AGE_DAYS", 30),
			CorporateMediumAgeDays: getIntEnv("PIPELINE_CORPORATE_MEDIUM_AGE_DAYS", 14),
			PersonalSortKey:        getEnv("PIPELINE_PERSONAL_SORT_KEY", "priority"),
			PersonalSortDir:        getEnv("PIPELINE_PERSONAL_SORT_DIR", "desc"),
			CorporateSortKey:       getEnv("PIPELINE_CORPORATE_SORT_KEY", "name"),
			CorporateSortDir:       getEnv("PIPELINE_CORPORATE_SORT_DIR", "asc"),
			FollowUps: getMapEnv("PIPELINE_FOLLOW_UP_MAP", map[string]string{
				"Reconciling Banks for Tax Prep": "Tax Returns",
			}),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

// getMapEnv parses "source=target" pairs separated by commas. Malformed pairs
// are skipped rather than failing the whole load.
func getMapEnv(key string, defaultValue map[string]string) map[string]string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result := make(map[string]string)
	for _, pair := range strings.Split(value, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		source := strings.TrimSpace(parts[0])
		target := strings.TrimSpace(parts[1])
		if source == "" || target == "" {
			continue
		}
		result[source] = target
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
