package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresAirtableCredentials(t *testing.T) {
	unsetEnv(t, "AIRTABLE_API_KEY")
	unsetEnv(t, "AIRTABLE_BASE_ID")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing AIRTABLE_API_KEY")
	}

	setEnv(t, "AIRTABLE_API_KEY", "key-test")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing AIRTABLE_BASE_ID")
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	setEnv(t, "AIRTABLE_API_KEY", "key-test")
	setEnv(t, "AIRTABLE_BASE_ID", "appTestBase")
	setEnv(t, "APP_SERVICE_NAME", "pipelines-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "AIRTABLE_TIMEOUT_SECONDS", "30")
	setEnv(t, "PIPELINE_PERSONAL_HIGH_AGE_DAYS", "21")
	unsetEnv(t, "PIPELINE_FOLLOW_UP_MAP")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "pipelines-test" {
		t.Fatalf("unexpected app service name: %s", cfg.App.ServiceName)
	}
	if cfg.HTTP.Port != "8181" {
		t.Fatalf("unexpected http port: %s", cfg.HTTP.Port)
	}
	if cfg.Airtable.Timeout != 30*time.Second {
		t.Fatalf("unexpected airtable timeout: %v", cfg.Airtable.Timeout)
	}
	if cfg.Airtable.Tables.SubscriptionsPersonal != "Subscriptions Personal" {
		t.Fatalf("unexpected personal table: %s", cfg.Airtable.Tables.SubscriptionsPersonal)
	}
	if cfg.Pipeline.PersonalHighAgeDays != 21 || cfg.Pipeline.PersonalMediumAgeDays != 7 {
		t.Fatalf("unexpected personal thresholds: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.CorporateHighAgeDays != 30 || cfg.Pipeline.CorporateMediumAgeDays != 14 {
		t.Fatalf("unexpected corporate thresholds: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.PersonalSortKey != "priority" || cfg.Pipeline.PersonalSortDir != "desc" {
		t.Fatalf("unexpected personal sort defaults: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.CorporateSortKey != "name" || cfg.Pipeline.CorporateSortDir != "asc" {
		t.Fatalf("unexpected corporate sort defaults: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.FollowUps["Reconciling Banks for Tax Prep"] != "Tax Returns" {
		t.Fatalf("unexpected default follow-up map: %+v", cfg.Pipeline.FollowUps)
	}
}

func TestLoadFollowUpMapOverride(t *testing.T) {
	setEnv(t, "AIRTABLE_API_KEY", "key-test")
	setEnv(t, "AIRTABLE_BASE_ID", "appTestBase")
	setEnv(t, "PIPELINE_FOLLOW_UP_MAP", "Bookkeeping=Tax Returns, broken-pair ,Payroll=Annual Report")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Pipeline.FollowUps) != 2 {
		t.Fatalf("expected 2 follow-up mappings, got %+v", cfg.Pipeline.FollowUps)
	}
	if cfg.Pipeline.FollowUps["Bookkeeping"] != "Tax Returns" {
		t.Fatalf("unexpected mapping: %+v", cfg.Pipeline.FollowUps)
	}
	if cfg.Pipeline.FollowUps["Payroll"] != "Annual Report" {
		t.Fatalf("unexpected mapping: %+v", cfg.Pipeline.FollowUps)
	}
}
