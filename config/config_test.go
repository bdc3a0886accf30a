package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if !cfg.Statements.BalanceTolerance.Equal(decimal.RequireFromString("0.01")) {
		t.Errorf("expected a one cent tolerance, got %s", cfg.Statements.BalanceTolerance)
	}
	if !cfg.Features.BudgetActuals || !cfg.Features.IntercompanyTextInference {
		t.Errorf("unexpected feature defaults %+v", cfg.Features)
	}
	if cfg.Features.ImbalanceNotifications {
		t.Error("imbalance notifications must be opt-in")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FEATURE_BUDGET_ACTUALS", "false")
	t.Setenv("FEATURE_INTERCOMPANY_TEXT_INFERENCE", "false")
	t.Setenv("STATEMENTS_BALANCE_TOLERANCE", "0.5")
	t.Setenv("STATEMENTS_MATCH_DATE_TOLERANCE_DAYS", "3")
	t.Setenv("STATEMENTS_CACHE_TTL", "1m")

	cfg := Load()
	matching := cfg.MatchingConfig()

	if cfg.Features.BudgetActuals {
		t.Error("expected budget actuals disabled")
	}
	if matching.AllowTextInference {
		t.Error("expected text inference disabled")
	}
	if !matching.BalanceTolerance.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("unexpected tolerance %s", matching.BalanceTolerance)
	}
	if matching.MatchDateToleranceDays != 3 {
		t.Errorf("unexpected date tolerance %d", matching.MatchDateToleranceDays)
	}
	if cfg.Statements.CacheTTL != time.Minute {
		t.Errorf("unexpected cache ttl %s", cfg.Statements.CacheTTL)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("STATEMENTS_BALANCE_TOLERANCE", "-1")
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg := Load()

	if !cfg.Statements.BalanceTolerance.Equal(decimal.RequireFromString("0.01")) {
		t.Errorf("negative tolerance must fall back to the default, got %s", cfg.Statements.BalanceTolerance)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}
