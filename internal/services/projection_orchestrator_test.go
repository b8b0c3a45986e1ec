package services

import (
	"context"
	"errors"
	"testing"

	"hfp-go-api/internal/config"
	"hfp-go-api/internal/engine"
	"hfp-go-api/internal/models"
)

func testConfig() *config.Config {
	// No Firestore project, so the cache stays in-memory.
	return &config.Config{
		CacheTTLHours:   1,
		RatePeriodYears: 5,
	}
}

func validProjectionConfig() models.ProjectionConfig {
	return models.ProjectionConfig{
		Mortgage: models.MortgageConfig{
			Principal:             555000,
			AnnualInterestRatePct: 6.825,
			TermYears:             30,
		},
		Housing: models.HousingConfig{
			PropertyTaxPerMonth: 800,
			InsurancePerMonth:   196,
			UtilitiesPerMonth:   200,
		},
		Income: models.IncomeConfig{
			HusbandAnnualIncome: 150000,
			WifeAnnualIncome:    100000,
		},
		Investments: models.InvestmentsConfig{
			AccountA: models.InvestmentAccountConfig{StartingBalance: 100000, AnnualReturnPct: 9},
			AccountB: models.InvestmentAccountConfig{StartingBalance: 287280, AnnualReturnPct: 12},
		},
		HorizonMonths: 360,
	}
}

func TestGenerateProjection_CacheHit(t *testing.T) {
	cfg := testConfig()
	cache := NewCacheService(cfg)
	defer cache.Close()
	orchestrator := NewProjectionOrchestrator(cfg, cache)

	ctx := context.Background()
	pc := validProjectionConfig()

	first, err := orchestrator.GenerateProjection(ctx, pc)
	if err != nil {
		t.Fatalf("GenerateProjection: %v", err)
	}
	if first.CacheHit {
		t.Error("first projection should not be a cache hit")
	}
	if len(first.Snapshots) != pc.HorizonMonths+1 {
		t.Fatalf("expected %d snapshots, got %d", pc.HorizonMonths+1, len(first.Snapshots))
	}

	second, err := orchestrator.GenerateProjection(ctx, pc)
	if err != nil {
		t.Fatalf("GenerateProjection (cached): %v", err)
	}
	if !second.CacheHit {
		t.Error("second projection with identical config should be a cache hit")
	}
	if len(second.Snapshots) != len(first.Snapshots) {
		t.Errorf("cached series length %d, want %d", len(second.Snapshots), len(first.Snapshots))
	}
}

func TestGenerateProjection_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cache := NewCacheService(cfg)
	defer cache.Close()
	orchestrator := NewProjectionOrchestrator(cfg, cache)

	pc := validProjectionConfig()
	pc.Mortgage.Principal = -1

	resp, err := orchestrator.GenerateProjection(context.Background(), pc)
	if !errors.Is(err, engine.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if resp != nil {
		t.Error("expected nil response for invalid config")
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	a, err := CacheKey(validProjectionConfig())
	if err != nil {
		t.Fatalf("CacheKey: %v", err)
	}
	b, err := CacheKey(validProjectionConfig())
	if err != nil {
		t.Fatalf("CacheKey: %v", err)
	}
	if a != b {
		t.Errorf("equal configs hashed to %s and %s", a, b)
	}

	changed := validProjectionConfig()
	changed.Mortgage.ExtraPaymentPct = 10
	c, err := CacheKey(changed)
	if err != nil {
		t.Fatalf("CacheKey: %v", err)
	}
	if c == a {
		t.Error("different configs should hash to different keys")
	}
}
