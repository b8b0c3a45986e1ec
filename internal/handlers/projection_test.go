package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"hfp-go-api/internal/config"
	"hfp-go-api/internal/models"
	"hfp-go-api/internal/services"
)

func newTestApp(t *testing.T) (*fiber.App, *services.ScenarioStore) {
	t.Helper()

	cfg := &config.Config{CacheTTLHours: 1, RatePeriodYears: 5}
	cache := services.NewCacheService(cfg)
	t.Cleanup(func() { cache.Close() })

	orchestrator := services.NewProjectionOrchestrator(cfg, cache)
	store := services.NewScenarioStore(nil)

	projectionHandler := NewProjectionHandler(orchestrator)
	scenarioHandler := NewScenarioHandler(store, orchestrator)

	app := fiber.New(fiber.Config{
		StrictRouting: true,
		CaseSensitive: true,
		ErrorHandler:  CustomErrorHandler,
	})

	v1 := app.Group("/v1")
	v1.Post("/projection", projectionHandler.GetProjection)
	v1.Post("/projection/report", projectionHandler.GetProjectionReport)
	v1.Post("/scenarios", scenarioHandler.CreateScenario)
	v1.Get("/scenarios", scenarioHandler.ListScenarios)
	v1.Get("/scenarios/:id", scenarioHandler.GetScenario)
	v1.Delete("/scenarios/:id", scenarioHandler.DeleteScenario)
	v1.Get("/scenarios/:id/projection", scenarioHandler.GetScenarioProjection)
	v1.Post("/scenarios/:id/entries", scenarioHandler.AddEntry)
	v1.Put("/scenarios/:id/entries/:entryId", scenarioHandler.UpdateEntry)
	v1.Delete("/scenarios/:id/entries/:entryId", scenarioHandler.RemoveEntry)

	return app, store
}

func testProjectionConfig() models.ProjectionConfig {
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
		HorizonMonths: 120,
	}
}

func postJSON(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGetProjection_OK(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(postJSON(t, "/v1/projection", testProjectionConfig()), 10000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var projection models.ProjectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&projection); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(projection.Snapshots) != 121 {
		t.Errorf("expected 121 snapshots, got %d", len(projection.Snapshots))
	}
	if projection.Snapshots[0].Month != 0 {
		t.Error("series does not start at month 0")
	}
}

func TestGetProjection_BadJSON(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/projection", bytes.NewReader([]byte(`{invalid`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetProjection_InvalidConfig(t *testing.T) {
	app, _ := newTestApp(t)

	cfg := testProjectionConfig()
	cfg.Mortgage.TermYears = 0

	resp, err := app.Test(postJSON(t, "/v1/projection", cfg), 10000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != 400 {
		t.Errorf("error code = %d, want 400", errResp.Code)
	}
}

func TestGetProjectionReport_PDF(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(postJSON(t, "/v1/projection/report", testProjectionConfig()), 10000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Error("response body is not a PDF")
	}
}
