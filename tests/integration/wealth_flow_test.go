package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestWealthFlow_NetWorthComposition(t *testing.T) {
	app := setupApp(t)

	token, _ := app.onboardUser(t, "wealth@test.com", 85000, 0)

	// Assets, a liability, and additional income all feed net worth.
	rec := app.request("POST", "/api/v1/assets",
		`{"name":"Money Market Fund","amount":300000,"type":"asset","category":"savings"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("asset creation failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/assets",
		`{"name":"HELB Loan","amount":120000,"type":"liability","category":"loan"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("liability creation failed: %d %s", rec.Code, rec.Body.String())
	}

	today := time.Now().Format("2006-01-02")
	body := fmt.Sprintf(`{"date":%q,"amount":20000,"source":"bonus"}`, today)
	rec = app.request("POST", "/api/v1/income", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("income creation failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard/net-worth", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	netWorth := parseJSON(t, rec)["net_worth"].(float64)
	if netWorth != 200000 {
		t.Errorf("expected net worth 200000, got %.2f", netWorth)
	}
}

func TestWealthFlow_InvestmentPortfolio(t *testing.T) {
	app := setupApp(t)

	token, _ := app.onboardUser(t, "portfolio@test.com", 85000, 0)

	purchase := time.Now().AddDate(0, -3, 0).Format("2006-01-02")
	body := fmt.Sprintf(`{"name":"CIC Money Market","type":"money-market","units":1000,"purchase_price":100,"current_price":100,"purchase_date":%q}`, purchase)
	rec := app.request("POST", "/api/v1/investments", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("investment creation failed: %d %s", rec.Code, rec.Body.String())
	}
	invID := parseJSON(t, rec)["investment"].(map[string]interface{})["id"].(string)

	// Mark the fund up and check derived gains.
	rec = app.request("PUT", "/api/v1/investments/"+invID+"/price",
		`{"current_price":108.5}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("price update failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/investments/portfolio", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	portfolio := parseJSON(t, rec)["portfolio"].(map[string]interface{})
	if got := portfolio["total_invested"].(float64); got != 100000 {
		t.Errorf("expected total invested 100000, got %.2f", got)
	}
	if got := portfolio["total_gain"].(float64); got != 8500 {
		t.Errorf("expected total gain 8500, got %.2f", got)
	}

	rec = app.request("POST", "/api/v1/investments",
		`{"name":"Bad Fund","type":"crypto","units":1,"purchase_price":1,"current_price":1,"purchase_date":"2026-01-01"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown investment type, got %d", rec.Code)
	}
}

func TestWealthFlow_SavingsGoalContributions(t *testing.T) {
	app := setupApp(t)

	token, _ := app.onboardUser(t, "goals@test.com", 85000, 0)

	rec := app.request("POST", "/api/v1/goals",
		`{"name":"School Fees","target_amount":100000,"current_amount":20000,"monthly_contribution":10000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("goal creation failed: %d %s", rec.Code, rec.Body.String())
	}
	goalID := parseJSON(t, rec)["goal"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/goals/"+goalID+"/contribute",
		`{"amount":15000}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("contribution failed: %d %s", rec.Code, rec.Body.String())
	}
	goal := parseJSON(t, rec)["goal"].(map[string]interface{})
	if got := goal["current_amount"].(float64); got != 35000 {
		t.Errorf("expected balance 35000 after contribution, got %.2f", got)
	}

	rec = app.request("GET", "/api/v1/dashboard/savings", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	progress := parseJSON(t, rec)["savings_progress"].(map[string]interface{})
	if got := progress["percentage_complete"].(float64); got != 35 {
		t.Errorf("expected 35%% progress, got %.2f", got)
	}
}
