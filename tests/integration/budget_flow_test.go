package integration

import (
	"net/http"
	"testing"
)

func TestBudgetFlow_ResolveSpendAndAdjust(t *testing.T) {
	app := setupApp(t)

	// Step 1: First request creates the biweekly period covering today.
	rec := app.request("GET", "/api/v1/budget/current", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 resolving period, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	summary := result["summary"].(map[string]interface{})
	period := summary["period"].(map[string]interface{})
	periodID := period["id"].(float64)
	assertAmount(t, period["budget_amount"], "500", "budget_amount")
	assertAmount(t, summary["total_spent"], "0", "total_spent")
	if summary["days_left"].(float64) != 13 {
		t.Errorf("days_left = %v, want 13 on the period's first day", summary["days_left"])
	}

	// Step 2: Resolving again returns the same period, not a new one.
	rec = app.request("GET", "/api/v1/budget/current", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	summary = result["summary"].(map[string]interface{})
	period = summary["period"].(map[string]interface{})
	if period["id"].(float64) != periodID {
		t.Errorf("second resolve created period %v, want %v", period["id"], periodID)
	}

	// Step 3: Log a purchase dated today (omitted date defaults to today).
	rec = app.request("POST", "/api/v1/spending",
		`{"item":"Tim Hortons coffee","price":"12.50"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 logging purchase, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/spending",
		`{"item":"Gas station","price":"47.50"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 4: The summary reflects the spending inside the window.
	rec = app.request("GET", "/api/v1/budget/current", "", "")
	result = parseJSON(t, rec)
	summary = result["summary"].(map[string]interface{})
	assertAmount(t, summary["total_spent"], "60", "total_spent")
	assertAmount(t, summary["remaining_budget"], "440", "remaining_budget")
	// 440 / 13 remaining days
	assertAmount(t, summary["daily_spend_limit"], "33.85", "daily_spend_limit")

	// Step 5: Raise the budget for the current period.
	rec = app.request("PUT", "/api/v1/budget/current", `{"budget_amount":"650.00"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating budget, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	updated := result["period"].(map[string]interface{})
	if updated["id"].(float64) != periodID {
		t.Errorf("budget update touched period %v, want %v", updated["id"], periodID)
	}
	assertAmount(t, updated["budget_amount"], "650", "budget_amount")

	rec = app.request("GET", "/api/v1/budget/current", "", "")
	result = parseJSON(t, rec)
	summary = result["summary"].(map[string]interface{})
	assertAmount(t, summary["remaining_budget"], "590", "remaining_budget")

	// Step 6: A non-positive budget is rejected.
	rec = app.request("PUT", "/api/v1/budget/current", `{"budget_amount":"-10"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative budget, got %d", rec.Code)
	}
}

func TestBudgetFlow_DashboardAggregatesToday(t *testing.T) {
	app := setupApp(t)

	rec := app.request("POST", "/api/v1/spending", `{"item":"Groceries","price":"30.00"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/activity", `{"gym":true,"supplements":true}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 saving activity, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)

	budget := result["budget"].(map[string]interface{})
	assertAmount(t, budget["total_spent"], "30", "total_spent")

	spendingSection := result["spending"].(map[string]interface{})
	entries := spendingSection["entries"].([]interface{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry today, got %d", len(entries))
	}
	assertAmount(t, spendingSection["total"], "30", "spending total")

	activity := result["activity"].(map[string]interface{})
	if activity["gym"] != true {
		t.Errorf("expected gym logged on dashboard, got %v", activity["gym"])
	}
}
