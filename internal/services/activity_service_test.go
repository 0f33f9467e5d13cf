package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestSaveDay(t *testing.T) {
	t.Run("creates_new_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		saved, err := svc.SaveDay(models.ActivityLog{
			Date: testutil.Date(2025, time.May, 1),
			Gym:  true,
		})
		testutil.AssertNoError(t, err)
		if saved.ID == 0 {
			t.Fatal("expected non-zero ID")
		}
		if !saved.Gym {
			t.Error("expected gym flag to be set")
		}
	})

	t.Run("same_date_replaces_flags", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		day := testutil.Date(2025, time.May, 1)
		first, err := svc.SaveDay(models.ActivityLog{Date: day, Gym: true, Notes: "leg day"})
		testutil.AssertNoError(t, err)

		second, err := svc.SaveDay(models.ActivityLog{Date: day, Sauna: true, Notes: "rest"})
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected upsert to keep row %d, got %d", first.ID, second.ID)
		}
		if second.Gym {
			t.Error("expected gym flag to be cleared by the replacement")
		}
		if !second.Sauna {
			t.Error("expected sauna flag to be set")
		}
		if second.Notes != "rest" {
			t.Errorf("expected notes to be replaced, got %q", second.Notes)
		}

		var count int64
		if err := db.Model(&models.ActivityLog{}).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected a single row, got %d", count)
		}
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		_, err := svc.SaveDay(models.ActivityLog{Gym: true})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetDay(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		_, err := svc.GetDay(testutil.Date(2025, time.May, 1))
		testutil.AssertAppError(t, err, "ACTIVITY_NOT_FOUND")
	})
}

func TestRecent(t *testing.T) {
	t.Run("newest_first_with_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		for day := 1; day <= 5; day++ {
			testutil.CreateTestActivityDay(t, db, testutil.Date(2025, time.May, day), nil)
		}

		entries, err := svc.Recent(3)
		testutil.AssertNoError(t, err)
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if got := entries[0].Date.Format("2006-01-02"); got != "2025-05-05" {
			t.Errorf("expected newest first, got %s", got)
		}
	})
}

func TestActivityStats(t *testing.T) {
	t.Run("counts_and_percentages", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		today := testutil.Date(2025, time.June, 30)
		// Two recent days, one old day outside the trailing window.
		testutil.CreateTestActivityDay(t, db, testutil.Date(2025, time.June, 28), func(a *models.ActivityLog) {
			a.Gym = true
			a.Supplements = true
		})
		testutil.CreateTestActivityDay(t, db, testutil.Date(2025, time.June, 29), func(a *models.ActivityLog) {
			a.Gym = true
		})
		testutil.CreateTestActivityDay(t, db, testutil.Date(2025, time.January, 10), func(a *models.ActivityLog) {
			a.Gym = true
			a.JiuJitsu = true
		})

		stats, err := svc.Stats(today)
		testutil.AssertNoError(t, err)

		if stats.Last30.Gym != 2 {
			t.Errorf("expected 2 recent gym days, got %d", stats.Last30.Gym)
		}
		if stats.Last30.TotalDays != 2 {
			t.Errorf("expected 2 recent tracked days, got %d", stats.Last30.TotalDays)
		}
		if stats.AllTime.Gym != 3 {
			t.Errorf("expected 3 all-time gym days, got %d", stats.AllTime.Gym)
		}
		if stats.AllTime.TotalDays != 3 {
			t.Errorf("expected 3 all-time tracked days, got %d", stats.AllTime.TotalDays)
		}
		if got := stats.Percentages["gym"]; got != 100.0 {
			t.Errorf("expected gym percentage 100, got %v", got)
		}
		if got := stats.Percentages["jiu_jitsu"]; got != 33.3 {
			t.Errorf("expected jiu_jitsu percentage 33.3, got %v", got)
		}
	})

	t.Run("empty_log", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewActivityService(db)

		stats, err := svc.Stats(testutil.Date(2025, time.June, 30))
		testutil.AssertNoError(t, err)
		if stats.AllTime.TotalDays != 0 {
			t.Errorf("expected 0 tracked days, got %d", stats.AllTime.TotalDays)
		}
		if got := stats.Percentages["gym"]; got != 0 {
			t.Errorf("expected zero percentage, got %v", got)
		}
	})
}
