package services

import (
	"testing"

	"github.com/moolahfactory/moolah/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.CreateBudget(user.ID, "2023-01", dec(t, "500.00"))
		testutil.AssertNoError(t, err)
		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		if budget.Month != "2023-01" {
			t.Errorf("expected month 2023-01, got %s", budget.Month)
		}
	})

	t.Run("duplicate_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, "2023-01", dec(t, "500"))
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBudget(user.ID, "2023-01", dec(t, "800"))
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("same_month_different_owners", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user1.ID, "2023-01", dec(t, "500"))
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBudget(user2.ID, "2023-01", dec(t, "300"))
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_month_format", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		for _, month := range []string{"2023", "2023-13", "January 2023", "2023-1"} {
			_, err := svc.CreateBudget(user.ID, month, dec(t, "500"))
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})

	t.Run("non_positive_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, "2023-01", dec(t, "0"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateBudget(user.ID, "2023-01", dec(t, "-10"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserBudgets(t *testing.T) {
	t.Run("owner_scoped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user1.ID, "2023-01", dec(t, "500"))
		testutil.CreateTestBudget(t, db, user2.ID, "2023-01", dec(t, "300"))

		budgets, err := svc.GetUserBudgets(user1.ID)
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgets))
		}
		if budgets[0].OwnerID != user1.ID {
			t.Errorf("expected owner %d, got %d", user1.ID, budgets[0].OwnerID)
		}
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, "2023-01", dec(t, "500"))

		limit := dec(t, "750.25")
		updated, err := svc.UpdateBudget(user.ID, budget.ID, BudgetUpdate{Limit: &limit})
		testutil.AssertNoError(t, err)
		if !updated.Limit.Equal(limit) {
			t.Errorf("expected limit 750.25, got %s", updated.Limit)
		}
		if updated.Month != "2023-01" {
			t.Errorf("expected month unchanged, got %s", updated.Month)
		}
	})

	t.Run("move_to_taken_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, "2023-01", dec(t, "500"))
		budget := testutil.CreateTestBudget(t, db, user.ID, "2023-02", dec(t, "300"))

		month := "2023-01"
		_, err := svc.UpdateBudget(user.ID, budget.ID, BudgetUpdate{Month: &month})
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("cross_owner_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user1.ID, "2023-01", dec(t, "500"))

		limit := dec(t, "1")
		_, err := svc.UpdateBudget(user2.ID, budget.ID, BudgetUpdate{Limit: &limit})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, "2023-01", dec(t, "500"))

		testutil.AssertNoError(t, svc.DeleteBudget(user.ID, budget.ID))

		budgets, err := svc.GetUserBudgets(user.ID)
		testutil.AssertNoError(t, err)
		if len(budgets) != 0 {
			t.Errorf("expected no budgets, got %d", len(budgets))
		}
	})

	t.Run("cross_owner_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user1.ID, "2023-01", dec(t, "500"))

		err := svc.DeleteBudget(user2.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
