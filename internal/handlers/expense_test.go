package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/pena-club/pena-api/internal/models"
)

func TestHandleCreateExpense(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)

	user := models.User{Username: "cacho", Name: "Cacho"}
	db.Create(&user)
	event := models.Event{OwnerID: user.ID, Date: time.Now().Add(48 * time.Hour)}
	db.Create(&event)

	handler := NewExpenseHandler(db, authHandler)
	cookie := cookieFor(t, authHandler, user.ID)

	input := &CreateExpenseInput{}
	input.Cookie = cookie
	input.Body.EventID = event.ID
	input.Body.Description = "Vino y picada"
	input.Body.Amount = 45.5

	resp, err := handler.HandleCreateExpense(context.Background(), input)
	if err != nil {
		t.Fatalf("HandleCreateExpense returned error: %v", err)
	}
	if resp.Body.UserID != user.ID {
		t.Errorf("expected expense owned by %s, got %s", user.ID, resp.Body.UserID)
	}
	if resp.Body.User == nil || resp.Body.User.Name != "Cacho" {
		t.Errorf("expected preloaded user, got %+v", resp.Body.User)
	}

	var count int64
	db.Model(&models.Expense{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 expense in DB, got %d", count)
	}
}

func TestHandleCreateExpenseRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)

	user := models.User{Username: "cacho", Name: "Cacho"}
	db.Create(&user)

	handler := NewExpenseHandler(db, authHandler)
	cookie := cookieFor(t, authHandler, user.ID)

	for _, amount := range []float64{0, -10} {
		input := &CreateExpenseInput{}
		input.Cookie = cookie
		input.Body.EventID = "ev1"
		input.Body.Description = "Hielo"
		input.Body.Amount = amount

		if _, err := handler.HandleCreateExpense(context.Background(), input); err == nil {
			t.Errorf("expected error for amount %v, got nil", amount)
		}
	}

	var count int64
	db.Model(&models.Expense{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no expenses in DB, got %d", count)
	}
}

func TestHandleDeleteExpense(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)

	owner := models.User{Username: "cacho", Name: "Cacho"}
	other := models.User{Username: "juan", Name: "Juan"}
	admin := models.User{Username: "admin", Name: "Admin"}
	db.Create(&owner)
	db.Create(&other)
	db.Create(&admin)

	handler := NewExpenseHandler(db, authHandler)

	newExpense := func() models.Expense {
		expense := models.Expense{EventID: "ev1", UserID: owner.ID, Description: "Asado", Amount: 80}
		db.Create(&expense)
		return expense
	}

	t.Run("owner can delete", func(t *testing.T) {
		expense := newExpense()
		input := &DeleteExpenseInput{ExpenseID: expense.ID}
		input.Cookie = cookieFor(t, authHandler, owner.ID)

		resp, err := handler.HandleDeleteExpense(context.Background(), input)
		if err != nil {
			t.Fatalf("HandleDeleteExpense returned error: %v", err)
		}
		if resp.Body.ID != expense.ID {
			t.Errorf("expected deleted expense %s, got %s", expense.ID, resp.Body.ID)
		}

		var count int64
		db.Model(&models.Expense{}).Where("id = ?", expense.ID).Count(&count)
		if count != 0 {
			t.Error("expense still present after delete")
		}
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		expense := newExpense()
		input := &DeleteExpenseInput{ExpenseID: expense.ID}
		input.Cookie = cookieFor(t, authHandler, other.ID)

		if _, err := handler.HandleDeleteExpense(context.Background(), input); err == nil {
			t.Fatal("expected forbidden error, got nil")
		}

		var count int64
		db.Model(&models.Expense{}).Where("id = ?", expense.ID).Count(&count)
		if count != 1 {
			t.Error("expense was deleted by a non-owner")
		}
	})

	t.Run("admin can delete anyone's expense", func(t *testing.T) {
		expense := newExpense()
		input := &DeleteExpenseInput{ExpenseID: expense.ID}
		input.Cookie = cookieFor(t, authHandler, admin.ID)

		if _, err := handler.HandleDeleteExpense(context.Background(), input); err != nil {
			t.Fatalf("HandleDeleteExpense returned error: %v", err)
		}
	})

	t.Run("missing expense is 404", func(t *testing.T) {
		input := &DeleteExpenseInput{ExpenseID: "nope"}
		input.Cookie = cookieFor(t, authHandler, owner.ID)

		if _, err := handler.HandleDeleteExpense(context.Background(), input); err == nil {
			t.Fatal("expected not-found error, got nil")
		}
	})
}

func TestHandleListExpensesRequiresAuth(t *testing.T) {
	db := newTestDB(t)
	authHandler := newTestAuth(db)
	handler := NewExpenseHandler(db, authHandler)

	input := &ListExpensesInput{EventID: "ev1"}
	if _, err := handler.HandleListExpenses(context.Background(), input); err == nil {
		t.Fatal("expected error for unauthenticated request, got nil")
	}
}
