package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/pena-club/pena-api/internal/auth"
	"github.com/pena-club/pena-api/internal/models"
	"gorm.io/gorm"
)

type ExpenseHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewExpenseHandler(db *gorm.DB, authHandler *auth.AuthHandler) *ExpenseHandler {
	return &ExpenseHandler{db: db, authHandler: authHandler}
}

type ListExpensesInput struct {
	auth.AuthInput
	EventID string `path:"eventId"`
}

type ListExpensesOutput struct {
	Body []models.Expense
}

func (h *ExpenseHandler) HandleListExpenses(ctx context.Context, input *ListExpensesInput) (*ListExpensesOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := h.db.Preload("User").Where("event_id = ?", input.EventID).Find(&expenses).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list expenses: " + err.Error())
	}

	return &ListExpensesOutput{Body: expenses}, nil
}

type CreateExpenseInput struct {
	auth.AuthInput
	Body struct {
		EventID     string  `json:"eventId" required:"true" doc:"Event the expense belongs to"`
		Description string  `json:"description" required:"true" minLength:"1" doc:"What was bought"`
		Amount      float64 `json:"amount" required:"true" doc:"Positive amount spent"`
	}
}

type CreateExpenseOutput struct {
	Body models.Expense
}

func (h *ExpenseHandler) HandleCreateExpense(ctx context.Context, input *CreateExpenseInput) (*CreateExpenseOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if input.Body.Amount <= 0 {
		return nil, huma.Error400BadRequest("Amount must be positive")
	}

	expense := models.Expense{
		EventID:     input.Body.EventID,
		UserID:      userID,
		Description: input.Body.Description,
		Amount:      input.Body.Amount,
	}
	if err := h.db.Create(&expense).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create expense: " + err.Error())
	}
	if err := h.db.Preload("User").First(&expense, "id = ?", expense.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load expense: " + err.Error())
	}

	return &CreateExpenseOutput{Body: expense}, nil
}

type DeleteExpenseInput struct {
	auth.AuthInput
	ExpenseID string `path:"expenseId"`
}

type DeleteExpenseOutput struct {
	Body models.Expense
}

// HandleDeleteExpense removes an expense. Only the owner of the expense or
// the admin user may do so.
func (h *ExpenseHandler) HandleDeleteExpense(ctx context.Context, input *DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var expense models.Expense
	if err := h.db.First(&expense, "id = ?", input.ExpenseID).Error; err != nil {
		return nil, huma.Error404NotFound("Expense not found")
	}

	var actor models.User
	if err := h.db.First(&actor, "id = ?", userID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}
	if expense.UserID != userID && !h.authHandler.IsAdmin(actor) {
		return nil, huma.Error403Forbidden("Only the owner or an admin can delete an expense")
	}

	if err := h.db.Delete(&expense).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete expense: " + err.Error())
	}

	return &DeleteExpenseOutput{Body: expense}, nil
}
