package repositories

import (
	"context"

	"github.com/FreePeak/expense-mcp-server/internal/domain/entities"
)

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// Create inserts an expense and returns its new id
	Create(ctx context.Context, expense entities.NewExpense) (int64, error)

	// List returns expenses matching the filter, newest date first
	List(ctx context.Context, filter entities.ExpenseFilter) ([]entities.Expense, error)

	// Summarize returns the summed amount per category of matching expenses
	Summarize(ctx context.Context, filter entities.ExpenseFilter) ([]entities.CategoryTotal, error)
}

// CategoryRepository provides the raw category document
type CategoryRepository interface {
	// Categories returns the document verbatim
	Categories(ctx context.Context) (string, error)
}
