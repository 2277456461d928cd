package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FreePeak/expense-mcp-server/internal/domain/entities"
)

// MockExpenseRepository is a mock implementation of the expense repository
type MockExpenseRepository struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockExpenseRepository) Create(ctx context.Context, expense entities.NewExpense) (int64, error) {
	args := m.Called(ctx, expense)
	return args.Get(0).(int64), args.Error(1)
}

// List mocks the List method
func (m *MockExpenseRepository) List(ctx context.Context, filter entities.ExpenseFilter) ([]entities.Expense, error) {
	args := m.Called(ctx, filter)
	expenses, _ := args.Get(0).([]entities.Expense)
	return expenses, args.Error(1)
}

// Summarize mocks the Summarize method
func (m *MockExpenseRepository) Summarize(ctx context.Context, filter entities.ExpenseFilter) ([]entities.CategoryTotal, error) {
	args := m.Called(ctx, filter)
	totals, _ := args.Get(0).([]entities.CategoryTotal)
	return totals, args.Error(1)
}

// MockCategoryRepository is a mock implementation of the category repository
type MockCategoryRepository struct {
	mock.Mock
}

// Categories mocks the Categories method
func (m *MockCategoryRepository) Categories(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
