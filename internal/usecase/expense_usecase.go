package usecase

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/FreePeak/expense-mcp-server/internal/domain/entities"
	"github.com/FreePeak/expense-mcp-server/internal/domain/repositories"
	"github.com/FreePeak/expense-mcp-server/internal/logger"
)

// FilterMode decides what an unset filter value means
type FilterMode string

const (
	// MatchNone makes any unset filter value produce an empty result
	MatchNone FilterMode = "none"
	// MatchAll treats an unset filter value as unbounded
	MatchAll FilterMode = "all"
)

// StatusOK is reported for a successful insert
const StatusOK = "ok"

// AddExpenseResult is returned by AddExpense
type AddExpenseResult struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

// ExpenseView is an expense as shown to callers. Amount is the display
// string; AmountValue keeps the number for computation.
type ExpenseView struct {
	ID          int64   `json:"ID"`
	Date        string  `json:"Date"`
	Amount      string  `json:"Amount"`
	AmountValue float64 `json:"AmountValue"`
	Category    string  `json:"Category"`
	Subcategory string  `json:"Subcategory"`
	Note        string  `json:"Note"`
}

// ExpenseOptions configures an ExpenseUseCase
type ExpenseOptions struct {
	CurrencySymbol string
	FilterMode     FilterMode
}

// ExpenseUseCase implements the expense store operations
type ExpenseUseCase struct {
	repo       repositories.ExpenseRepository
	categories repositories.CategoryRepository
	symbol     string
	mode       FilterMode
}

// NewExpenseUseCase creates a new expense use case
func NewExpenseUseCase(repo repositories.ExpenseRepository, categories repositories.CategoryRepository, opts ExpenseOptions) *ExpenseUseCase {
	mode := opts.FilterMode
	if mode == "" {
		mode = MatchNone
	}
	return &ExpenseUseCase{
		repo:       repo,
		categories: categories,
		symbol:     opts.CurrencySymbol,
		mode:       mode,
	}
}

// AddExpense stores a new expense. Values are persisted as given.
func (uc *ExpenseUseCase) AddExpense(ctx context.Context, expense entities.NewExpense) (*AddExpenseResult, error) {
	id, err := uc.repo.Create(ctx, expense)
	if err != nil {
		return nil, err
	}
	logger.Debug("Added expense %d (%s, %s)", id, expense.Date, expense.Category)
	return &AddExpenseResult{Status: StatusOK, ID: id}, nil
}

// ListExpenses returns expenses dated within [StartDate, EndDate], newest first
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, startDate, endDate *string) ([]ExpenseView, error) {
	views := make([]ExpenseView, 0)
	if uc.mode == MatchNone && (startDate == nil || endDate == nil) {
		return views, nil
	}

	expenses, err := uc.repo.List(ctx, entities.ExpenseFilter{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		views = append(views, ExpenseView{
			ID:          e.ID,
			Date:        e.Date,
			Amount:      FormatAmount(uc.symbol, e.Amount),
			AmountValue: e.Amount,
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Note:        e.Note,
		})
	}
	return views, nil
}

// Summarize returns per-category totals of expenses in the date range
func (uc *ExpenseUseCase) Summarize(ctx context.Context, filter entities.ExpenseFilter) ([]entities.CategoryTotal, error) {
	if uc.mode == MatchNone && (filter.StartDate == nil || filter.EndDate == nil || filter.Category == nil) {
		return make([]entities.CategoryTotal, 0), nil
	}
	return uc.repo.Summarize(ctx, filter)
}

// GetCategories returns the category document verbatim
func (uc *ExpenseUseCase) GetCategories(ctx context.Context) (string, error) {
	return uc.categories.Categories(ctx)
}

// FormatAmount renders an amount the way a REAL column is rendered as text:
// up to 15 significant digits, no rounding to cents, and at least one
// fractional digit.
func FormatAmount(symbol string, amount float64) string {
	d, err := decimal.NewFromString(strconv.FormatFloat(amount, 'g', 15, 64))
	if err != nil {
		return symbol + strconv.FormatFloat(amount, 'g', -1, 64)
	}
	if d.IsInteger() {
		return symbol + d.StringFixed(1)
	}
	return symbol + d.String()
}
