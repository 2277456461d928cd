package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/FreePeak/expense-mcp-server/internal/domain/entities"
	"github.com/FreePeak/expense-mcp-server/internal/logger"
	"github.com/FreePeak/expense-mcp-server/pkg/db"
)

const insertExpenseSQL = `INSERT INTO expenses (date, amount, category, subcategory, note) VALUES (?, ?, ?, ?, ?)`

// ExpenseRepository implements repositories.ExpenseRepository on a SQL database
type ExpenseRepository struct {
	db db.Database
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(database db.Database) *ExpenseRepository {
	return &ExpenseRepository{db: database}
}

// Create inserts one expense in its own transaction. The row only becomes
// visible to other callers once the transaction commits.
func (r *ExpenseRepository) Create(ctx context.Context, expense entities.NewExpense) (id int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				logger.Warn("Failed to roll back expense insert: %v", rbErr)
			}
		}
	}()

	args := []interface{}{expense.Date, expense.Amount, expense.Category, expense.Subcategory, expense.Note}
	dialect := r.db.Dialect()

	if dialect.SupportsReturning() {
		query := dialect.Rebind(insertExpenseSQL + " RETURNING id")
		if err = tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert expense: %w", err)
		}
	} else {
		var res sql.Result
		res, err = tx.ExecContext(ctx, dialect.Rebind(insertExpenseSQL), args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert expense: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read expense id: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit expense: %w", err)
	}
	return id, nil
}

// List returns the expenses matching filter ordered by date descending
func (r *ExpenseRepository) List(ctx context.Context, filter entities.ExpenseFilter) ([]entities.Expense, error) {
	where, args := buildWhere(filter)
	query := "SELECT id, date, amount, category, COALESCE(subcategory, ''), COALESCE(note, '') FROM expenses" +
		where + " ORDER BY date DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]entities.Expense, 0)
	for rows.Next() {
		var e entities.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Amount, &e.Category, &e.Subcategory, &e.Note); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Summarize returns one total per category of the expenses matching filter
func (r *ExpenseRepository) Summarize(ctx context.Context, filter entities.ExpenseFilter) ([]entities.CategoryTotal, error) {
	where, args := buildWhere(filter)
	query := "SELECT category, SUM(amount) FROM expenses" + where + " GROUP BY category ORDER BY category"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}
	defer rows.Close()

	totals := make([]entities.CategoryTotal, 0)
	for rows.Next() {
		var total entities.CategoryTotal
		if err := rows.Scan(&total.Category, &total.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to summarize expenses: %w", err)
	}
	return totals, nil
}

// buildWhere turns the set fields of filter into a WHERE clause.
// Date bounds are inclusive on both ends.
func buildWhere(filter entities.ExpenseFilter) (string, []interface{}) {
	var (
		predicates []string
		args       []interface{}
	)
	if filter.StartDate != nil {
		predicates = append(predicates, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		predicates = append(predicates, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Category != nil {
		predicates = append(predicates, "category = ?")
		args = append(args, *filter.Category)
	}
	if len(predicates) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(predicates, " AND "), args
}
