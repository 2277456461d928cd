package entities

// Expense is a persisted expense row. Rows are never updated or deleted.
type Expense struct {
	ID          int64
	Date        string
	Amount      float64
	Category    string
	Subcategory string
	Note        string
}

// NewExpense carries the caller-supplied fields of an expense to insert
type NewExpense struct {
	Date        string
	Amount      float64
	Category    string
	Subcategory string
	Note        string
}

// ExpenseFilter selects expenses. A nil field places no predicate on its column.
type ExpenseFilter struct {
	StartDate *string
	EndDate   *string
	Category  *string
}

// CategoryTotal is the summed amount of one category
type CategoryTotal struct {
	Category string  `json:"Category"`
	Amount   float64 `json:"Amount"`
}
