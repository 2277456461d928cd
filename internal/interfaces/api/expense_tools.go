package api

import (
	"context"

	"github.com/FreePeak/expense-mcp-server/internal/domain/entities"
	"github.com/FreePeak/expense-mcp-server/internal/usecase"
	"github.com/FreePeak/expense-mcp-server/pkg/tools"
)

// CategoriesURI addresses the category list resource
const CategoriesURI = "expense://categories"

// ExpenseHandler exposes the expense use case as tools and resources
type ExpenseHandler struct {
	useCase *usecase.ExpenseUseCase
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(useCase *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{useCase: useCase}
}

// Register adds the expense tools and the category resource to registry
func (h *ExpenseHandler) Register(registry *tools.Registry) error {
	for _, tool := range []*tools.Tool{h.addExpenseTool(), h.listExpensesTool(), h.summarizeTool()} {
		if err := registry.RegisterTool(tool); err != nil {
			return err
		}
	}
	return registry.RegisterResource(&tools.Resource{
		URI:         CategoriesURI,
		Name:        "get_categories",
		Description: "JSON list of expense categories",
		MIMEType:    "application/json",
		Read:        h.useCase.GetCategories,
	})
}

func (h *ExpenseHandler) addExpenseTool() *tools.Tool {
	return &tools.Tool{
		Name:        "add_expense",
		Description: "Add a new expense to the database. Returns the status and the id of the new expense.",
		Params: []tools.Param{
			{Name: "date", Type: tools.TypeString, Description: "Date of the expense, YYYY-MM-DD", Required: true},
			{Name: "amount", Type: tools.TypeNumber, Description: "Amount of the expense", Required: true},
			{Name: "category", Type: tools.TypeString, Description: "Category of the expense", Required: true},
			{Name: "subcategory", Type: tools.TypeString, Description: "Subcategory of the expense", Default: ""},
			{Name: "note", Type: tools.TypeString, Description: "Note about the expense", Default: ""},
		},
		Handler: h.addExpense,
	}
}

func (h *ExpenseHandler) addExpense(ctx context.Context, args tools.Arguments) (interface{}, error) {
	date, err := args.String("date")
	if err != nil {
		return nil, err
	}
	amount, err := args.Float("amount")
	if err != nil {
		return nil, err
	}
	category, err := args.String("category")
	if err != nil {
		return nil, err
	}
	subcategory, err := args.StringOr("subcategory", "")
	if err != nil {
		return nil, err
	}
	note, err := args.StringOr("note", "")
	if err != nil {
		return nil, err
	}

	return h.useCase.AddExpense(ctx, entities.NewExpense{
		Date:        date,
		Amount:      amount,
		Category:    category,
		Subcategory: subcategory,
		Note:        note,
	})
}

func (h *ExpenseHandler) listExpensesTool() *tools.Tool {
	return &tools.Tool{
		Name:        "list_expenses",
		Description: "List expenses dated between start_date and end_date (inclusive), newest first.",
		Params: []tools.Param{
			{Name: "start_date", Type: tools.TypeString, Description: "Start date, YYYY-MM-DD"},
			{Name: "end_date", Type: tools.TypeString, Description: "End date, YYYY-MM-DD"},
		},
		Handler: h.listExpenses,
	}
}

func (h *ExpenseHandler) listExpenses(ctx context.Context, args tools.Arguments) (interface{}, error) {
	start, err := args.OptionalString("start_date")
	if err != nil {
		return nil, err
	}
	end, err := args.OptionalString("end_date")
	if err != nil {
		return nil, err
	}
	return h.useCase.ListExpenses(ctx, start, end)
}

func (h *ExpenseHandler) summarizeTool() *tools.Tool {
	return &tools.Tool{
		Name:        "summarize",
		Description: "Summarize expenses by category between start_date and end_date (inclusive).",
		Params: []tools.Param{
			{Name: "start_date", Type: tools.TypeString, Description: "Start date, YYYY-MM-DD"},
			{Name: "end_date", Type: tools.TypeString, Description: "End date, YYYY-MM-DD"},
			{Name: "category", Type: tools.TypeString, Description: "Category to total"},
		},
		Handler: h.summarize,
	}
}

func (h *ExpenseHandler) summarize(ctx context.Context, args tools.Arguments) (interface{}, error) {
	var (
		filter entities.ExpenseFilter
		err    error
	)
	if filter.StartDate, err = args.OptionalString("start_date"); err != nil {
		return nil, err
	}
	if filter.EndDate, err = args.OptionalString("end_date"); err != nil {
		return nil, err
	}
	if filter.Category, err = args.OptionalString("category"); err != nil {
		return nil, err
	}
	return h.useCase.Summarize(ctx, filter)
}
