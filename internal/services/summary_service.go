package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/models"
)

// uncategorizedLabel groups transactions carrying no category reference.
const uncategorizedLabel = "Uncategorized"

// summaryService handles summary aggregation queries.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// monthExpr returns the SQL expression that truncates a timestamp to its
// YYYY-MM month key for the connected dialect. SQLite is used by the test
// suite, PostgreSQL in production.
func monthExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m', timestamp)"
	}
	return "to_char(date_trunc('month', timestamp), 'YYYY-MM')"
}

// MonthlySummary sums the owner's transaction amounts per calendar month.
// Row order is whatever the store yields; callers sort as needed.
// Amounts are summed in Go with decimal arithmetic rather than SQL SUM,
// which goes through float64 on the sqlite driver and loses the 2-decimal
// exactness.
func (s *summaryService) MonthlySummary(ownerID uint) ([]MonthlySummary, error) {
	expr := monthExpr(s.db)

	var rows []struct {
		Month  string
		Amount decimal.Decimal
	}
	err := s.db.Model(&models.Transaction{}).
		Select(expr + " AS month, amount").
		Where("owner_id = ?", ownerID).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, r := range rows {
		if _, seen := totals[r.Month]; !seen {
			order = append(order, r.Month)
		}
		totals[r.Month] = totals[r.Month].Add(r.Amount)
	}

	summaries := make([]MonthlySummary, 0, len(order))
	for _, month := range order {
		summaries = append(summaries, MonthlySummary{Month: month, Total: totals[month]})
	}
	return summaries, nil
}

// CategorySummary sums the owner's transaction amounts per category name.
// Transactions without a category total under the "Uncategorized" label.
// Summed in Go with decimal arithmetic, same as MonthlySummary.
func (s *summaryService) CategorySummary(ownerID uint) ([]CategorySummary, error) {
	var rows []struct {
		Category *string
		Amount   decimal.Decimal
	}
	err := s.db.Model(&models.Transaction{}).
		Select("categories.name AS category, transactions.amount AS amount").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.owner_id = ?", ownerID).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, r := range rows {
		label := uncategorizedLabel
		if r.Category != nil {
			label = *r.Category
		}
		if _, seen := totals[label]; !seen {
			order = append(order, label)
		}
		totals[label] = totals[label].Add(r.Amount)
	}

	summaries := make([]CategorySummary, 0, len(order))
	for _, label := range order {
		summaries = append(summaries, CategorySummary{Category: label, Total: totals[label]})
	}
	return summaries, nil
}
