package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// BudgetMonth is the snapshot of the bills, incomes, expenses and todos
// of one calendar month.
type BudgetMonth struct {
	DefaultModel
	Month    types.Month `gorm:"uniqueIndex"`
	Locked   bool
	LockedAt *time.Time
	Note     string
}

func (m *BudgetMonth) BeforeSave(_ *gorm.DB) error {
	m.Note = strings.TrimSpace(m.Note)
	return nil
}

// FindMonth returns the snapshot for the month.
func FindMonth(db *gorm.DB, month types.Month) (BudgetMonth, error) {
	var m BudgetMonth
	err := db.Where(&BudgetMonth{Month: month}).First(&m).Error
	return m, err
}

// CreateMonth creates the snapshot for the month with an item for every
// occurrence of active bills, incomes and todos.
func CreateMonth(db *gorm.DB, month types.Month, note string) (BudgetMonth, error) {
	m := BudgetMonth{Month: month, Note: note}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&m).Error
		if err != nil {
			return err
		}

		_, err = m.sync(tx)
		return err
	})
	if err != nil {
		return BudgetMonth{}, err
	}

	return m, nil
}

// DeleteMonth deletes the snapshot and all of its items.
func DeleteMonth(db *gorm.DB, m BudgetMonth) error {
	if m.Locked {
		return ErrMonthLocked
	}

	return db.Delete(&m).Error
}

// Lock makes the snapshot read-only.
func (m *BudgetMonth) Lock(db *gorm.DB) error {
	if m.Locked {
		return ErrMonthAlreadyLocked
	}

	now := time.Now().UTC()
	return db.Model(m).Select("Locked", "LockedAt").Updates(BudgetMonth{Locked: true, LockedAt: &now}).Error
}

// Unlock makes the snapshot editable again.
func (m *BudgetMonth) Unlock(db *gorm.DB) error {
	if !m.Locked {
		return ErrMonthNotLocked
	}

	return db.Model(m).Updates(map[string]any{"locked": false, "locked_at": nil}).Error
}

// SyncResult counts the items added by a sync.
type SyncResult struct {
	Bills   int `json:"bills" example:"2"`   // Bills added
	Incomes int `json:"incomes" example:"0"` // Incomes added
	Todos   int `json:"todos" example:"1"`   // Todos added
}

// Sync adds the occurrences of active bills, incomes and todos that the
// snapshot does not contain yet. Existing items are not changed.
func (m *BudgetMonth) Sync(db *gorm.DB) (SyncResult, error) {
	if m.Locked {
		return SyncResult{}, ErrMonthLocked
	}

	var result SyncResult
	err := db.Transaction(func(tx *gorm.DB) (err error) {
		result, err = m.sync(tx)
		return err
	})

	return result, err
}

// occurrenceKey identifies the item generated for one occurrence.
type occurrenceKey struct {
	id   uuid.UUID
	date string
}

func (m BudgetMonth) sync(tx *gorm.DB) (SyncResult, error) {
	var result SyncResult

	items, err := m.Items(tx)
	if err != nil {
		return result, err
	}

	existing := make(map[occurrenceKey]bool)
	for _, b := range items.Bills {
		if b.BillID != nil {
			existing[occurrenceKey{*b.BillID, b.DueDate.String()}] = true
		}
	}
	for _, i := range items.Incomes {
		if i.IncomeID != nil {
			existing[occurrenceKey{*i.IncomeID, i.PayDate.String()}] = true
		}
	}
	for _, t := range items.Todos {
		if t.TodoID != nil {
			existing[occurrenceKey{*t.TodoID, t.DueDate.String()}] = true
		}
	}

	var bills []Bill
	err = tx.Where("archived = ?", false).Order("name ASC").Find(&bills).Error
	if err != nil {
		return result, err
	}

	for _, bill := range bills {
		for _, date := range bill.Occurrences(m.Month) {
			if existing[occurrenceKey{bill.ID, date.String()}] {
				continue
			}

			err = tx.Create(&MonthBill{
				BudgetMonthID:   m.ID,
				BillID:          &bill.ID,
				Name:            bill.Name,
				Amount:          bill.Amount,
				DueDate:         date,
				PaymentSourceID: bill.PaymentSourceID,
				CategoryID:      bill.CategoryID,
			}).Error
			if err != nil {
				return result, err
			}
			result.Bills++
		}
	}

	var incomes []Income
	err = tx.Where("archived = ?", false).Order("name ASC").Find(&incomes).Error
	if err != nil {
		return result, err
	}

	for _, income := range incomes {
		for _, date := range income.Occurrences(m.Month) {
			if existing[occurrenceKey{income.ID, date.String()}] {
				continue
			}

			err = tx.Create(&MonthIncome{
				BudgetMonthID:   m.ID,
				IncomeID:        &income.ID,
				Name:            income.Name,
				Amount:          income.Amount,
				PayDate:         date,
				PaymentSourceID: income.PaymentSourceID,
				CategoryID:      income.CategoryID,
			}).Error
			if err != nil {
				return result, err
			}
			result.Incomes++
		}
	}

	var todos []Todo
	err = tx.Where("archived = ?", false).Order("title ASC").Find(&todos).Error
	if err != nil {
		return result, err
	}

	for _, todo := range todos {
		for _, date := range todo.DatesIn(m.Month) {
			if existing[occurrenceKey{todo.ID, date.String()}] {
				continue
			}

			err = tx.Create(&MonthTodo{
				BudgetMonthID: m.ID,
				TodoID:        &todo.ID,
				Title:         todo.Title,
				DueDate:       date,
			}).Error
			if err != nil {
				return result, err
			}
			result.Todos++
		}
	}

	return result, nil
}

// MonthItems are all items of a snapshot, sorted by date.
type MonthItems struct {
	Bills    []MonthBill
	Incomes  []MonthIncome
	Expenses []MonthExpense
	Todos    []MonthTodo
}

// Items loads all items of the snapshot.
func (m BudgetMonth) Items(db *gorm.DB) (MonthItems, error) {
	var items MonthItems

	err := db.Where(&MonthBill{BudgetMonthID: m.ID}).Order("due_date ASC, name ASC").Find(&items.Bills).Error
	if err != nil {
		return MonthItems{}, err
	}

	err = db.Where(&MonthIncome{BudgetMonthID: m.ID}).Order("pay_date ASC, name ASC").Find(&items.Incomes).Error
	if err != nil {
		return MonthItems{}, err
	}

	err = db.Where(&MonthExpense{BudgetMonthID: m.ID}).Order("date ASC, name ASC").Find(&items.Expenses).Error
	if err != nil {
		return MonthItems{}, err
	}

	err = db.Where(&MonthTodo{BudgetMonthID: m.ID}).Order("due_date ASC, title ASC").Find(&items.Todos).Error
	if err != nil {
		return MonthItems{}, err
	}

	return items, nil
}

// MonthSummary sums up a snapshot. All amounts are in cents.
//
// Paid bills and received incomes count with their actual amount when
// one is set.
type MonthSummary struct {
	ExpectedIncome   int64 `json:"expectedIncome" example:"520000"`   // Sum of all incomes of the month
	ReceivedIncome   int64 `json:"receivedIncome" example:"260000"`   // Sum of received incomes
	TotalBills       int64 `json:"totalBills" example:"310000"`       // Sum of all bills of the month
	PaidBills        int64 `json:"paidBills" example:"120000"`        // Sum of paid bills
	UnpaidBills      int64 `json:"unpaidBills" example:"190000"`      // Total bills minus paid bills
	TotalExpenses    int64 `json:"totalExpenses" example:"45000"`     // Sum of ad-hoc expenses
	Leftover         int64 `json:"leftover" example:"165000"`         // Expected income minus bills and expenses
	AvailableFunds   int64 `json:"availableFunds" example:"830000"`   // Balance of active sources that are not debt and not excluded from leftover
	ProjectedBalance int64 `json:"projectedBalance" example:"900000"` // Available funds plus outstanding income minus unpaid bills
	TodosOpen        int   `json:"todosOpen" example:"2"`             // Todos not completed
}

// Summary calculates the summary of the snapshot.
func (m BudgetMonth) Summary(db *gorm.DB, items MonthItems) (MonthSummary, error) {
	var s MonthSummary

	for _, i := range items.Incomes {
		amount := effective(i.Amount, i.ActualAmount, i.Received)
		s.ExpectedIncome += amount
		if i.Received {
			s.ReceivedIncome += amount
		}
	}

	for _, b := range items.Bills {
		amount := effective(b.Amount, b.ActualAmount, b.Paid)
		s.TotalBills += amount
		if b.Paid {
			s.PaidBills += amount
		}
	}

	for _, e := range items.Expenses {
		s.TotalExpenses += e.Amount
	}

	for _, t := range items.Todos {
		if !t.Completed {
			s.TodosOpen++
		}
	}

	var sources []PaymentSource
	err := db.Where("archived = ? AND exclude_from_leftover = ?", false, false).Find(&sources).Error
	if err != nil {
		return MonthSummary{}, err
	}

	for _, source := range sources {
		if !source.Type.IsDebt() {
			s.AvailableFunds += source.Balance
		}
	}

	s.UnpaidBills = s.TotalBills - s.PaidBills
	s.Leftover = s.ExpectedIncome - s.TotalBills - s.TotalExpenses
	s.ProjectedBalance = s.AvailableFunds + s.ExpectedIncome - s.ReceivedIncome - s.UnpaidBills

	return s, nil
}

func effective(amount int64, actual *int64, settled bool) int64 {
	if settled && actual != nil {
		return *actual
	}
	return amount
}

// SettledDate returns the date an item was paid, received or completed.
// Settled items without a date default to today, open items have none.
func SettledDate(settled bool, date *types.Date) *types.Date {
	if !settled {
		return nil
	}

	if date == nil || date.IsZero() {
		today := types.Today()
		return &today
	}

	return date
}

// checkUnlocked fails when the snapshot with the id is locked.
func checkUnlocked(tx *gorm.DB, id uuid.UUID) (BudgetMonth, error) {
	var m BudgetMonth
	err := tx.First(&m, id).Error
	if err != nil {
		return BudgetMonth{}, err
	}

	if m.Locked {
		return BudgetMonth{}, ErrMonthLocked
	}

	return m, nil
}

func (BudgetMonth) Export() (json.RawMessage, error) {
	return exportAll[BudgetMonth]()
}

func (BudgetMonth) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[BudgetMonth](tx, data)
}
