package models

import (
	"encoding/json"
	"fmt"
	"reflect"

	"gorm.io/gorm"
)

// Model is implemented by every resource that is part of a backup.
type Model interface {
	Export() (json.RawMessage, error)      // All instances of this model for export
	Import(*gorm.DB, json.RawMessage) error // Inserts exported instances unchanged
}

// Registry lists all models in an order that satisfies foreign keys
// when inserting front to back and when deleting back to front.
var Registry = []Model{
	PaymentSource{},
	Category{},
	FamilyMember{},
	SavingsGoal{},
	SavingsContribution{},
	Bill{},
	Income{},
	InsurancePlan{},
	InsuranceClaim{},
	Todo{},
	BudgetMonth{},
	MonthBill{},
	MonthIncome{},
	MonthExpense{},
	MonthTodo{},
}

// Name returns the name a model is exported with.
func Name(m Model) string {
	return reflect.TypeOf(m).Name()
}

// Wipe permanently deletes all resources.
func Wipe(tx *gorm.DB) error {
	for i := len(Registry) - 1; i >= 0; i-- {
		model := Registry[i]

		err := tx.Session(&gorm.Session{SkipHooks: true}).Where("true").Delete(&model).Error
		if err != nil {
			return fmt.Errorf("deleting all %s resources failed: %w", Name(model), err)
		}
	}

	return nil
}

func exportAll[T any]() (json.RawMessage, error) {
	var resources []T
	err := DB.Order("created_at ASC").Find(&resources).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&resources)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// importAll inserts resources without running hooks so that IDs,
// timestamps and the state of locked months are kept.
func importAll[T any](tx *gorm.DB, data json.RawMessage) error {
	var resources []T
	err := json.Unmarshal(data, &resources)
	if err != nil {
		var model T
		return fmt.Errorf("the %T resources in the backup could not be parsed: %w", model, err)
	}

	if len(resources) == 0 {
		return nil
	}

	return tx.Session(&gorm.Session{SkipHooks: true}).CreateInBatches(&resources, 100).Error
}
