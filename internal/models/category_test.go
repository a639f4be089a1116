package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/recurrence"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategorySortOrderPerType() {
	bill1 := suite.createTestCategory(models.Category{Type: models.CategoryTypeBill})
	income := suite.createTestCategory(models.Category{Type: models.CategoryTypeIncome})
	bill2 := suite.createTestCategory(models.Category{Type: models.CategoryTypeBill})

	suite.Assert().Equal(0, bill1.SortOrder)
	suite.Assert().Equal(0, income.SortOrder)
	suite.Assert().Equal(1, bill2.SortOrder)
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerType() {
	_ = suite.createTestCategory(models.Category{Name: "Utilities", Type: models.CategoryTypeBill})
	_ = suite.createTestCategory(models.Category{Name: "Utilities", Type: models.CategoryTypeIncome})

	err := models.DB.Create(&models.Category{Name: "Utilities", Type: models.CategoryTypeBill}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryValidation() {
	tests := []struct {
		name     string
		category models.Category
		err      error
	}{
		{"Name required", models.Category{Type: models.CategoryTypeBill}, models.ErrNameRequired},
		{"Invalid type", models.Category{Name: "Food", Type: "expense"}, models.ErrCategoryTypeInvalid},
		{"Invalid color", models.Category{Name: "Food", Type: models.CategoryTypeBill, Color: "red"}, models.ErrColorInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.category).Error
			assert.ErrorIs(t, err, tt.err, "Error is: %s", err)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryDeleteSetsNull() {
	category := suite.createTestCategory(models.Category{})
	day := 3
	bill := suite.createTestBill(models.Bill{
		Name:       "Internet",
		Amount:     5999,
		Rule:       recurrence.Rule{Period: recurrence.Monthly, DayOfMonth: &day},
		CategoryID: &category.ID,
	})

	suite.Require().Nil(models.DB.Delete(&category).Error)

	var reloaded models.Bill
	suite.Require().Nil(models.DB.First(&reloaded, bill.ID).Error)
	suite.Assert().Nil(reloaded.CategoryID)
}

func (suite *TestSuiteStandard) TestReorderCategories() {
	a := suite.createTestCategory(models.Category{Name: "A"})
	b := suite.createTestCategory(models.Category{Name: "B"})
	c := suite.createTestCategory(models.Category{Name: "C"})
	d := suite.createTestCategory(models.Category{Name: "D"})
	income := suite.createTestCategory(models.Category{Name: "Salary", Type: models.CategoryTypeIncome})

	ordered, err := models.ReorderCategories(models.DB, models.CategoryTypeBill, []uuid.UUID{c.ID, a.ID})
	suite.Require().Nil(err)

	names := []string{}
	for _, category := range ordered {
		names = append(names, category.Name)
	}
	suite.Assert().Equal([]string{"C", "A", "B", "D"}, names)

	var stored []models.Category
	suite.Require().Nil(models.DB.Where(&models.Category{Type: models.CategoryTypeBill}).Order("sort_order ASC").Find(&stored).Error)
	suite.Assert().Equal(c.ID, stored[0].ID)
	suite.Assert().Equal(a.ID, stored[1].ID)
	suite.Assert().Equal(b.ID, stored[2].ID)
	suite.Assert().Equal(d.ID, stored[3].ID)

	var reloaded models.Category
	suite.Require().Nil(models.DB.First(&reloaded, income.ID).Error)
	suite.Assert().Equal(0, reloaded.SortOrder)
}

func (suite *TestSuiteStandard) TestReorderCategoriesErrors() {
	a := suite.createTestCategory(models.Category{Name: "A"})
	income := suite.createTestCategory(models.Category{Name: "Salary", Type: models.CategoryTypeIncome})

	tests := []struct {
		name         string
		categoryType models.CategoryType
		ids          []uuid.UUID
		err          error
	}{
		{"Duplicate ID", models.CategoryTypeBill, []uuid.UUID{a.ID, a.ID}, models.ErrReorderDuplicateID},
		{"Unknown ID", models.CategoryTypeBill, []uuid.UUID{uuid.New()}, models.ErrReorderCategoryNotFound},
		{"Wrong type", models.CategoryTypeBill, []uuid.UUID{income.ID}, models.ErrReorderCategoryNotFound},
		{"Invalid type", "expense", []uuid.UUID{a.ID}, models.ErrCategoryTypeInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := models.ReorderCategories(models.DB, tt.categoryType, tt.ids)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
