package models

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type CategoryType string

const (
	CategoryTypeBill   CategoryType = "bill"
	CategoryTypeIncome CategoryType = "income"
)

func (t CategoryType) valid() bool {
	return t == CategoryTypeBill || t == CategoryTypeIncome
}

var hexColor = regexp.MustCompile("^#[0-9a-fA-F]{6}$")

// Category groups bills or incomes.
type Category struct {
	DefaultModel
	Type      CategoryType `gorm:"uniqueIndex:category_type_name,priority:1"`
	Name      string       `gorm:"uniqueIndex:category_type_name,priority:2"`
	Color     string
	SortOrder int
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	// New categories are sorted last within their type
	return tx.Model(&Category{}).Where(&Category{Type: c.Type}).Select("COALESCE(MAX(sort_order), -1) + 1").Row().Scan(&c.SortOrder)
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)

	return nil
}

func (c *Category) AfterSave(_ *gorm.DB) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}

	if !c.Type.valid() {
		return ErrCategoryTypeInvalid
	}

	if c.Color != "" && !hexColor.MatchString(c.Color) {
		return ErrColorInvalid
	}

	return nil
}

// checkCategory verifies that the category exists and has the expected type.
func checkCategory(tx *gorm.DB, id *uuid.UUID, expected CategoryType) error {
	if id == nil {
		return nil
	}

	var category Category
	err := tx.First(&category, id).Error
	if err != nil {
		return err
	}

	if category.Type != expected {
		return ErrCategoryTypeMismatch
	}

	return nil
}

// ReorderCategories sets the sort order of the categories of one type.
//
// The listed categories are sorted in the order given. Categories of the
// type that are not listed keep their relative order after them.
func ReorderCategories(db *gorm.DB, categoryType CategoryType, ids []uuid.UUID) ([]Category, error) {
	if !categoryType.valid() {
		return nil, ErrCategoryTypeInvalid
	}

	for i, id := range ids {
		if slices.Contains(ids[i+1:], id) {
			return nil, ErrReorderDuplicateID
		}
	}

	var ordered []Category
	err := db.Transaction(func(tx *gorm.DB) error {
		var categories []Category
		err := tx.Where(&Category{Type: categoryType}).Order("sort_order ASC, name ASC").Find(&categories).Error
		if err != nil {
			return err
		}

		byID := make(map[uuid.UUID]Category, len(categories))
		for _, c := range categories {
			byID[c.ID] = c
		}

		for _, id := range ids {
			c, ok := byID[id]
			if !ok {
				return ErrReorderCategoryNotFound
			}
			ordered = append(ordered, c)
		}

		for _, c := range categories {
			if !slices.Contains(ids, c.ID) {
				ordered = append(ordered, c)
			}
		}

		for i := range ordered {
			if ordered[i].SortOrder == i {
				continue
			}

			ordered[i].SortOrder = i
			err := tx.Model(&ordered[i]).Update("sort_order", i).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return ordered, nil
}

func (Category) Export() (json.RawMessage, error) {
	return exportAll[Category]()
}

func (Category) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[Category](tx, data)
}
