package models

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type Relationship string

const (
	RelationshipSelf    Relationship = "self"
	RelationshipSpouse  Relationship = "spouse"
	RelationshipPartner Relationship = "partner"
	RelationshipChild   Relationship = "child"
	RelationshipParent  Relationship = "parent"
	RelationshipOther   Relationship = "other"
)

func (r Relationship) valid() bool {
	switch r {
	case RelationshipSelf, RelationshipSpouse, RelationshipPartner, RelationshipChild, RelationshipParent, RelationshipOther:
		return true
	}
	return false
}

var pinFormat = regexp.MustCompile("^[0-9]{4,8}$")

// FamilyMember is a person in the household, used for insurance coverage and claims.
type FamilyMember struct {
	DefaultModel
	Name         string       `gorm:"uniqueIndex"`
	Relationship Relationship `gorm:"default:other"`
	DateOfBirth  *types.Date
	Color        string
	PINHash      string `json:"pinHash,omitempty"` // bcrypt hash of the PIN
}

func (f *FamilyMember) BeforeSave(_ *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Color = strings.TrimSpace(f.Color)

	return nil
}

func (f *FamilyMember) AfterSave(_ *gorm.DB) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrNameRequired
	}

	if !f.Relationship.valid() {
		return ErrRelationshipInvalid
	}

	if f.DateOfBirth != nil && f.DateOfBirth.After(types.Today()) {
		return ErrDateOfBirthInFuture
	}

	if f.Color != "" && !hexColor.MatchString(f.Color) {
		return ErrColorInvalid
	}

	return nil
}

// BeforeDelete removes the member from the plans covering them.
func (f *FamilyMember) BeforeDelete(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		return nil
	}

	var plans []InsurancePlan
	err := tx.Where("covered_member_ids LIKE ?", "%"+f.ID.String()+"%").Find(&plans).Error
	if err != nil {
		return err
	}

	for _, plan := range plans {
		covered := slices.DeleteFunc(slices.Clone(plan.CoveredMemberIDs), func(id uuid.UUID) bool {
			return id == f.ID
		})

		err = tx.Model(&plan).Select("CoveredMemberIDs").Updates(InsurancePlan{CoveredMemberIDs: covered}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// HasPIN reports whether a PIN is set.
func (f FamilyMember) HasPIN() bool {
	return f.PINHash != ""
}

// SetPIN hashes and stores the PIN. An empty PIN removes it.
func (f *FamilyMember) SetPIN(pin string) error {
	if pin == "" {
		f.PINHash = ""
		return nil
	}

	if !pinFormat.MatchString(pin) {
		return ErrPINInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	f.PINHash = string(hash)
	return nil
}

// VerifyPIN compares the candidate with the stored PIN.
func (f FamilyMember) VerifyPIN(pin string) error {
	if !f.HasPIN() {
		return ErrPINNotSet
	}

	err := bcrypt.CompareHashAndPassword([]byte(f.PINHash), []byte(pin))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPINMismatch
	}

	return err
}

func (FamilyMember) Export() (json.RawMessage, error) {
	return exportAll[FamilyMember]()
}

func (FamilyMember) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[FamilyMember](tx, data)
}
