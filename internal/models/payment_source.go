package models

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentSourceType string

const (
	BankAccount  PaymentSourceType = "bank_account"
	CreditCard   PaymentSourceType = "credit_card"
	LineOfCredit PaymentSourceType = "line_of_credit"
	Investment   PaymentSourceType = "investment"
	Cash         PaymentSourceType = "cash"
)

// IsDebt reports whether the balance of the source is money owed.
func (t PaymentSourceType) IsDebt() bool {
	return t == CreditCard || t == LineOfCredit
}

func (t PaymentSourceType) valid() bool {
	switch t {
	case BankAccount, CreditCard, LineOfCredit, Investment, Cash:
		return true
	}
	return false
}

var lastFour = regexp.MustCompile("^[0-9]{4}$")

// PaymentSourceMetadata holds optional details about a payment source.
type PaymentSourceMetadata struct {
	Institution  string           `json:"institution,omitempty" example:"First Bank"` // Name of the bank or card issuer
	LastFour     string           `json:"lastFour,omitempty" example:"4242"`          // Last four digits of the account or card number
	CreditLimit  *int64           `json:"creditLimit,omitempty" example:"500000"`     // Credit limit in cents, only for credit cards and lines of credit
	InterestRate *decimal.Decimal `json:"interestRate,omitempty" example:"19.99"`     // Interest rate in percent
}

// PaymentSource is an account that bills are paid from and incomes are paid to.
type PaymentSource struct {
	DefaultModel
	Name                string                `gorm:"uniqueIndex"`
	Type                PaymentSourceType     `gorm:"default:bank_account"`
	Balance             int64                 // in cents
	Metadata            PaymentSourceMetadata `gorm:"serializer:json;type:text"`
	ExcludeFromLeftover bool
	SortOrder           int
	Archived            bool
}

func (p *PaymentSource) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	// New sources are sorted last
	return tx.Model(&PaymentSource{}).Select("COALESCE(MAX(sort_order), -1) + 1").Row().Scan(&p.SortOrder)
}

func (p *PaymentSource) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Metadata.Institution = strings.TrimSpace(p.Metadata.Institution)
	p.Metadata.LastFour = strings.TrimSpace(p.Metadata.LastFour)

	return nil
}

func (p *PaymentSource) AfterSave(_ *gorm.DB) error {
	return p.validate()
}

func (p PaymentSource) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}

	if !p.Type.valid() {
		return ErrPaymentSourceTypeInvalid
	}

	m := p.Metadata
	if m.LastFour != "" && !lastFour.MatchString(m.LastFour) {
		return ErrLastFourInvalid
	}

	if m.CreditLimit != nil {
		if !p.Type.IsDebt() {
			return ErrCreditLimitNotAllowed
		}

		if *m.CreditLimit < 0 {
			return ErrCreditLimitNegative
		}
	}

	if m.InterestRate != nil && (m.InterestRate.IsNegative() || m.InterestRate.GreaterThan(decimal.NewFromInt(100))) {
		return ErrInterestRateInvalid
	}

	return nil
}

// AvailableCredit returns the unused credit in cents for debt accounts
// with a credit limit. The balance of debt accounts is the amount owed.
func (p PaymentSource) AvailableCredit() *int64 {
	if !p.Type.IsDebt() || p.Metadata.CreditLimit == nil {
		return nil
	}

	available := *p.Metadata.CreditLimit - p.Balance
	return &available
}

// Utilization returns the share of the credit limit in use in percent.
func (p PaymentSource) Utilization() *decimal.Decimal {
	if !p.Type.IsDebt() || p.Metadata.CreditLimit == nil || *p.Metadata.CreditLimit == 0 {
		return nil
	}

	u := decimal.NewFromInt(p.Balance).Div(decimal.NewFromInt(*p.Metadata.CreditLimit)).Mul(decimal.NewFromInt(100)).Round(2)
	return &u
}

func (PaymentSource) Export() (json.RawMessage, error) {
	return exportAll[PaymentSource]()
}

func (PaymentSource) Import(tx *gorm.DB, data json.RawMessage) error {
	return importAll[PaymentSource](tx, data)
}
