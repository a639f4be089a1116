package models_test

import (
	"testing"

	"github.com/ledgerline/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPaymentSourceTrimWhitespace() {
	source := suite.createTestPaymentSource(models.PaymentSource{
		Name: " Checking \t",
		Metadata: models.PaymentSourceMetadata{
			Institution: "  First Bank ",
		},
	})

	suite.Assert().Equal("Checking", source.Name)
	suite.Assert().Equal("First Bank", source.Metadata.Institution)
	suite.Assert().Equal(models.BankAccount, source.Type)
}

func (suite *TestSuiteStandard) TestPaymentSourceSortOrder() {
	first := suite.createTestPaymentSource(models.PaymentSource{})
	second := suite.createTestPaymentSource(models.PaymentSource{})

	suite.Assert().Equal(0, first.SortOrder)
	suite.Assert().Equal(1, second.SortOrder)
}

func (suite *TestSuiteStandard) TestPaymentSourceNameNotUnique() {
	_ = suite.createTestPaymentSource(models.PaymentSource{Name: "Wallet", Type: models.Cash})

	err := models.DB.Create(&models.PaymentSource{Name: "Wallet"}).Error
	suite.Assert().ErrorIs(err, models.ErrPaymentSourceNameNotUnique)
}

func (suite *TestSuiteStandard) TestPaymentSourceValidation() {
	limit := int64(100000)
	negative := int64(-1)
	rate := decimal.NewFromFloat(19.99)
	badRate := decimal.NewFromInt(101)

	tests := []struct {
		name   string
		source models.PaymentSource
		err    error
	}{
		{"Name required", models.PaymentSource{}, models.ErrNameRequired},
		{"Invalid type", models.PaymentSource{Name: "A", Type: "piggy_bank"}, models.ErrPaymentSourceTypeInvalid},
		{"Last four too short", models.PaymentSource{Name: "B", Metadata: models.PaymentSourceMetadata{LastFour: "123"}}, models.ErrLastFourInvalid},
		{"Credit limit on bank account", models.PaymentSource{Name: "C", Metadata: models.PaymentSourceMetadata{CreditLimit: &limit}}, models.ErrCreditLimitNotAllowed},
		{"Negative credit limit", models.PaymentSource{Name: "D", Type: models.CreditCard, Metadata: models.PaymentSourceMetadata{CreditLimit: &negative}}, models.ErrCreditLimitNegative},
		{"Interest rate above 100", models.PaymentSource{Name: "E", Type: models.CreditCard, Metadata: models.PaymentSourceMetadata{InterestRate: &badRate}}, models.ErrInterestRateInvalid},
		{"Valid credit card", models.PaymentSource{Name: "F", Type: models.CreditCard, Metadata: models.PaymentSourceMetadata{LastFour: "4242", CreditLimit: &limit, InterestRate: &rate}}, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.source).Error
			if tt.err == nil {
				assert.Nil(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err, "Error is: %s", err)
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentSourceAvailableCredit() {
	limit := int64(500000)

	card := models.PaymentSource{Type: models.CreditCard, Balance: 125000, Metadata: models.PaymentSourceMetadata{CreditLimit: &limit}}
	suite.Require().NotNil(card.AvailableCredit())
	suite.Assert().Equal(int64(375000), *card.AvailableCredit())
	suite.Assert().True(decimal.NewFromInt(25).Equal(*card.Utilization()))

	bank := models.PaymentSource{Type: models.BankAccount, Balance: 125000}
	suite.Assert().Nil(bank.AvailableCredit())
	suite.Assert().Nil(bank.Utilization())
}
