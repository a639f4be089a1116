package models_test

import (
	"testing"

	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/internal/types"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestFamilyMemberDefaults() {
	member := suite.createTestFamilyMember(models.FamilyMember{Name: " Alex "})

	suite.Assert().Equal("Alex", member.Name)
	suite.Assert().Equal(models.RelationshipOther, member.Relationship)
	suite.Assert().False(member.HasPIN())
}

func (suite *TestSuiteStandard) TestFamilyMemberValidation() {
	tomorrow := types.Today().AddDays(1)

	tests := []struct {
		name   string
		member models.FamilyMember
		err    error
	}{
		{"Name required", models.FamilyMember{}, models.ErrNameRequired},
		{"Invalid relationship", models.FamilyMember{Name: "A", Relationship: "cousin"}, models.ErrRelationshipInvalid},
		{"Birthday in future", models.FamilyMember{Name: "B", DateOfBirth: &tomorrow}, models.ErrDateOfBirthInFuture},
		{"Invalid color", models.FamilyMember{Name: "C", Color: "#12345"}, models.ErrColorInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.member).Error
			assert.ErrorIs(t, err, tt.err, "Error is: %s", err)
		})
	}

	_ = suite.createTestFamilyMember(models.FamilyMember{Name: "Sam"})
	err := models.DB.Create(&models.FamilyMember{Name: "Sam"}).Error
	suite.Assert().ErrorIs(err, models.ErrFamilyMemberNameNotUnique)
}

func (suite *TestSuiteStandard) TestFamilyMemberPIN() {
	member := models.FamilyMember{Name: "Kim"}

	suite.Assert().ErrorIs(member.VerifyPIN("1234"), models.ErrPINNotSet)
	suite.Assert().ErrorIs(member.SetPIN("12a4"), models.ErrPINInvalid)
	suite.Assert().ErrorIs(member.SetPIN("123"), models.ErrPINInvalid)
	suite.Assert().ErrorIs(member.SetPIN("123456789"), models.ErrPINInvalid)

	suite.Require().Nil(member.SetPIN("4711"))
	suite.Assert().True(member.HasPIN())
	suite.Assert().NotEqual("4711", member.PINHash)

	member = suite.createTestFamilyMember(member)

	var reloaded models.FamilyMember
	suite.Require().Nil(models.DB.First(&reloaded, member.ID).Error)
	suite.Assert().Nil(reloaded.VerifyPIN("4711"))
	suite.Assert().ErrorIs(reloaded.VerifyPIN("4712"), models.ErrPINMismatch)

	suite.Require().Nil(reloaded.SetPIN(""))
	suite.Assert().False(reloaded.HasPIN())
}
