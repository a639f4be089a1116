package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrReferenceInvalid = errors.New("a referenced resource does not exist")
	ErrNameRequired     = errors.New("the name must not be empty")
)

// Payment source errors
var (
	ErrPaymentSourceNameNotUnique = errors.New("the payment source name must be unique")
	ErrPaymentSourceTypeInvalid   = errors.New("the payment source type must be one of bank_account, credit_card, line_of_credit, investment, cash")
	ErrCreditLimitNotAllowed      = errors.New("a credit limit can only be set for credit cards and lines of credit")
	ErrCreditLimitNegative        = errors.New("the credit limit must not be negative")
	ErrInterestRateInvalid        = errors.New("the interest rate must be between 0 and 100 percent")
	ErrLastFourInvalid            = errors.New("the last four digits must be exactly four digits")
)

// Category errors
var (
	ErrCategoryNameNotUnique   = errors.New("the category name must be unique for the category type")
	ErrCategoryTypeInvalid     = errors.New("the category type must be bill or income")
	ErrColorInvalid            = errors.New("the color must be a hex color in the format #RRGGBB")
	ErrCategoryTypeMismatch    = errors.New("the category has the wrong type for this resource")
	ErrReorderDuplicateID      = errors.New("the category order must not contain an ID more than once")
	ErrReorderCategoryNotFound = errors.New("the category order contains an ID that is not a category of this type")
)

// Bill and income errors
var (
	ErrAmountNotPositive     = errors.New("the amount must be larger than zero")
	ErrSavingsGoalBillExists = errors.New("the savings goal already has a bill")
)

// Family member errors
var (
	ErrFamilyMemberNameNotUnique = errors.New("the family member name must be unique")
	ErrRelationshipInvalid       = errors.New("the relationship must be one of self, spouse, partner, child, parent, other")
	ErrDateOfBirthInFuture       = errors.New("the date of birth must not be in the future")
	ErrPINInvalid                = errors.New("the PIN must consist of 4 to 8 digits")
	ErrPINMismatch               = errors.New("the PIN is not correct")
	ErrPINNotSet                 = errors.New("the family member does not have a PIN")
)

// Insurance errors
var (
	ErrPlanTypeInvalid          = errors.New("the plan type must be one of health, dental, vision, life, auto, home, other")
	ErrPremiumPeriodInvalid     = errors.New("the premium period must be a valid billing period")
	ErrInsuranceAmountNegative  = errors.New("insurance amounts must not be negative")
	ErrDeductibleAboveMax       = errors.New("the deductible must not be larger than the out of pocket maximum")
	ErrCoveredMemberInvalid     = errors.New("a covered family member does not exist")
	ErrClaimDescriptionRequired = errors.New("the claim description must not be empty")
	ErrClaimStatusInvalid       = errors.New("the claim status must be one of draft, submitted, in_review, approved, denied, paid")
	ErrServiceDateRequired      = errors.New("the service date is required")
	ErrServiceDateInFuture      = errors.New("the service date must not be in the future")
	ErrCoveredAboveBilled       = errors.New("the covered amount must not be larger than the billed amount")
	ErrSubmittedDateRequired    = errors.New("the submitted date is required for claims that are not drafts")
	ErrSubmittedBeforeService   = errors.New("the submitted date must not be before the service date")
	ErrMemberNotCovered         = errors.New("the family member is not covered by the plan")
)

// Todo errors
var (
	ErrTodoTitleRequired     = errors.New("the title must not be empty")
	ErrTodoScheduleRequired  = errors.New("a todo needs either a recurrence or a due date")
	ErrTodoScheduleAmbiguous = errors.New("a todo can have either a recurrence or a due date, not both")
)

// Savings goal errors
var (
	ErrGoalStatusInvalid       = errors.New("the status must be one of active, paused, completed")
	ErrSavedAmountNegative     = errors.New("the saved amount must not be negative")
	ErrTargetDateRequired      = errors.New("the target date is required")
	ErrContributionNotPositive = errors.New("the contribution must be larger than zero")
)

// Month errors
var (
	ErrMonthExists           = errors.New("a snapshot for this month already exists")
	ErrMonthLocked           = errors.New("the month is locked and cannot be changed")
	ErrMonthNotLocked        = errors.New("the month is not locked")
	ErrMonthAlreadyLocked    = errors.New("the month is already locked")
	ErrExpenseDateNotInMonth = errors.New("the expense date must be within the month")
	ErrActualAmountNegative  = errors.New("the actual amount must not be negative")
	ErrMonthActionInvalid    = errors.New("the action must be one of create, lock, unlock, delete")
)
