package v1_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/ledgerline/backend/internal/backup"
	v1 "github.com/ledgerline/backend/internal/controllers/v1"
	"github.com/ledgerline/backend/internal/models"
	"github.com/ledgerline/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const restoreURL = "http://example.com/v1/backup?confirm=yes-replace-everything"

// TestBackup verifies the backup document.
//
// The contents of the data fields are tested with the Export() methods
// of the models.
func (suite *TestSuiteStandard) TestBackup() {
	t := suite.T()

	source := createTestPaymentSource(t, v1.PaymentSourceEditable{})
	bill := createTestBill(t, v1.BillEditable{PaymentSourceID: &source.Data.ID})

	r := test.Request(t, http.MethodGet, "http://example.com/v1/backup", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	assert.Contains(t, r.Header().Get("Content-Disposition"), "ledgerline-backup-")

	var b backup.Backup
	test.DecodeResponse(t, &r, &b)
	assert.Equal(t, "0.0.0", b.Version)
	assert.Len(t, b.Data, len(models.Registry), "Number of models in backup does not match registry")

	var bills []models.Bill
	require.Nil(t, json.Unmarshal(b.Data["Bill"], &bills))
	require.Len(t, bills, 1)
	assert.Equal(t, bill.Data.ID, bills[0].ID)
	assert.Equal(t, &source.Data.ID, bills[0].PaymentSourceID)
}

func (suite *TestSuiteStandard) TestBackupInclude() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/backup?include=Bill&include=Month*", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var b backup.Backup
	test.DecodeResponse(suite.T(), &r, &b)

	names := make([]string, 0, len(b.Data))
	for name := range b.Data {
		names = append(names, name)
	}
	assert.ElementsMatch(suite.T(), []string{"Bill", "MonthBill", "MonthIncome", "MonthExpense", "MonthTodo"}, names)
}

func (suite *TestSuiteStandard) TestBackupRestore() {
	t := suite.T()

	member := createTestFamilyMember(t, v1.FamilyMemberEditable{PIN: "2468"})
	bill := createTestBill(t, v1.BillEditable{Name: "Rent"})
	_ = createTestMonth(t, may2024)

	r := test.Request(t, http.MethodPost, monthURL(may2024, "lock"), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	r = test.Request(t, http.MethodGet, "http://example.com/v1/backup", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	data := r.Body.Bytes()

	// Changes after the backup are discarded by the restore
	_ = createTestBill(t, v1.BillEditable{Name: "Added later"})

	r = test.Request(t, http.MethodPost, restoreURL, bytes.NewBuffer(data))
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	r = test.Request(t, http.MethodGet, "http://example.com/v1/bills", "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var bills v1.BillListResponse
	test.DecodeResponse(t, &r, &bills)
	require.Len(t, bills.Data, 1)
	assert.Equal(t, bill.Data.ID, bills.Data[0].ID)
	assert.Equal(t, "Rent", bills.Data[0].Name)

	// PINs survive the restore
	r = test.Request(t, http.MethodPost, member.Data.Links.VerifyPIN, v1.FamilyMemberPIN{PIN: "2468"})
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	// Locked months stay locked
	r = test.Request(t, http.MethodGet, monthURL(may2024), "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var month v1.MonthResponse
	test.DecodeResponse(t, &r, &month)
	assert.True(t, month.Data.Locked)
	assert.Len(t, month.Data.Bills, 1)
}

func (suite *TestSuiteStandard) TestBackupRestoreFormFile() {
	bill := createTestBill(suite.T(), v1.BillEditable{})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/backup", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	data := r.Body.Bytes()

	r = test.Request(suite.T(), http.MethodDelete, bill.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "backup.json")
	require.Nil(suite.T(), err)
	_, err = part.Write(data)
	require.Nil(suite.T(), err)
	require.Nil(suite.T(), w.Close())

	r = test.Request(suite.T(), http.MethodPost, restoreURL, body, map[string]string{"Content-Type": w.FormDataContentType()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, bill.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestBackupEncrypted() {
	t := suite.T()
	passphrase := map[string]string{v1.PassphraseHeader: "correct horse battery staple"}

	bill := createTestBill(t, v1.BillEditable{})

	r := test.Request(t, http.MethodGet, "http://example.com/v1/backup", "", passphrase)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	data := r.Body.Bytes()
	assert.True(t, backup.IsEncrypted(data))
	assert.NotContains(t, string(data), bill.Data.ID.String())

	tests := []struct {
		name     string
		headers  map[string]string
		status   int
		errorMsg string
	}{
		{"No passphrase", map[string]string{}, http.StatusBadRequest, backup.ErrPassphraseRequired.Error()},
		{"Wrong passphrase", map[string]string{v1.PassphraseHeader: "wrong horse"}, http.StatusBadRequest, backup.ErrWrongPassphrase.Error()},
		{"Correct passphrase", passphrase, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, restoreURL, bytes.NewBuffer(data), tt.headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.errorMsg != "" {
				var response struct {
					Error string `json:"error"`
				}
				test.DecodeResponse(t, &r, &response)
				assert.Equal(t, tt.errorMsg, response.Error)
			}
		})
	}

	r = test.Request(t, http.MethodGet, bill.Data.Links.Self, "")
	test.AssertHTTPStatus(t, &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestBackupRestoreFails() {
	bill := createTestBill(suite.T(), v1.BillEditable{})

	tests := []struct {
		name string
		url  string
		body string
	}{
		{"No confirmation", "http://example.com/v1/backup", `{ "data": {} }`},
		{"Wrong confirmation", "http://example.com/v1/backup?confirm=yes", `{ "data": {} }`},
		{"No body", restoreURL, ""},
		{"Not JSON", restoreURL, "this is not a backup"},
		{"No data", restoreURL, `{ "version": "1.0.0" }`},
		{"Unknown resource type", restoreURL, `{ "data": { "Spaceship": [] } }`},
		{"Broken resources", restoreURL, `{ "data": { "Bill": { "name": "not a list" } } }`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}

	// Failed restores do not change anything
	r := test.Request(suite.T(), http.MethodGet, bill.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestBackupRestoreKeyDerivationLimit() {
	body := `{"v":1,"salt":"AAAAAAAAAAAAAAAAAAAAAA==","scrypt_N":1073741824,"scrypt_r":8,"scrypt_p":1,"cipher":"AAAA"}`

	r := test.Request(suite.T(), http.MethodPost, restoreURL, body, map[string]string{v1.PassphraseHeader: "passphrase"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), response.Error, backup.ErrInvalidBackup.Error())
}
