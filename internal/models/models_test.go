package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginResponseProfileWithoutBranch(t *testing.T) {
	var resp LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"token":"abc","user_id":1,"username":"admin","email":"a@x.com","admin_type":"headquarters","branch_id":null,"branch_name":""}`), &resp))

	profile := resp.Profile()
	assert.Equal(t, int64(1), profile.ID)
	assert.Equal(t, "admin", profile.Username)
	assert.Equal(t, "admin", profile.FirstName)
	assert.Equal(t, AdminTypeHeadquarters, profile.AdminType)
	assert.Nil(t, profile.Branch)
}

func TestLoginResponseProfileWithBranch(t *testing.T) {
	id := int64(7)
	profile := LoginResponse{UserID: 2, Username: "gangnam", AdminType: AdminTypeBranch, BranchID: &id, BranchName: "Gangnam"}.Profile()

	require.NotNil(t, profile.Branch)
	assert.Equal(t, int64(7), profile.Branch.ID)
	assert.Equal(t, "Gangnam", profile.Branch.Name)
}

func TestBranchFieldAcceptsIDOrObject(t *testing.T) {
	var m Member
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"branch":3}`), &m))
	assert.Equal(t, int64(3), m.Branch.ID)
	assert.Nil(t, m.Branch.Branch)

	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"branch":{"id":4,"name":"Hongdae"}}`), &m))
	assert.Equal(t, int64(4), m.Branch.ID)
	require.NotNil(t, m.Branch.Branch)
	assert.Equal(t, "Hongdae", m.Branch.Branch.Name)
}

func TestSalaryDecodesDecimalStrings(t *testing.T) {
	var s Salary
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"base_salary":"2500000.00","total_salary":"3100000.50","payment_status":"paid"}`), &s))
	assert.Equal(t, "3100000.5", s.TotalSalary.String())
	assert.Equal(t, PaymentPaid, s.PaymentStatus)
}
