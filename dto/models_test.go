package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgricultureRepaymentNote(t *testing.T) {
	var absent *AgricultureResult
	assert.Empty(t, absent.RepaymentNote())

	assert.Equal(t, "Healthy repayment capacity.", (&AgricultureResult{EMIRatio: 12}).RepaymentNote())
	assert.Equal(t, "Healthy repayment capacity.", (&AgricultureResult{EMIRatio: 40}).RepaymentNote())
	assert.Equal(t, "Moderate to high repayment stress.", (&AgricultureResult{EMIRatio: 40.01}).RepaymentNote())
}

func TestAgricultureRejected(t *testing.T) {
	var absent *AgricultureResult
	assert.False(t, absent.Rejected())
	assert.True(t, (&AgricultureResult{Status: AgriStatusRejected}).Rejected())
	assert.False(t, (&AgricultureResult{Status: "Approved"}).Rejected())
}
