package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/Aashish23092/loan-underwriting/dto"
)

// DefaultAccount is used when a statement row does not name its account.
const DefaultAccount = "Primary"

// NormalizeRow converts a header-keyed statement row into a Transaction.
func NormalizeRow(row map[string]string) dto.Transaction {
	return NormalizeRowForAccount(row, DefaultAccount)
}

// NormalizeRowForAccount is NormalizeRow with a custom fallback account,
// typically the source filename when several statements are merged.
func NormalizeRowForAccount(row map[string]string, fallbackAccount string) dto.Transaction {
	lookup := make(map[string]string, len(row))
	for k, v := range row {
		key := strings.ToLower(strings.TrimSpace(k))
		// exact lowercase header wins over other casings
		if _, seen := lookup[key]; seen && k != key {
			continue
		}
		lookup[key] = strings.TrimSpace(v)
	}

	if fallbackAccount == "" {
		fallbackAccount = DefaultAccount
	}

	account := lookup["account"]
	if account == "" {
		account = fallbackAccount
	}

	desc := lookup["desc"]
	if desc == "" {
		desc = lookup["description"]
	}

	return dto.Transaction{
		Date:        lookup["date"],
		Credit:      ParseAmount(lookup["credit"]),
		Debit:       ParseAmount(lookup["debit"]),
		Description: desc,
		Account:     account,
	}
}

// ParseStatementLine reads a text statement line laid out as
// "date credit debit description...". Blank lines are rejected.
func ParseStatementLine(line, account string) (dto.Transaction, bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return dto.Transaction{}, false
	}

	txn := dto.Transaction{
		Date:    parts[0],
		Account: account,
	}
	if len(parts) > 1 {
		txn.Credit = ParseAmount(parts[1])
	}
	if len(parts) > 2 {
		txn.Debit = ParseAmount(parts[2])
	}
	if len(parts) > 3 {
		txn.Description = strings.Join(parts[3:], " ")
	}
	if txn.Account == "" {
		txn.Account = DefaultAccount
	}
	return txn, true
}

// ParseAmount parses a statement amount, returning 0 for anything non-numeric.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return amount
}
