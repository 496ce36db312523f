package utils

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/loan-underwriting/dto"
)

// fieldKeywords maps every working-capital field to the phrases that identify it
// on a balance-sheet or P&L line.
var fieldKeywords = map[dto.FieldKey][]string{
	dto.FieldCurrentAssets:      {"current assets"},
	dto.FieldCurrentLiabilities: {"current liabilities"},
	dto.FieldInventory:          {"inventory", "stock"},
	dto.FieldReceivables:        {"receivable", "debtors"},
	dto.FieldPayables:           {"payable", "creditors"},
	dto.FieldAnnualSales:        {"revenue", "sales", "turnover"},
	dto.FieldCOGS:               {"cost of goods sold", "cogs"},
	dto.FieldBankCredit:         {"bank overdraft", "cash credit"},
}

var lineNumberRegex = regexp.MustCompile(`[-+]?\d[\d,]*`)

// ExtractFields scans document rows for known financial line items.
// When several rows match the same field the last one wins.
func ExtractFields(rows []dto.RawRow) dto.ExtractedFields {
	extracted := dto.ExtractedFields{}
	skipped := 0

	for _, row := range rows {
		if len(row) == 0 {
			skipped++
			continue
		}

		line := strings.ToLower(strings.Join(row, " "))

		for _, key := range dto.FieldKeys {
			for _, keyword := range fieldKeywords[key] {
				if !strings.Contains(line, keyword) {
					continue
				}
				if value, ok := firstNumber(line); ok {
					extracted[key] = value
				}
			}
		}
	}

	if skipped > 0 {
		log.Printf("Skipped %d empty rows out of %d", skipped, len(rows))
	}
	return extracted
}

// Keywords returns the matching phrases for a field.
func Keywords(key dto.FieldKey) []string {
	return append([]string(nil), fieldKeywords[key]...)
}

// firstNumber returns the first signed integer-like token in line, ignoring thousands separators.
func firstNumber(line string) (float64, bool) {
	match := lineNumberRegex.FindString(line)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
