// Package invoice computes the payout/share allocation split, amount
// validation and sequential numbering behind invoice generation.
package invoice

import (
	"fmt"
	"strconv"
	"strings"

	"worklog/internal/store"
)

// StandardPayoutHours is the payout ceiling in standard allocation
// mode; hours beyond it accrue as share value.
const StandardPayoutHours = 80.0

// FirstNumber seeds the sequential invoice numbering.
const FirstNumber = "2000001"

// Calculation is the monetary outcome of splitting tracked hours.
type Calculation struct {
	TotalHours   float64
	PayoutHours  float64
	ShareHours   float64
	HourlyRate   float64
	PayoutAmount float64
	ShareAmount  float64
	TotalAmount  float64
}

// Calculate splits totalHours between payout and share allocations.
// In custom mode the share is the remainder after customPayoutHours
// and may come out negative; Validate catches that rather than
// clamping here.
func Calculate(totalHours, hourlyRate float64, mode string, customPayoutHours float64) Calculation {
	var payout, share float64

	if mode == store.ModeCustom {
		payout = customPayoutHours
		share = totalHours - payout
	} else {
		if totalHours <= StandardPayoutHours {
			payout = totalHours
			share = 0
		} else {
			payout = StandardPayoutHours
			share = totalHours - StandardPayoutHours
		}
	}

	payoutAmount := payout * hourlyRate
	shareAmount := share * hourlyRate

	return Calculation{
		TotalHours:   totalHours,
		PayoutHours:  payout,
		ShareHours:   share,
		HourlyRate:   hourlyRate,
		PayoutAmount: payoutAmount,
		ShareAmount:  shareAmount,
		TotalAmount:  payoutAmount + shareAmount,
	}
}

// Validate returns the list of violated rules, empty when the split is
// sound. Generation is blocked while any message remains.
func Validate(totalHours, payoutHours, shareHours float64) []string {
	var errs []string

	if totalHours <= 0 {
		errs = append(errs, "Total hours must be greater than 0")
	}
	if payoutHours < 0 {
		errs = append(errs, "Payout hours cannot be negative")
	}
	if shareHours < 0 {
		errs = append(errs, "Share hours cannot be negative")
	}
	if payoutHours+shareHours != totalHours {
		errs = append(errs, "Payout hours + Share hours must equal total hours")
	}

	return errs
}

// NextNumber increments the last issued invoice number, starting the
// sequence at FirstNumber.
func NextNumber(last string) string {
	if last == "" {
		return FirstNumber
	}
	n, err := strconv.Atoi(last)
	if err != nil {
		return FirstNumber
	}
	return strconv.Itoa(n + 1)
}

// FormatCurrency renders an amount as "$1,234.56".
func FormatCurrency(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return sign + "$" + strings.Join(groups, ",") + "." + fracPart
}
