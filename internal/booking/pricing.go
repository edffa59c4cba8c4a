package booking

import "github.com/shopspring/decimal"

// billingGranularityMinutes is the billing step for partial hours. Durations
// round up to the next half hour, never down: 1h15m bills as 1.5h, 1h40m as
// 2h. A 10:00-12:00 booking on a 200/hr field therefore costs exactly 400.
const billingGranularityMinutes = 30

var minutesPerHour = decimal.NewFromInt(60)

// BillableHours converts a slot to billable hours, rounding the raw duration
// up to the billing granularity.
func BillableHours(iv Interval) decimal.Decimal {
	minutes := int(iv.End - iv.Start)
	if minutes <= 0 {
		return decimal.Zero
	}

	steps := (minutes + billingGranularityMinutes - 1) / billingGranularityMinutes
	billable := steps * billingGranularityMinutes

	return decimal.NewFromInt(int64(billable)).Div(minutesPerHour)
}

// TotalPrice computes the price snapshot for a booking: billable hours times
// the field's hourly rate at booking time.
func TotalPrice(hours, pricePerHour decimal.Decimal) decimal.Decimal {
	return pricePerHour.Mul(hours)
}
