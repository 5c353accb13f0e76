// Package sequence generates human-readable sequential document and
// account codes: GG001, V014, CN202609003, GG002F001.
//
// Counters are not stored: the next code is derived from the most recently
// issued code in the series each time.
package sequence

import "time"

// Stamp controls whether the series prefix embeds the current period.
type Stamp int

const (
	// StampNone keeps the prefix static for the series' lifetime.
	StampNone Stamp = iota

	// StampYearMonth rebuilds the prefix with the current yyyyMM each call;
	// a period change restarts numbering at 001.
	StampYearMonth
)

// Series describes one numbering scope.
type Series struct {
	// Name identifies the series to the LastCodeReader.
	Name string

	// Scope narrows the series to a parent row (grower group id for
	// farmer codes). Zero for unscoped series.
	Scope int64

	// Prefix is the static part of the code.
	Prefix string

	// Width is the zero-padded digit count of the numeric suffix.
	Width int

	// Stamp selects the period policy.
	Stamp Stamp
}

// CurrentPrefix returns the prefix a freshly issued code must carry now.
func (s Series) CurrentPrefix(now time.Time) string {
	if s.Stamp == StampYearMonth {
		return s.Prefix + now.Format("200601")
	}
	return s.Prefix
}

// --- Well-known series ---

// GrowerGroups numbers grower group codes: GG001, GG002, ...
func GrowerGroups() Series {
	return Series{Name: "grower_group", Prefix: "GG", Width: 3}
}

// Vendors numbers vendor codes: V001, V002, ...
func Vendors() Series {
	return Series{Name: "vendor", Prefix: "V", Width: 3}
}

// Farmers numbers farmer codes inside one grower group's scope:
// GG002F001, GG002F002, ...
func Farmers(groupID int64, groupCode string) Series {
	return Series{Name: "farmer", Scope: groupID, Prefix: groupCode + "F", Width: 3}
}

// CreditNotes numbers credit notes per calendar month: CN202609001, ...
func CreditNotes() Series {
	return Series{Name: "credit_note", Prefix: "CN", Width: 3, Stamp: StampYearMonth}
}

// ReceiptVouchers numbers receipt entry vouchers per calendar month.
func ReceiptVouchers() Series {
	return Series{Name: "receipt_voucher", Prefix: "RV", Width: 3, Stamp: StampYearMonth}
}

// Settlements numbers payment settlement batches per calendar month.
func Settlements() Series {
	return Series{Name: "payment_settlement", Prefix: "PA", Width: 3, Stamp: StampYearMonth}
}

// PackingRecipes numbers packing recipes with bare 4-digit codes.
func PackingRecipes() Series {
	return Series{Name: "packing_recipe", Width: 4}
}
