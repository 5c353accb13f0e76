// Package accounts provides the polymorphic ledger account directory:
// a (kind, id) reference can point into any of six unrelated entity tables,
// and the resolver turns it into a display name plus optional parent link.
package accounts

import "strings"

// Kind identifies which entity table an account reference points into.
type Kind string

const (
	KindFarmer         Kind = "Farmer"
	KindGrowerGroup    Kind = "GrowerGroup"
	KindBankMaster     Kind = "BankMaster"
	KindSubGroupLedger Kind = "SubGroupLedger"
	KindMasterGroup    Kind = "MasterGroup"
	KindVendor         Kind = "Vendor"

	// KindUnknown marks a tag that matched no known table.
	// It survives only at the display boundary; internal dispatch never
	// produces it.
	KindUnknown Kind = ""
)

// knownKinds in dispatch order. Farmer before GrowerGroup matters for the
// loose substring match below (legacy tags like "farmerAccount").
var knownKinds = []Kind{
	KindFarmer,
	KindGrowerGroup,
	KindBankMaster,
	KindSubGroupLedger,
	KindMasterGroup,
	KindVendor,
}

// ParseKind maps a free-form kind tag to a closed Kind value.
// Matching is case-insensitive; loose substring matching is kept for
// legacy tags stored by earlier versions of the system.
func ParseKind(tag string) Kind {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if lower == "" {
		return KindUnknown
	}
	for _, k := range knownKinds {
		if lower == strings.ToLower(string(k)) {
			return k
		}
	}
	for _, k := range knownKinds {
		if strings.Contains(lower, strings.ToLower(string(k))) {
			return k
		}
	}
	return KindUnknown
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

// unknownPlaceholder is the display name used when the id has no row in the
// target table. Values match what the UI has always shown.
func (k Kind) unknownPlaceholder() string {
	switch k {
	case KindFarmer:
		return "Unknown Farmer"
	case KindGrowerGroup, KindMasterGroup:
		return "Unknown Group"
	case KindBankMaster:
		return "Unknown Bank"
	case KindSubGroupLedger:
		return "Unknown Account"
	case KindVendor:
		return "Unknown Vendor"
	}
	return "Unknown Account"
}
