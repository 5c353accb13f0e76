package accounts

import "fmt"

// NoAccountName is the sentinel display name for a zero-id reference.
const NoAccountName = "N/A"

// Reference identifies a ledger counterparty in one of the account tables.
// The zero id means "no account" and must never trigger a lookup.
type Reference struct {
	Kind Kind  `json:"kind"`
	ID   int64 `json:"id"`
}

// NewReference builds a Reference from a raw kind tag and id.
func NewReference(kindTag string, id int64) Reference {
	k := ParseKind(kindTag)
	if k == KindUnknown {
		// Preserve the raw tag so the fallback display keeps it visible.
		return Reference{Kind: Kind(kindTag), ID: id}
	}
	return Reference{Kind: k, ID: id}
}

// IsZero reports whether the reference points at no account.
func (r Reference) IsZero() bool {
	return r.ID == 0
}

// String renders the last-resort display literal for unrecognized kinds.
func (r Reference) String() string {
	return fmt.Sprintf("%s (ID: %d)", string(r.Kind), r.ID)
}

// Resolved is a reference joined with its current display name.
// It is derived on every read and never persisted: the underlying entity
// may be renamed after a document starts referencing it.
type Resolved struct {
	Reference   Reference  `json:"reference"`
	DisplayName string     `json:"displayName"`
	Parent      *Reference `json:"parent,omitempty"`
}
