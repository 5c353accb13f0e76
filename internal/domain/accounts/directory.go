package accounts

import "context"

// Entry is the directory's flat view of one account row, independent of
// which entity table it came from.
type Entry struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`

	// GroupID is the structural parent id (a farmer's grower group, a bank
	// account's sub-group ledger). Zero when the kind has no parent.
	GroupID int64 `db:"group_id" json:"groupId,omitempty"`
}

// Reader is the lookup contract each account kind's repository implements.
type Reader interface {
	// FindByID returns the entry or apperror.NewNotFound.
	FindByID(ctx context.Context, id int64) (*Entry, error)

	// SearchByName returns active entries whose name contains term,
	// ordered by name, at most limit rows. Empty term matches everything.
	SearchByName(ctx context.Context, term string, limit int) ([]Entry, error)
}

// parentKind maps a child account kind to the kind its GroupID points at.
var parentKind = map[Kind]Kind{
	KindFarmer:     KindGrowerGroup,
	KindBankMaster: KindSubGroupLedger,
}

// Directory is the read-only lookup surface over all account kinds.
type Directory struct {
	readers map[Kind]Reader
}

// NewDirectory creates an empty directory. Register a Reader per kind.
func NewDirectory() *Directory {
	return &Directory{readers: make(map[Kind]Reader)}
}

// Register attaches the reader serving one account kind.
func (d *Directory) Register(kind Kind, r Reader) {
	d.readers[kind] = r
}

// Reader returns the reader for a kind, if one is registered.
func (d *Directory) Reader(kind Kind) (Reader, bool) {
	r, ok := d.readers[kind]
	return r, ok
}

// ParentKind returns the parent kind for kinds that have a structural
// parent, and false otherwise.
func ParentKind(kind Kind) (Kind, bool) {
	p, ok := parentKind[kind]
	return p, ok
}

// SearchableKinds are the kinds offered by the counterparty pickers.
// The original entry screens searched bank accounts and farmers only.
var SearchableKinds = []Kind{KindBankMaster, KindFarmer}
