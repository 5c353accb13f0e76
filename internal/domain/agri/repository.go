package agri

import "context"

// GroupRepository persists grower groups.
type GroupRepository interface {
	Create(ctx context.Context, group *GrowerGroup) error
	GetByID(ctx context.Context, id int64) (*GrowerGroup, error)
	Update(ctx context.Context, group *GrowerGroup) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListActive(ctx context.Context) ([]*GrowerGroup, error)
	// LastCode returns the most recently created group's code, or ""
	// when no groups exist.
	LastCode(ctx context.Context) (string, error)
}

// FarmerRepository persists farmers.
type FarmerRepository interface {
	Create(ctx context.Context, farmer *Farmer) error
	GetByID(ctx context.Context, id int64) (*Farmer, error)
	Update(ctx context.Context, farmer *Farmer) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListActive(ctx context.Context) ([]*Farmer, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*Farmer, error)
	// LastCode returns the most recently created farmer's code within
	// the group, or "" when the group has no farmers.
	LastCode(ctx context.Context, groupID int64) (string, error)
}

// LotRepository persists produce lots.
type LotRepository interface {
	Create(ctx context.Context, lot *Lot) error
	GetByID(ctx context.Context, id int64) (*Lot, error)
	Update(ctx context.Context, lot *Lot) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListByGroup(ctx context.Context, groupID int64) ([]*Lot, error)
}
