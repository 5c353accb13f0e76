// Package agri holds the agricultural master data: grower groups, the
// farmers belonging to them, and produce lots.
package agri

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
)

// GrowerGroup is a village-level collective of farmers. Its code (GG001,
// GG002, ...) prefixes the codes of its farmers.
type GrowerGroup struct {
	ID        int64     `db:"id" json:"id"`
	GroupCode string    `db:"group_code" json:"groupCode"`
	GroupName string    `db:"group_name" json:"groupName"`
	Village   string    `db:"village" json:"village,omitempty"`
	Contact   string    `db:"contact" json:"contact,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (g *GrowerGroup) Validate(ctx context.Context) error {
	if g.GroupName == "" {
		return apperror.NewValidation("group name is required").
			WithDetail("field", "groupName")
	}
	return nil
}

// Farmer is a member of a grower group. Codes are group-scoped:
// GG001F001, GG001F002, and so on.
type Farmer struct {
	ID         int64     `db:"id" json:"id"`
	FarmerCode string    `db:"farmer_code" json:"farmerCode"`
	FarmerName string    `db:"farmer_name" json:"farmerName"`
	GroupID    int64     `db:"group_id" json:"groupId"`
	GroupName  string    `db:"-" json:"groupName,omitempty"`
	Village    string    `db:"village" json:"village,omitempty"`
	Phone      string    `db:"phone" json:"phone,omitempty"`
	BankAcNo   string    `db:"bank_ac_no" json:"bankAcNo,omitempty"`
	IsActive   bool      `db:"is_active" json:"isActive"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

func (f *Farmer) Validate(ctx context.Context) error {
	if f.FarmerName == "" {
		return apperror.NewValidation("farmer name is required").
			WithDetail("field", "farmerName")
	}
	if f.GroupID == 0 {
		return apperror.NewValidation("grower group is required").
			WithDetail("field", "groupId")
	}
	return nil
}

// Lot is a produce arrival registered against a group and farmer.
type Lot struct {
	ID          int64           `db:"id" json:"id"`
	LotNo       string          `db:"lot_no" json:"lotNo"`
	GroupID     int64           `db:"group_id" json:"groupId"`
	FarmerID    int64           `db:"farmer_id" json:"farmerId"`
	ArrivalDate time.Time       `db:"arrival_date" json:"arrivalDate"`
	Bags        int             `db:"bags" json:"bags"`
	WeightKg    decimal.Decimal `db:"weight_kg" json:"weightKg"`
	IsActive    bool            `db:"is_active" json:"isActive"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

func (l *Lot) Validate(ctx context.Context) error {
	if l.GroupID == 0 {
		return apperror.NewValidation("grower group is required").
			WithDetail("field", "groupId")
	}
	if l.ArrivalDate.IsZero() {
		return apperror.NewValidation("arrival date is required").
			WithDetail("field", "arrivalDate")
	}
	return nil
}
