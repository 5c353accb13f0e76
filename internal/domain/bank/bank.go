// Package bank holds the chart-of-accounts masters: master groups,
// sub-group ledgers and the bank/ledger accounts under them.
package bank

import (
	"context"
	"time"

	"agriaccount/internal/core/apperror"
)

// MasterGroup is a top-level chart-of-accounts heading.
type MasterGroup struct {
	ID        int64     `db:"id" json:"id"`
	GroupName string    `db:"group_name" json:"groupName"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SubGroupLedger sits under a master group and parents bank accounts.
type SubGroupLedger struct {
	ID            int64     `db:"id" json:"id"`
	LedgerName    string    `db:"ledger_name" json:"ledgerName"`
	MasterGroupID int64     `db:"master_group_id" json:"masterGroupId"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// BankMaster is a bank or ledger account under a sub-group ledger.
type BankMaster struct {
	ID          int64     `db:"id" json:"id"`
	AccountName string    `db:"account_name" json:"accountName"`
	GroupID     int64     `db:"group_id" json:"groupId"`
	Address     string    `db:"address" json:"address,omitempty"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Email       string    `db:"email" json:"email,omitempty"`
	AccountNo   string    `db:"account_no" json:"accountNo,omitempty"`
	IFSC        string    `db:"ifsc" json:"ifsc,omitempty"`
	BranchName  string    `db:"branch_name" json:"branchName,omitempty"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedBy   string    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

func (b *BankMaster) Validate(ctx context.Context) error {
	if b.AccountName == "" {
		return apperror.NewValidation("account name is required").
			WithDetail("field", "accountName")
	}
	if b.GroupID == 0 {
		return apperror.NewValidation("sub-group ledger is required").
			WithDetail("field", "groupId")
	}
	return nil
}

// Repository persists the chart-of-accounts masters.
type Repository interface {
	CreateAccount(ctx context.Context, account *BankMaster) error
	GetAccount(ctx context.Context, id int64) (*BankMaster, error)
	UpdateAccount(ctx context.Context, account *BankMaster) error
	SetAccountActive(ctx context.Context, id int64, active bool) error
	ListAccounts(ctx context.Context) ([]*BankMaster, error)
	ListAccountsByLedger(ctx context.Context, ledgerID int64) ([]*BankMaster, error)

	GetLedger(ctx context.Context, id int64) (*SubGroupLedger, error)
	ListLedgers(ctx context.Context) ([]*SubGroupLedger, error)
	GetMasterGroup(ctx context.Context, id int64) (*MasterGroup, error)
	ListMasterGroups(ctx context.Context) ([]*MasterGroup, error)
}

// Service implements bank master operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAccounts(ctx context.Context) ([]*BankMaster, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) ListAccountsByLedger(ctx context.Context, ledgerID int64) ([]*BankMaster, error) {
	return s.repo.ListAccountsByLedger(ctx, ledgerID)
}

func (s *Service) GetAccount(ctx context.Context, id int64) (*BankMaster, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) CreateAccount(ctx context.Context, account *BankMaster, user string) (bool, string) {
	if err := account.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	if ledger, err := s.repo.GetLedger(ctx, account.GroupID); err != nil || ledger == nil {
		return false, "Sub-group ledger not found"
	}
	account.CreatedBy = user
	account.CreatedAt = time.Now()
	account.IsActive = true
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Created successfully"
}

func (s *Service) UpdateAccount(ctx context.Context, id int64, account *BankMaster) (bool, string) {
	existing, err := s.repo.GetAccount(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	account.ID = id
	account.CreatedBy = existing.CreatedBy
	account.CreatedAt = existing.CreatedAt
	if err := account.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Updated successfully"
}

func (s *Service) DeleteAccount(ctx context.Context, id int64) (bool, string) {
	existing, err := s.repo.GetAccount(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	if err := s.repo.SetAccountActive(ctx, id, false); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Deleted successfully"
}

func (s *Service) ListLedgers(ctx context.Context) ([]*SubGroupLedger, error) {
	return s.repo.ListLedgers(ctx)
}

func (s *Service) ListMasterGroups(ctx context.Context) ([]*MasterGroup, error) {
	return s.repo.ListMasterGroups(ctx)
}
