package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"agriaccount/internal/domain/bank"
	"agriaccount/internal/infrastructure/storage/postgres"
)

var (
	bankCols        = postgres.ExtractDBColumns[bank.BankMaster]()
	ledgerCols      = postgres.ExtractDBColumns[bank.SubGroupLedger]()
	masterGroupCols = postgres.ExtractDBColumns[bank.MasterGroup]()
)

// BankRepo implements bank.Repository over the three chart-of-accounts
// master tables.
type BankRepo struct {
	txm *postgres.TxManager
}

var _ bank.Repository = (*BankRepo)(nil)

func NewBankRepo(txm *postgres.TxManager) *BankRepo {
	return &BankRepo{txm: txm}
}

func (r *BankRepo) CreateAccount(ctx context.Context, account *bank.BankMaster) error {
	return insertReturningID(ctx, r.txm, "bank_masters", postgres.StructToMap(account), &account.ID)
}

func (r *BankRepo) GetAccount(ctx context.Context, id int64) (*bank.BankMaster, error) {
	var account bank.BankMaster
	q := builder().Select(bankCols...).From("bank_masters").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &account, "bank account", id); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *BankRepo) UpdateAccount(ctx context.Context, account *bank.BankMaster) error {
	return updateByID(ctx, r.txm, "bank_masters", account.ID, postgres.StructToMap(account))
}

func (r *BankRepo) SetAccountActive(ctx context.Context, id int64, active bool) error {
	return setActive(ctx, r.txm, "bank_masters", id, active)
}

func (r *BankRepo) ListAccounts(ctx context.Context) ([]*bank.BankMaster, error) {
	var accounts []*bank.BankMaster
	q := builder().Select(bankCols...).From("bank_masters").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("account_name")
	if err := selectAll(ctx, r.txm, q, &accounts, "bank accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *BankRepo) ListAccountsByLedger(ctx context.Context, ledgerID int64) ([]*bank.BankMaster, error) {
	var accounts []*bank.BankMaster
	q := builder().Select(bankCols...).From("bank_masters").
		Where(squirrel.Eq{"group_id": ledgerID, "is_active": true}).
		OrderBy("account_name")
	if err := selectAll(ctx, r.txm, q, &accounts, "bank accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *BankRepo) GetLedger(ctx context.Context, id int64) (*bank.SubGroupLedger, error) {
	var ledger bank.SubGroupLedger
	q := builder().Select(ledgerCols...).From("sub_group_ledgers").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &ledger, "sub-group ledger", id); err != nil {
		return nil, err
	}
	return &ledger, nil
}

func (r *BankRepo) ListLedgers(ctx context.Context) ([]*bank.SubGroupLedger, error) {
	var ledgers []*bank.SubGroupLedger
	q := builder().Select(ledgerCols...).From("sub_group_ledgers").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("ledger_name")
	if err := selectAll(ctx, r.txm, q, &ledgers, "sub-group ledgers"); err != nil {
		return nil, err
	}
	return ledgers, nil
}

func (r *BankRepo) GetMasterGroup(ctx context.Context, id int64) (*bank.MasterGroup, error) {
	var group bank.MasterGroup
	q := builder().Select(masterGroupCols...).From("master_groups").Where(squirrel.Eq{"id": id})
	if err := getOne(ctx, r.txm, q, &group, "master group", id); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *BankRepo) ListMasterGroups(ctx context.Context) ([]*bank.MasterGroup, error) {
	var groups []*bank.MasterGroup
	q := builder().Select(masterGroupCols...).From("master_groups").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("group_name")
	if err := selectAll(ctx, r.txm, q, &groups, "master groups"); err != nil {
		return nil, err
	}
	return groups, nil
}
