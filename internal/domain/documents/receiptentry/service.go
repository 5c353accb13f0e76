package receiptentry

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/core/appctx"
	"agriaccount/internal/core/sequence"
	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/documents"
	"agriaccount/internal/domain/rules"
)

// DocType identifies receipt entries in rule lookups and audit records.
const DocType = "ReceiptEntry"

// Service implements receipt voucher operations.
type Service struct {
	repo     Repository
	resolver *accounts.Resolver
	engine   *rules.Engine
	seq      *sequence.Generator
	workflow *documents.Workflow
}

func NewService(repo Repository, resolver *accounts.Resolver, engine *rules.Engine, seq *sequence.Generator, audit documents.Auditor) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		engine:   engine,
		seq:      seq,
		workflow: documents.NewWorkflow(repo, DocType, documents.DefaultMessages(), audit),
	}
}

// ListResult is a page of voucher groups.
type ListResult struct {
	Groups     []*VoucherGroup `json:"groups"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// List returns active receipt rows grouped by voucher number, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.populateNames(ctx, rows); err != nil {
		return nil, err
	}
	groups := groupByVoucher(rows)
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return &ListResult{
		Groups:     groups,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// VoucherDetails returns every active row of one voucher with resolved names.
func (s *Service) VoucherDetails(ctx context.Context, voucherNo string) (*VoucherGroup, error) {
	rows, err := s.repo.GetByVoucher(ctx, voucherNo)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NewNotFound("receipt voucher", voucherNo)
	}
	if err := s.populateNames(ctx, rows); err != nil {
		return nil, err
	}
	groups := groupByVoucher(rows)
	return groups[0], nil
}

// CreateVoucher stamps one RV number across all rows and inserts them.
func (s *Service) CreateVoucher(ctx context.Context, rows []*ReceiptEntry) (bool, string) {
	if len(rows) == 0 {
		return false, "No entries to save"
	}
	for _, row := range rows {
		if err := row.Validate(ctx); err != nil {
			return false, "Error: " + err.Error()
		}
	}
	voucherNo := s.seq.NextCode(ctx, sequence.ReceiptVouchers())
	user := appctx.GetUserName(ctx)
	now := time.Now()
	for _, row := range rows {
		row.VoucherNo = voucherNo
		row.CreatedAt = now
		row.CreatedBy = user
		row.IsActive = true
		if row.Status == "" {
			row.Status = documents.StatusUnApproved
		}
	}
	if err := s.repo.CreateRows(ctx, rows); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Created successfully"
}

// UpdateVoucher rewrites a voucher's rows under its existing number.
// Approved rows in the replacement keep their status untouched: rewritten
// rows always come back unapproved.
func (s *Service) UpdateVoucher(ctx context.Context, voucherNo string, rows []*ReceiptEntry) (bool, string) {
	existing, err := s.repo.GetByVoucher(ctx, voucherNo)
	if err != nil {
		return false, "Error: " + err.Error()
	}
	if len(existing) == 0 {
		return false, documents.DefaultMessages().NotFound
	}
	for _, row := range existing {
		if row.Status.IsApproved() {
			return false, documents.DefaultMessages().AlreadyApproved
		}
	}
	for _, row := range rows {
		if err := row.Validate(ctx); err != nil {
			return false, "Error: " + err.Error()
		}
	}
	user := appctx.GetUserName(ctx)
	now := time.Now()
	for _, row := range rows {
		row.VoucherNo = voucherNo
		row.CreatedAt = now
		row.CreatedBy = user
		row.IsActive = true
		row.Status = documents.StatusUnApproved
	}
	if err := s.repo.ReplaceVoucherRows(ctx, voucherNo, rows); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Updated successfully"
}

// GetByID returns one row with resolved account names.
func (s *Service) GetByID(ctx context.Context, id int64) (*ReceiptEntry, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.populateNames(ctx, []*ReceiptEntry{row}); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Approve(ctx context.Context, id int64) (bool, string) {
	return s.workflow.Approve(ctx, id)
}

func (s *Service) Unapprove(ctx context.Context, id int64) (bool, string) {
	return s.workflow.Unapprove(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, string) {
	return s.workflow.Delete(ctx, id)
}

// SearchAccounts proxies the rule engine's allowed-account lookup.
func (s *Service) SearchAccounts(ctx context.Context, term string, role rules.Role) ([]rules.LookupItem, error) {
	return s.engine.ListAllowedAccounts(ctx, term, nil, role), nil
}

func (s *Service) EntryProfiles(ctx context.Context) ([]rules.EntryProfile, error) {
	return s.engine.ListEntryProfiles(ctx, DocType)
}

func (s *Service) populateNames(ctx context.Context, rows []*ReceiptEntry) error {
	items := make([]accounts.NamePopulator, len(rows))
	for i, row := range rows {
		items[i] = row
	}
	s.resolver.PopulateNames(ctx, items)
	return nil
}

func groupByVoucher(rows []*ReceiptEntry) []*VoucherGroup {
	byVoucher := make(map[string]*VoucherGroup)
	order := make([]string, 0)
	for _, row := range rows {
		g, ok := byVoucher[row.VoucherNo]
		if !ok {
			g = &VoucherGroup{
				VoucherNo:   row.VoucherNo,
				Date:        row.Date,
				Unit:        row.Unit,
				TotalAmount: decimal.Zero,
			}
			byVoucher[row.VoucherNo] = g
			order = append(order, row.VoucherNo)
		}
		g.Entries = append(g.Entries, row)
		g.EntryCount++
		g.TotalAmount = g.TotalAmount.Add(row.Amount)
	}
	groups := make([]*VoucherGroup, 0, len(order))
	for _, no := range order {
		groups = append(groups, byVoucher[no])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].VoucherNo > groups[j].VoucherNo
	})
	return groups
}
