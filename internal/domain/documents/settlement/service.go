package settlement

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

// DocType identifies settlements in rule lookups and audit records.
const DocType = "PaymentSettlement"

// Service implements payment settlement operations.
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

// ListResult is a page of PA batch groups.
type ListResult struct {
	Groups     []*BatchGroup `json:"groups"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// List returns active settlement rows grouped by PA number, newest first.
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
	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return &ListResult{
		Groups:     groupByPA(rows),
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// BatchDetails returns every active row of one PA batch with resolved names.
func (s *Service) BatchDetails(ctx context.Context, paNumber string) (*BatchGroup, error) {
	rows, err := s.repo.GetByPANumber(ctx, paNumber)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NewNotFound("settlement batch", paNumber)
	}
	if err := s.populateNames(ctx, rows); err != nil {
		return nil, err
	}
	return groupByPA(rows)[0], nil
}

// CreateBatch stamps one PA number across all rows and inserts them.
func (s *Service) CreateBatch(ctx context.Context, rows []*Settlement) (bool, string) {
	if len(rows) == 0 {
		return false, "No entries to save"
	}
	for _, row := range rows {
		if err := row.Validate(ctx); err != nil {
			return false, "Error: " + err.Error()
		}
	}
	paNumber := s.seq.NextCode(ctx, sequence.Settlements())
	user := appctx.GetUserName(ctx)
	now := time.Now()
	for _, row := range rows {
		row.PANumber = paNumber
		row.CreatedAt = now
		row.CreatedBy = user
		row.IsActive = true
		if row.Status == "" {
			row.Status = documents.StatusUnApproved
		}
		if row.PaymentStatus == "" {
			row.PaymentStatus = PaymentPending
		}
	}
	if err := s.repo.CreateRows(ctx, rows); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Created successfully"
}

// UpdateBatch rewrites a batch's rows under its existing PA number.
func (s *Service) UpdateBatch(ctx context.Context, paNumber string, rows []*Settlement) (bool, string) {
	existing, err := s.repo.GetByPANumber(ctx, paNumber)
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
		row.PANumber = paNumber
		row.CreatedAt = now
		row.CreatedBy = user
		row.IsActive = true
		row.Status = documents.StatusUnApproved
		if row.PaymentStatus == "" {
			row.PaymentStatus = PaymentPending
		}
	}
	if err := s.repo.ReplaceBatchRows(ctx, paNumber, rows); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Updated successfully"
}

// GetByID returns one row with resolved names.
func (s *Service) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.populateNames(ctx, []*Settlement{row}); err != nil {
		return nil, err
	}
	return row, nil
}

// MarkPaid transitions a row's payment status. Only approved rows can
// be paid.
func (s *Service) MarkPaid(ctx context.Context, id int64) (bool, string) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, documents.DefaultMessages().NotFound
		}
		return false, "Error: " + err.Error()
	}
	if !row.Status.IsApproved() {
		return false, documents.DefaultMessages().NotApproved
	}
	if row.PaymentStatus == PaymentPaid {
		return false, "Already paid"
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, PaymentPaid); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Marked as paid"
}

func (s *Service) Approve(ctx context.Context, id int64) (bool, string) {
	return s.workflow.Approve(ctx, id)
}

func (s *Service) Unapprove(ctx context.Context, id int64) (bool, string) {
	row, err := s.repo.GetByID(ctx, id)
	if err == nil && row.PaymentStatus == PaymentPaid {
		return false, "Cannot unapprove a paid settlement"
	}
	return s.workflow.Unapprove(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, string) {
	return s.workflow.Delete(ctx, id)
}

// SearchAccounts proxies the rule engine's allowed-account lookup for
// the paying side.
func (s *Service) SearchAccounts(ctx context.Context, term string, role rules.Role) ([]rules.LookupItem, error) {
	return s.engine.ListAllowedAccounts(ctx, term, nil, role), nil
}

func (s *Service) EntryProfiles(ctx context.Context) ([]rules.EntryProfile, error) {
	return s.engine.ListEntryProfiles(ctx, DocType)
}

func (s *Service) populateNames(ctx context.Context, rows []*Settlement) error {
	items := make([]accounts.NamePopulator, len(rows))
	for i, row := range rows {
		items[i] = row
	}
	s.resolver.PopulateNames(ctx, items)
	return nil
}

func groupByPA(rows []*Settlement) []*BatchGroup {
	byPA := make(map[string]*BatchGroup)
	order := make([]string, 0)
	for _, row := range rows {
		g, ok := byPA[row.PANumber]
		if !ok {
			g = &BatchGroup{
				PANumber:    row.PANumber,
				Date:        row.Date,
				Unit:        row.Unit,
				TotalAmount: decimal.Zero,
			}
			byPA[row.PANumber] = g
			order = append(order, row.PANumber)
		}
		g.Entries = append(g.Entries, row)
		g.EntryCount++
		g.TotalAmount = g.TotalAmount.Add(row.Amount)
	}
	groups := make([]*BatchGroup, 0, len(order))
	for _, no := range order {
		groups = append(groups, byPA[no])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].PANumber > groups[j].PANumber
	})
	return groups
}
