package receiptentry

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/core/sequence"
	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/documents"
	"agriaccount/internal/domain/rules"
)

// memRepo keeps voucher rows in memory, insertion-ordered.
type memRepo struct {
	nextID int64
	rows   []*ReceiptEntry
}

func (m *memRepo) CreateRows(ctx context.Context, rows []*ReceiptEntry) error {
	for _, row := range rows {
		m.nextID++
		row.ID = m.nextID
		copied := *row
		m.rows = append(m.rows, &copied)
	}
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id int64) (*ReceiptEntry, error) {
	for _, row := range m.rows {
		if row.ID == id && row.IsActive {
			copied := *row
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("receipt entry", id)
}

func (m *memRepo) GetByVoucher(ctx context.Context, voucherNo string) ([]*ReceiptEntry, error) {
	var out []*ReceiptEntry
	for _, row := range m.rows {
		if row.VoucherNo == voucherNo && row.IsActive {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memRepo) ReplaceVoucherRows(ctx context.Context, voucherNo string, rows []*ReceiptEntry) error {
	for _, row := range m.rows {
		if row.VoucherNo == voucherNo {
			row.IsActive = false
		}
	}
	return m.CreateRows(ctx, rows)
}

func (m *memRepo) List(ctx context.Context, filter ListFilter) ([]*ReceiptEntry, int64, error) {
	var out []*ReceiptEntry
	for _, row := range m.rows {
		if row.IsActive {
			copied := *row
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) GetStatus(ctx context.Context, id int64) (documents.Status, bool, error) {
	for _, row := range m.rows {
		if row.ID == id {
			return row.Status, row.IsActive, nil
		}
	}
	return "", false, apperror.NewNotFound("receipt entry", id)
}

func (m *memRepo) UpdateStatus(ctx context.Context, id int64, status documents.Status) error {
	for _, row := range m.rows {
		if row.ID == id {
			row.Status = status
		}
	}
	return nil
}

func (m *memRepo) SetActive(ctx context.Context, id int64, active bool) error {
	for _, row := range m.rows {
		if row.ID == id {
			row.IsActive = active
		}
	}
	return nil
}

type lastCodes struct {
	codes map[string]string
}

func (l *lastCodes) LastCode(ctx context.Context, series sequence.Series) (string, error) {
	return l.codes[series.Name], nil
}

type emptyReader struct{}

func (emptyReader) FindByID(ctx context.Context, id int64) (*accounts.Entry, error) {
	return nil, apperror.NewNotFound("entry", id)
}

func (emptyReader) SearchByName(ctx context.Context, term string, limit int) ([]accounts.Entry, error) {
	return nil, nil
}

type emptyRuleStore struct{}

func (emptyRuleStore) FindRule(ctx context.Context, kind accounts.Kind, accountID int64, entryProfileID *int64) (*rules.Rule, error) {
	return nil, nil
}

func (emptyRuleStore) FirstProfileRule(ctx context.Context, kind accounts.Kind, accountID int64) (*rules.Rule, error) {
	return nil, nil
}

func (emptyRuleStore) ListEntryProfiles(ctx context.Context, docType string) ([]rules.EntryProfile, error) {
	return nil, nil
}

func newTestService(repo *memRepo) *Service {
	dir := accounts.NewDirectory()
	dir.Register(accounts.KindFarmer, emptyReader{})
	resolver := accounts.NewResolver(dir)
	engine := rules.NewEngine(emptyRuleStore{}, resolver, dir)

	clock := func() time.Time {
		return time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	}
	seq := sequence.NewGenerator(&lastCodes{codes: map[string]string{}}).WithClock(clock)

	return NewService(repo, resolver, engine, seq, nil)
}

func validRow(amount int64) *ReceiptEntry {
	return &ReceiptEntry{
		Date:              time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Unit:              "HO",
		GrowerGroupID:     2,
		FarmerID:          7,
		CreditAccountKind: accounts.KindFarmer,
		CreditAccountID:   7,
		DebitAccountKind:  accounts.KindBankMaster,
		DebitAccountID:    4,
		Amount:            decimal.NewFromInt(amount),
		PaymentMode:       "Cash",
	}
}

func TestCreateVoucher(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps one voucher number across all rows", func(t *testing.T) {
		repo := &memRepo{}
		svc := newTestService(repo)

		rows := []*ReceiptEntry{validRow(100), validRow(200), validRow(300)}
		ok, msg := svc.CreateVoucher(ctx, rows)
		if !ok || msg != "Created successfully" {
			t.Fatalf("CreateVoucher() = %v, %q", ok, msg)
		}

		for i, row := range rows {
			if row.VoucherNo != "RV202609001" {
				t.Errorf("row %d VoucherNo = %q, want RV202609001", i, row.VoucherNo)
			}
			if row.Status != documents.StatusUnApproved {
				t.Errorf("row %d Status = %q", i, row.Status)
			}
		}
	})

	t.Run("no rows is rejected", func(t *testing.T) {
		svc := newTestService(&memRepo{})
		ok, msg := svc.CreateVoucher(ctx, nil)
		if ok || msg != "No entries to save" {
			t.Errorf("CreateVoucher() = %v, %q, want false, No entries to save", ok, msg)
		}
	})

	t.Run("any invalid row rejects the whole voucher", func(t *testing.T) {
		repo := &memRepo{}
		svc := newTestService(repo)

		bad := validRow(100)
		bad.Date = time.Time{}
		ok, _ := svc.CreateVoucher(ctx, []*ReceiptEntry{validRow(50), bad})
		if ok {
			t.Fatal("CreateVoucher() accepted an invalid row")
		}
		if len(repo.rows) != 0 {
			t.Errorf("repo has %d rows, want 0", len(repo.rows))
		}
	})
}

func TestUpdateVoucher(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites rows under the existing number", func(t *testing.T) {
		repo := &memRepo{}
		svc := newTestService(repo)

		svc.CreateVoucher(ctx, []*ReceiptEntry{validRow(100), validRow(200)})

		replacement := []*ReceiptEntry{validRow(500)}
		ok, msg := svc.UpdateVoucher(ctx, "RV202609001", replacement)
		if !ok || msg != "Updated successfully" {
			t.Fatalf("UpdateVoucher() = %v, %q", ok, msg)
		}

		active, _ := repo.GetByVoucher(ctx, "RV202609001")
		if len(active) != 1 {
			t.Fatalf("active rows = %d, want 1", len(active))
		}
		if !active[0].Amount.Equal(decimal.NewFromInt(500)) {
			t.Errorf("Amount = %s, want 500", active[0].Amount)
		}
		if active[0].Status != documents.StatusUnApproved {
			t.Errorf("rewritten row must come back unapproved, got %q", active[0].Status)
		}
	})

	t.Run("approved voucher cannot be rewritten", func(t *testing.T) {
		repo := &memRepo{}
		svc := newTestService(repo)

		rows := []*ReceiptEntry{validRow(100)}
		svc.CreateVoucher(ctx, rows)
		svc.Approve(ctx, rows[0].ID)

		ok, msg := svc.UpdateVoucher(ctx, "RV202609001", []*ReceiptEntry{validRow(900)})
		if ok || msg != "Already approved" {
			t.Errorf("UpdateVoucher() = %v, %q, want false, Already approved", ok, msg)
		}
	})

	t.Run("unknown voucher", func(t *testing.T) {
		svc := newTestService(&memRepo{})
		ok, msg := svc.UpdateVoucher(ctx, "RV209912001", []*ReceiptEntry{validRow(10)})
		if ok || msg != "Not found" {
			t.Errorf("UpdateVoucher() = %v, %q, want false, Not found", ok, msg)
		}
	})
}

func TestListGroupsByVoucher(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	svc := newTestService(repo)

	// Two vouchers with distinct numbers: the repo fake replays rows in
	// insertion order, the service groups and totals them.
	first := []*ReceiptEntry{validRow(100), validRow(200)}
	svc.CreateVoucher(ctx, first)
	for _, row := range repo.rows {
		row.VoucherNo = "RV202609001"
	}

	second := []*ReceiptEntry{validRow(50)}
	svc.CreateVoucher(ctx, second)
	for _, row := range repo.rows[2:] {
		row.VoucherNo = "RV202609002"
	}

	result, err := svc.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(result.Groups))
	}

	// Newest voucher first.
	if result.Groups[0].VoucherNo != "RV202609002" {
		t.Errorf("first group = %q, want RV202609002", result.Groups[0].VoucherNo)
	}

	older := result.Groups[1]
	if older.EntryCount != 2 {
		t.Errorf("EntryCount = %d, want 2", older.EntryCount)
	}
	if !older.TotalAmount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("TotalAmount = %s, want 300", older.TotalAmount)
	}
}

func TestVoucherDetails(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}
	svc := newTestService(repo)

	svc.CreateVoucher(ctx, []*ReceiptEntry{validRow(100), validRow(200)})

	group, err := svc.VoucherDetails(ctx, "RV202609001")
	if err != nil {
		t.Fatalf("VoucherDetails() error = %v", err)
	}
	if group.EntryCount != 2 || len(group.Entries) != 2 {
		t.Errorf("EntryCount = %d, Entries = %d", group.EntryCount, len(group.Entries))
	}

	if _, err := svc.VoucherDetails(ctx, "RV000000000"); !apperror.IsNotFound(err) {
		t.Errorf("missing voucher error = %v, want not found", err)
	}
}
