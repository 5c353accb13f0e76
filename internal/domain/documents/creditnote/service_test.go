package creditnote

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

// memRepo is an in-memory credit note repository.
type memRepo struct {
	nextID int64
	notes  map[int64]*CreditNote
}

func newMemRepo() *memRepo {
	return &memRepo{notes: make(map[int64]*CreditNote)}
}

func (m *memRepo) Create(ctx context.Context, note *CreditNote) error {
	m.nextID++
	note.ID = m.nextID
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id int64) (*CreditNote, error) {
	note, ok := m.notes[id]
	if !ok || !note.IsActive {
		return nil, apperror.NewNotFound("credit note", id)
	}
	copied := *note
	return &copied, nil
}

func (m *memRepo) Update(ctx context.Context, note *CreditNote) error {
	existing, ok := m.notes[note.ID]
	if !ok {
		return apperror.NewNotFound("credit note", note.ID)
	}
	updated := *note
	updated.Number = existing.Number
	updated.Status = existing.Status
	updated.IsActive = existing.IsActive
	updated.CreatedAt = existing.CreatedAt
	m.notes[note.ID] = &updated
	return nil
}

func (m *memRepo) List(ctx context.Context, filter ListFilter) ([]*CreditNote, int64, error) {
	var out []*CreditNote
	for _, n := range m.notes {
		if n.IsActive {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) GetStatus(ctx context.Context, id int64) (documents.Status, bool, error) {
	note, ok := m.notes[id]
	if !ok {
		return "", false, apperror.NewNotFound("credit note", id)
	}
	return note.Status, note.IsActive, nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, id int64, status documents.Status) error {
	m.notes[id].Status = status
	return nil
}

func (m *memRepo) SetActive(ctx context.Context, id int64, active bool) error {
	m.notes[id].IsActive = active
	return nil
}

// lastCodes replays the most recently created row per series.
type lastCodes struct {
	codes map[string]string
}

func (l *lastCodes) LastCode(ctx context.Context, series sequence.Series) (string, error) {
	return l.codes[series.Name], nil
}

func (l *lastCodes) set(series sequence.Series, code string) {
	l.codes[series.Name] = code
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

func newTestService(repo *memRepo, codes *lastCodes) *Service {
	dir := accounts.NewDirectory()
	dir.Register(accounts.KindFarmer, emptyReader{})
	resolver := accounts.NewResolver(dir)
	engine := rules.NewEngine(emptyRuleStore{}, resolver, dir)

	clock := func() time.Time {
		return time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	}
	seq := sequence.NewGenerator(codes).WithClock(clock)

	return NewService(repo, resolver, engine, seq, nil)
}

func validNote() *CreditNote {
	return &CreditNote{
		Date:              time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Unit:              "HO",
		GrowerGroupID:     2,
		FarmerID:          7,
		CreditAccountKind: accounts.KindFarmer,
		CreditAccountID:   7,
		DebitAccountKind:  accounts.KindBankMaster,
		DebitAccountID:    4,
		Amount:            decimal.NewFromInt(1500),
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps month-scoped number and defaults", func(t *testing.T) {
		repo := newMemRepo()
		svc := newTestService(repo, &lastCodes{codes: map[string]string{}})

		note := validNote()
		ok, msg := svc.Create(ctx, note)
		if !ok || msg != "Created successfully" {
			t.Fatalf("Create() = %v, %q", ok, msg)
		}
		if note.Number != "CN202609001" {
			t.Errorf("Number = %q, want CN202609001", note.Number)
		}
		if note.Status != documents.StatusUnApproved {
			t.Errorf("Status = %q, want UnApproved", note.Status)
		}
		if !note.IsActive {
			t.Error("IsActive = false, want true")
		}
	})

	t.Run("numbering continues within the month", func(t *testing.T) {
		repo := newMemRepo()
		codes := &lastCodes{codes: map[string]string{}}
		svc := newTestService(repo, codes)

		first := validNote()
		svc.Create(ctx, first)
		codes.set(sequence.CreditNotes(), first.Number)

		second := validNote()
		svc.Create(ctx, second)
		if second.Number != "CN202609002" {
			t.Errorf("Number = %q, want CN202609002", second.Number)
		}
	})

	t.Run("validation failure reports field message", func(t *testing.T) {
		svc := newTestService(newMemRepo(), &lastCodes{codes: map[string]string{}})

		note := validNote()
		note.Amount = decimal.NewFromInt(-10)
		ok, msg := svc.Create(ctx, note)
		if ok {
			t.Fatal("Create() accepted a negative amount")
		}
		if msg != "amount cannot be negative" {
			t.Errorf("msg = %q", msg)
		}
	})
}

func TestApprovalLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo, &lastCodes{codes: map[string]string{}})

	note := validNote()
	svc.Create(ctx, note)

	ok, msg := svc.Approve(ctx, note.ID)
	if !ok || msg != "Approved successfully" {
		t.Fatalf("Approve() = %v, %q", ok, msg)
	}

	ok, msg = svc.Approve(ctx, note.ID)
	if ok || msg != "Already approved" {
		t.Errorf("second Approve() = %v, %q, want false, Already approved", ok, msg)
	}

	ok, msg = svc.Unapprove(ctx, note.ID)
	if !ok {
		t.Fatalf("Unapprove() = %v, %q", ok, msg)
	}

	ok, msg = svc.Unapprove(ctx, note.ID)
	if ok || msg != "Note is not approved" {
		t.Errorf("second Unapprove() = %v, %q, want false, Note is not approved", ok, msg)
	}
}

func TestDeletePreservesStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo, &lastCodes{codes: map[string]string{}})

	note := validNote()
	svc.Create(ctx, note)
	svc.Approve(ctx, note.ID)

	ok, msg := svc.Delete(ctx, note.ID)
	if !ok || msg != "Deleted successfully" {
		t.Fatalf("Delete() = %v, %q", ok, msg)
	}

	stored := repo.notes[note.ID]
	if stored.IsActive {
		t.Error("note still active after delete")
	}
	if stored.Status != documents.StatusApproved {
		t.Errorf("Status = %q, delete must not touch approval state", stored.Status)
	}

	if _, err := svc.GetByID(ctx, note.ID); !apperror.IsNotFound(err) {
		t.Errorf("GetByID after delete = %v, want not found", err)
	}
}

func TestGetByIDPopulatesNames(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo, &lastCodes{codes: map[string]string{}})

	note := validNote()
	svc.Create(ctx, note)

	got, err := svc.GetByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	// Directory has no rows; names degrade to placeholders, never empty.
	if got.CreditAccountName != "Unknown Farmer" {
		t.Errorf("CreditAccountName = %q", got.CreditAccountName)
	}
	if got.DebitAccountName != "Unknown Bank" {
		t.Errorf("DebitAccountName = %q", got.DebitAccountName)
	}
}
