package rules

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/accounts"
)

// fakeStore holds rule rows in memory and answers like the repo: first
// match by lowest id.
type fakeStore struct {
	rules    []Rule
	profiles []EntryProfile
	failAll  bool
}

func (f *fakeStore) FindRule(ctx context.Context, kind accounts.Kind, accountID int64, entryProfileID *int64) (*Rule, error) {
	if f.failAll {
		return nil, errors.New("storage down")
	}
	for i := range f.rules {
		r := &f.rules[i]
		if r.Kind != kind || r.AccountID != accountID {
			continue
		}
		if entryProfileID == nil {
			if r.EntryProfileID == nil {
				return r, nil
			}
			continue
		}
		if r.EntryProfileID != nil && *r.EntryProfileID == *entryProfileID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FirstProfileRule(ctx context.Context, kind accounts.Kind, accountID int64) (*Rule, error) {
	if f.failAll {
		return nil, errors.New("storage down")
	}
	for i := range f.rules {
		r := &f.rules[i]
		if r.Kind == kind && r.AccountID == accountID && r.EntryProfileID != nil {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListEntryProfiles(ctx context.Context, docType string) ([]EntryProfile, error) {
	return f.profiles, nil
}

type fakeReader struct {
	entries map[int64]accounts.Entry
}

func (f *fakeReader) FindByID(ctx context.Context, id int64) (*accounts.Entry, error) {
	if e, ok := f.entries[id]; ok {
		return &e, nil
	}
	return nil, apperror.NewNotFound("entry", id)
}

func (f *fakeReader) SearchByName(ctx context.Context, term string, limit int) ([]accounts.Entry, error) {
	var out []accounts.Entry
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func ptr(v int64) *int64 { return &v }

func newTestEngine(store *fakeStore) *Engine {
	dir := accounts.NewDirectory()
	dir.Register(accounts.KindFarmer, &fakeReader{entries: map[int64]accounts.Entry{
		7: {ID: 7, Name: "Blocked Farmer", GroupID: 2},
		8: {ID: 8, Name: "Free Farmer", GroupID: 3},
	}})
	dir.Register(accounts.KindBankMaster, &fakeReader{entries: map[int64]accounts.Entry{
		4: {ID: 4, Name: "HDFC Current", GroupID: 9},
	}})
	return NewEngine(store, accounts.NewResolver(dir), dir)
}

func TestDispositionAllows(t *testing.T) {
	tests := []struct {
		d    Disposition
		role Role
		want bool
	}{
		{DispositionBoth, RoleDebit, true},
		{DispositionBoth, RoleCredit, true},
		{DispositionCancel, RoleDebit, false},
		{DispositionCancel, RoleCredit, false},
		{DispositionDebit, RoleDebit, true},
		{DispositionDebit, RoleCredit, false},
		{DispositionCredit, RoleCredit, true},
		{DispositionCredit, RoleDebit, false},
		{Disposition("Garbage"), RoleDebit, false},
	}

	for _, tt := range tests {
		if got := tt.d.Allows(tt.role); got != tt.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tt.d, tt.role, got, tt.want)
		}
	}
}

func TestIsAllowed_Precedence(t *testing.T) {
	ctx := context.Background()
	farmerRef := accounts.Reference{Kind: accounts.KindFarmer, ID: 7}

	t.Run("no rule anywhere allows", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{})
		if !engine.IsAllowed(ctx, farmerRef, RoleDebit, nil) {
			t.Error("expected allow when no rule exists")
		}
	})

	t.Run("profile rule beats default rule", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{rules: []Rule{
			{ID: 1, Kind: accounts.KindFarmer, AccountID: 7, EntryProfileID: ptr(5), Disposition: DispositionCredit},
			{ID: 2, Kind: accounts.KindFarmer, AccountID: 7, EntryProfileID: nil, Disposition: DispositionCancel},
		}})
		if !engine.IsAllowed(ctx, farmerRef, RoleCredit, ptr(5)) {
			t.Error("profile rule should allow credit")
		}
		if engine.IsAllowed(ctx, farmerRef, RoleDebit, ptr(5)) {
			t.Error("profile rule should deny debit")
		}
	})

	t.Run("default rule applies when profile has no rule", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{rules: []Rule{
			{ID: 1, Kind: accounts.KindFarmer, AccountID: 7, EntryProfileID: nil, Disposition: DispositionCancel},
		}})
		if engine.IsAllowed(ctx, farmerRef, RoleCredit, ptr(5)) {
			t.Error("default Cancel rule should deny")
		}
	})

	t.Run("parent rule governs when account has none", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{rules: []Rule{
			{ID: 1, Kind: accounts.KindGrowerGroup, AccountID: 2, EntryProfileID: nil, Disposition: DispositionDebit},
		}})
		if !engine.IsAllowed(ctx, farmerRef, RoleDebit, nil) {
			t.Error("parent Debit rule should allow debit")
		}
		if engine.IsAllowed(ctx, farmerRef, RoleCredit, nil) {
			t.Error("parent Debit rule should deny credit")
		}
	})

	t.Run("account rule shadows parent rule", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{rules: []Rule{
			{ID: 1, Kind: accounts.KindFarmer, AccountID: 7, EntryProfileID: nil, Disposition: DispositionBoth},
			{ID: 2, Kind: accounts.KindGrowerGroup, AccountID: 2, EntryProfileID: nil, Disposition: DispositionCancel},
		}})
		if !engine.IsAllowed(ctx, farmerRef, RoleCredit, nil) {
			t.Error("account Both rule should shadow parent Cancel")
		}
	})

	t.Run("storage failure degrades to allow", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{failAll: true})
		if !engine.IsAllowed(ctx, farmerRef, RoleDebit, ptr(5)) {
			t.Error("storage failure must not deny")
		}
	})
}

func TestInferEntryProfile(t *testing.T) {
	ctx := context.Background()
	credit := accounts.Reference{Kind: accounts.KindFarmer, ID: 7}
	debit := accounts.Reference{Kind: accounts.KindBankMaster, ID: 4}

	t.Run("credit leg wins", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{rules: []Rule{
			{ID: 1, Kind: accounts.KindFarmer, AccountID: 7, EntryProfileID: ptr(5), Disposition: DispositionBoth},
			{ID: 2, Kind: accounts.KindBankMaster, AccountID: 4, EntryProfileID: ptr(9), Disposition: DispositionBoth},
		}})
		got := engine.InferEntryProfile(ctx, credit, debit)
		if got == nil || *got != 5 {
			t.Errorf("InferEntryProfile() = %v, want 5", got)
		}
	})

	t.Run("falls through to debit leg", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{rules: []Rule{
			{ID: 2, Kind: accounts.KindBankMaster, AccountID: 4, EntryProfileID: ptr(9), Disposition: DispositionBoth},
		}})
		got := engine.InferEntryProfile(ctx, credit, debit)
		if got == nil || *got != 9 {
			t.Errorf("InferEntryProfile() = %v, want 9", got)
		}
	})

	t.Run("no profile rules yields nil", func(t *testing.T) {
		engine := newTestEngine(&fakeStore{})
		if got := engine.InferEntryProfile(ctx, credit, debit); got != nil {
			t.Errorf("InferEntryProfile() = %v, want nil", got)
		}
	})
}

func TestListAllowedAccounts(t *testing.T) {
	ctx := context.Background()

	engine := newTestEngine(&fakeStore{rules: []Rule{
		{ID: 1, Kind: accounts.KindFarmer, AccountID: 7, EntryProfileID: nil, Disposition: DispositionCancel},
	}})

	items := engine.ListAllowedAccounts(ctx, "", nil, RoleCredit)

	for _, item := range items {
		if item.Kind == accounts.KindFarmer && item.ID == 7 {
			t.Error("cancelled account must not appear in picker results")
		}
	}

	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("results not sorted by name: %v", names)
		}
	}

	// Both remaining searchable accounts survive.
	if len(items) != 2 {
		t.Errorf("got %d items, want 2: %v", len(items), items)
	}
}

func TestListAllowedAccounts_Cap(t *testing.T) {
	ctx := context.Background()

	farmers := make(map[int64]accounts.Entry, 90)
	for i := int64(1); i <= 90; i++ {
		farmers[i] = accounts.Entry{ID: i, Name: fmt.Sprintf("Farmer %03d", i)}
	}
	banks := make(map[int64]accounts.Entry, 90)
	for i := int64(1); i <= 90; i++ {
		banks[i] = accounts.Entry{ID: i, Name: fmt.Sprintf("Bank %03d", i)}
	}

	dir := accounts.NewDirectory()
	dir.Register(accounts.KindFarmer, &fakeReader{entries: farmers})
	dir.Register(accounts.KindBankMaster, &fakeReader{entries: banks})
	engine := NewEngine(&fakeStore{}, accounts.NewResolver(dir), dir)

	items := engine.ListAllowedAccounts(ctx, "", nil, RoleCredit)
	if len(items) != 100 {
		t.Errorf("got %d items, want the 100-entry cap", len(items))
	}
}
