package agri

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/core/sequence"
)

type memGroups struct {
	nextID int64
	rows   map[int64]*GrowerGroup
	order  []int64
}

func newMemGroups() *memGroups {
	return &memGroups{rows: make(map[int64]*GrowerGroup)}
}

func (m *memGroups) Create(ctx context.Context, group *GrowerGroup) error {
	m.nextID++
	group.ID = m.nextID
	copied := *group
	m.rows[group.ID] = &copied
	m.order = append(m.order, group.ID)
	return nil
}

func (m *memGroups) GetByID(ctx context.Context, id int64) (*GrowerGroup, error) {
	g, ok := m.rows[id]
	if !ok || !g.IsActive {
		return nil, apperror.NewNotFound("grower group", id)
	}
	copied := *g
	return &copied, nil
}

func (m *memGroups) Update(ctx context.Context, group *GrowerGroup) error {
	copied := *group
	m.rows[group.ID] = &copied
	return nil
}

func (m *memGroups) SetActive(ctx context.Context, id int64, active bool) error {
	m.rows[id].IsActive = active
	return nil
}

func (m *memGroups) ListActive(ctx context.Context) ([]*GrowerGroup, error) {
	var out []*GrowerGroup
	for _, id := range m.order {
		if g := m.rows[id]; g.IsActive {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memGroups) LastCode(ctx context.Context) (string, error) {
	if len(m.order) == 0 {
		return "", nil
	}
	return m.rows[m.order[len(m.order)-1]].GroupCode, nil
}

type memFarmers struct {
	nextID int64
	rows   map[int64]*Farmer
	order  []int64
}

func newMemFarmers() *memFarmers {
	return &memFarmers{rows: make(map[int64]*Farmer)}
}

func (m *memFarmers) Create(ctx context.Context, farmer *Farmer) error {
	m.nextID++
	farmer.ID = m.nextID
	copied := *farmer
	m.rows[farmer.ID] = &copied
	m.order = append(m.order, farmer.ID)
	return nil
}

func (m *memFarmers) GetByID(ctx context.Context, id int64) (*Farmer, error) {
	f, ok := m.rows[id]
	if !ok || !f.IsActive {
		return nil, apperror.NewNotFound("farmer", id)
	}
	copied := *f
	return &copied, nil
}

func (m *memFarmers) Update(ctx context.Context, farmer *Farmer) error {
	copied := *farmer
	m.rows[farmer.ID] = &copied
	return nil
}

func (m *memFarmers) SetActive(ctx context.Context, id int64, active bool) error {
	m.rows[id].IsActive = active
	return nil
}

func (m *memFarmers) ListActive(ctx context.Context) ([]*Farmer, error) {
	var out []*Farmer
	for _, id := range m.order {
		if f := m.rows[id]; f.IsActive {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memFarmers) ListByGroup(ctx context.Context, groupID int64) ([]*Farmer, error) {
	var out []*Farmer
	for _, id := range m.order {
		if f := m.rows[id]; f.IsActive && f.GroupID == groupID {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memFarmers) LastCode(ctx context.Context, groupID int64) (string, error) {
	for i := len(m.order) - 1; i >= 0; i-- {
		if f := m.rows[m.order[i]]; f.GroupID == groupID {
			return f.FarmerCode, nil
		}
	}
	return "", nil
}

type memLots struct {
	nextID int64
	rows   map[int64]*Lot
}

func newMemLots() *memLots {
	return &memLots{rows: make(map[int64]*Lot)}
}

func (m *memLots) Create(ctx context.Context, lot *Lot) error {
	m.nextID++
	lot.ID = m.nextID
	copied := *lot
	m.rows[lot.ID] = &copied
	return nil
}

func (m *memLots) GetByID(ctx context.Context, id int64) (*Lot, error) {
	l, ok := m.rows[id]
	if !ok || !l.IsActive {
		return nil, apperror.NewNotFound("lot", id)
	}
	copied := *l
	return &copied, nil
}

func (m *memLots) Update(ctx context.Context, lot *Lot) error {
	copied := *lot
	m.rows[lot.ID] = &copied
	return nil
}

func (m *memLots) SetActive(ctx context.Context, id int64, active bool) error {
	m.rows[id].IsActive = active
	return nil
}

func (m *memLots) ListByGroup(ctx context.Context, groupID int64) ([]*Lot, error) {
	var out []*Lot
	for _, l := range m.rows {
		if l.IsActive && l.GroupID == groupID {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

// masterCodes dispatches series lookups to the master repos, the way the
// production sequence reader queries the series' backing table.
type masterCodes struct {
	groups  *memGroups
	farmers *memFarmers
}

func (m *masterCodes) LastCode(ctx context.Context, series sequence.Series) (string, error) {
	switch series.Name {
	case "grower_group":
		return m.groups.LastCode(ctx)
	case "farmer":
		return m.farmers.LastCode(ctx, series.Scope)
	}
	return "", fmt.Errorf("unknown series %q", series.Name)
}

func newTestService() (*Service, *memGroups, *memFarmers, *memLots) {
	groups := newMemGroups()
	farmers := newMemFarmers()
	lots := newMemLots()
	seq := sequence.NewGenerator(&masterCodes{groups: groups, farmers: farmers})
	return NewService(groups, farmers, lots, seq, nil), groups, farmers, lots
}

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	t.Run("assigns sequential GG codes", func(t *testing.T) {
		first := &GrowerGroup{GroupName: "Nashik Growers", Village: "Nashik"}
		ok, msg := svc.CreateGroup(ctx, first)
		if !ok || msg != "Grower Group created successfully!" {
			t.Fatalf("CreateGroup() = %v, %q", ok, msg)
		}
		if first.GroupCode != "GG001" {
			t.Errorf("GroupCode = %q, want GG001", first.GroupCode)
		}
		if !first.IsActive {
			t.Error("IsActive = false, want true")
		}

		second := &GrowerGroup{GroupName: "Lasalgaon Growers"}
		svc.CreateGroup(ctx, second)
		if second.GroupCode != "GG002" {
			t.Errorf("GroupCode = %q, want GG002", second.GroupCode)
		}
	})

	t.Run("name is required", func(t *testing.T) {
		ok, msg := svc.CreateGroup(ctx, &GrowerGroup{Village: "Pune"})
		if ok || msg != "Error: group name is required" {
			t.Errorf("CreateGroup() = %v, %q", ok, msg)
		}
	})
}

func TestUpdateGroupKeepsCode(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	group := &GrowerGroup{GroupName: "Nashik Growers"}
	svc.CreateGroup(ctx, group)

	ok, msg := svc.UpdateGroup(ctx, group.ID, &GrowerGroup{GroupName: "Nashik Growers Co-op", GroupCode: "HACKED"})
	if !ok || msg != "Grower Group updated successfully!" {
		t.Fatalf("UpdateGroup() = %v, %q", ok, msg)
	}

	got, err := svc.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup() error = %v", err)
	}
	if got.GroupCode != "GG001" {
		t.Errorf("GroupCode = %q, want GG001", got.GroupCode)
	}
	if got.GroupName != "Nashik Growers Co-op" {
		t.Errorf("GroupName = %q", got.GroupName)
	}
}

func TestGroupName(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	group := &GrowerGroup{GroupName: "Nashik Growers"}
	svc.CreateGroup(ctx, group)

	if name := svc.GroupName(ctx, group.ID); name != "Nashik Growers" {
		t.Errorf("GroupName() = %q", name)
	}
	if name := svc.GroupName(ctx, 999); name != "Unknown" {
		t.Errorf("GroupName(missing) = %q, want Unknown", name)
	}
}

func TestCreateFarmer(t *testing.T) {
	ctx := context.Background()

	t.Run("codes are scoped to the group", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		groupA := &GrowerGroup{GroupName: "Nashik Growers"}
		groupB := &GrowerGroup{GroupName: "Lasalgaon Growers"}
		svc.CreateGroup(ctx, groupA)
		svc.CreateGroup(ctx, groupB)

		f1 := &Farmer{FarmerName: "Ramesh Patel", GroupID: groupA.ID}
		f2 := &Farmer{FarmerName: "Suresh Jadhav", GroupID: groupA.ID}
		f3 := &Farmer{FarmerName: "Ganesh More", GroupID: groupB.ID}

		ok, msg := svc.CreateFarmer(ctx, f1)
		if !ok || msg != "Farmer created successfully!" {
			t.Fatalf("CreateFarmer() = %v, %q", ok, msg)
		}
		svc.CreateFarmer(ctx, f2)
		svc.CreateFarmer(ctx, f3)

		if f1.FarmerCode != "GG001F001" {
			t.Errorf("f1 code = %q, want GG001F001", f1.FarmerCode)
		}
		if f2.FarmerCode != "GG001F002" {
			t.Errorf("f2 code = %q, want GG001F002", f2.FarmerCode)
		}
		if f3.FarmerCode != "GG002F001" {
			t.Errorf("f3 code = %q, want GG002F001", f3.FarmerCode)
		}
	})

	t.Run("missing group falls back to the bare prefix", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		farmer := &Farmer{FarmerName: "Orphan Farmer", GroupID: 42}
		ok, _ := svc.CreateFarmer(ctx, farmer)
		if !ok {
			t.Fatal("CreateFarmer() failed")
		}
		if farmer.FarmerCode != "GGF001" {
			t.Errorf("code = %q, want GGF001", farmer.FarmerCode)
		}
	})

	t.Run("group is required", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		ok, msg := svc.CreateFarmer(ctx, &Farmer{FarmerName: "No Group"})
		if ok || msg != "Error: grower group is required" {
			t.Errorf("CreateFarmer() = %v, %q", ok, msg)
		}
	})
}

func TestDeleteFarmer(t *testing.T) {
	ctx := context.Background()
	svc, _, farmers, _ := newTestService()

	group := &GrowerGroup{GroupName: "Nashik Growers"}
	svc.CreateGroup(ctx, group)
	farmer := &Farmer{FarmerName: "Ramesh Patel", GroupID: group.ID}
	svc.CreateFarmer(ctx, farmer)

	ok, msg := svc.DeleteFarmer(ctx, farmer.ID)
	if !ok || msg != "Deleted successfully" {
		t.Fatalf("DeleteFarmer() = %v, %q", ok, msg)
	}
	if farmers.rows[farmer.ID].IsActive {
		t.Error("farmer still active after delete")
	}

	ok, msg = svc.DeleteFarmer(ctx, farmer.ID)
	if ok || msg != "Not found" {
		t.Errorf("second DeleteFarmer() = %v, %q, want false, Not found", ok, msg)
	}
}

func TestLots(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	group := &GrowerGroup{GroupName: "Nashik Growers"}
	svc.CreateGroup(ctx, group)

	lot := &Lot{
		LotNo:       "L-17",
		GroupID:     group.ID,
		FarmerID:    1,
		ArrivalDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Bags:        40,
		WeightKg:    decimal.NewFromInt(2000),
	}
	ok, msg := svc.CreateLot(ctx, lot)
	if !ok || msg != "Lot created successfully!" {
		t.Fatalf("CreateLot() = %v, %q", ok, msg)
	}

	listed, err := svc.ListGroupLots(ctx, group.ID)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListGroupLots() = %d lots, err %v", len(listed), err)
	}

	ok, msg = svc.CreateLot(ctx, &Lot{GroupID: group.ID})
	if ok || msg != "Error: arrival date is required" {
		t.Errorf("CreateLot() = %v, %q", ok, msg)
	}
}
