package agri

import (
	"context"
	"time"

	"agriaccount/internal/core/sequence"
	"agriaccount/internal/domain/documents"
)

// Service implements grower group, farmer and lot master operations.
type Service struct {
	groups  GroupRepository
	farmers FarmerRepository
	lots    LotRepository
	seq     *sequence.Generator
	audit   documents.Auditor
}

func NewService(groups GroupRepository, farmers FarmerRepository, lots LotRepository, seq *sequence.Generator, audit documents.Auditor) *Service {
	return &Service{groups: groups, farmers: farmers, lots: lots, seq: seq, audit: audit}
}

// --- Grower groups ---

func (s *Service) ListGroups(ctx context.Context) ([]*GrowerGroup, error) {
	return s.groups.ListActive(ctx)
}

func (s *Service) GetGroup(ctx context.Context, id int64) (*GrowerGroup, error) {
	return s.groups.GetByID(ctx, id)
}

// CreateGroup assigns the next GG code and inserts the group.
func (s *Service) CreateGroup(ctx context.Context, group *GrowerGroup) (bool, string) {
	if err := group.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	group.GroupCode = s.seq.NextCode(ctx, sequence.GrowerGroups())
	group.CreatedAt = time.Now()
	group.IsActive = true
	if err := s.groups.Create(ctx, group); err != nil {
		return false, "Error: " + err.Error()
	}
	s.record(ctx, "GrowerGroup", group.ID, "create")
	return true, "Grower Group created successfully!"
}

// UpdateGroup rewrites the group's editable fields. The code is kept.
func (s *Service) UpdateGroup(ctx context.Context, id int64, group *GrowerGroup) (bool, string) {
	existing, err := s.groups.GetByID(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	group.ID = id
	group.GroupCode = existing.GroupCode
	group.CreatedAt = existing.CreatedAt
	if err := group.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	if err := s.groups.Update(ctx, group); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Grower Group updated successfully!"
}

func (s *Service) DeleteGroup(ctx context.Context, id int64) (bool, string) {
	existing, err := s.groups.GetByID(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	if err := s.groups.SetActive(ctx, id, false); err != nil {
		return false, "Error: " + err.Error()
	}
	s.record(ctx, "GrowerGroup", id, "delete")
	return true, "Deleted successfully"
}

// GroupName resolves a group's display name, "Unknown" when absent.
func (s *Service) GroupName(ctx context.Context, id int64) string {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil || g == nil {
		return "Unknown"
	}
	return g.GroupName
}

// --- Farmers ---

func (s *Service) ListFarmers(ctx context.Context) ([]*Farmer, error) {
	return s.farmers.ListActive(ctx)
}

func (s *Service) ListGroupFarmers(ctx context.Context, groupID int64) ([]*Farmer, error) {
	return s.farmers.ListByGroup(ctx, groupID)
}

func (s *Service) GetFarmer(ctx context.Context, id int64) (*Farmer, error) {
	return s.farmers.GetByID(ctx, id)
}

// CreateFarmer assigns the next code in the farmer's group scope and
// inserts the row. The prefix falls back to "GG" when the group is
// missing, matching the code the group itself would carry.
func (s *Service) CreateFarmer(ctx context.Context, farmer *Farmer) (bool, string) {
	if err := farmer.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	groupCode := "GG"
	if g, err := s.groups.GetByID(ctx, farmer.GroupID); err == nil && g != nil {
		groupCode = g.GroupCode
	}
	farmer.FarmerCode = s.seq.NextCode(ctx, sequence.Farmers(farmer.GroupID, groupCode))
	farmer.CreatedAt = time.Now()
	farmer.IsActive = true
	if err := s.farmers.Create(ctx, farmer); err != nil {
		return false, "Error: " + err.Error()
	}
	s.record(ctx, "Farmer", farmer.ID, "create")
	return true, "Farmer created successfully!"
}

// UpdateFarmer rewrites the farmer's editable fields. Code and creation
// stamp survive the update.
func (s *Service) UpdateFarmer(ctx context.Context, id int64, farmer *Farmer) (bool, string) {
	existing, err := s.farmers.GetByID(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	farmer.ID = id
	farmer.FarmerCode = existing.FarmerCode
	farmer.CreatedAt = existing.CreatedAt
	if err := farmer.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	if err := s.farmers.Update(ctx, farmer); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Farmer updated successfully!"
}

func (s *Service) DeleteFarmer(ctx context.Context, id int64) (bool, string) {
	existing, err := s.farmers.GetByID(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	if err := s.farmers.SetActive(ctx, id, false); err != nil {
		return false, "Error: " + err.Error()
	}
	s.record(ctx, "Farmer", id, "delete")
	return true, "Deleted successfully"
}

// --- Lots ---

func (s *Service) ListGroupLots(ctx context.Context, groupID int64) ([]*Lot, error) {
	return s.lots.ListByGroup(ctx, groupID)
}

func (s *Service) GetLot(ctx context.Context, id int64) (*Lot, error) {
	return s.lots.GetByID(ctx, id)
}

func (s *Service) CreateLot(ctx context.Context, lot *Lot) (bool, string) {
	if err := lot.Validate(ctx); err != nil {
		return false, "Error: " + err.Error()
	}
	lot.CreatedAt = time.Now()
	lot.IsActive = true
	if err := s.lots.Create(ctx, lot); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Lot created successfully!"
}

func (s *Service) UpdateLot(ctx context.Context, id int64, lot *Lot) (bool, string) {
	existing, err := s.lots.GetByID(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	lot.ID = id
	lot.CreatedAt = existing.CreatedAt
	if err := s.lots.Update(ctx, lot); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Lot updated successfully!"
}

func (s *Service) DeleteLot(ctx context.Context, id int64) (bool, string) {
	existing, err := s.lots.GetByID(ctx, id)
	if err != nil || existing == nil {
		return false, "Not found"
	}
	if err := s.lots.SetActive(ctx, id, false); err != nil {
		return false, "Error: " + err.Error()
	}
	return true, "Deleted successfully"
}

func (s *Service) record(ctx context.Context, entityType string, id int64, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, entityType, id, action)
}
