package creditnote

import (
	"context"
	"time"

	"agriaccount/internal/core/appctx"
	"agriaccount/internal/core/sequence"
	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/documents"
	"agriaccount/internal/domain/rules"
	"agriaccount/pkg/logger"
)

// DocType is the entry-profile transaction type for credit notes.
const DocType = "CreditNote"

// Service provides business operations for credit notes.
type Service struct {
	repo     Repository
	resolver *accounts.Resolver
	engine   *rules.Engine
	seq      *sequence.Generator
	workflow *documents.Workflow
}

// NewService creates a credit note service.
func NewService(
	repo Repository,
	resolver *accounts.Resolver,
	engine *rules.Engine,
	seq *sequence.Generator,
	audit documents.Auditor,
) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		engine:   engine,
		seq:      seq,
		workflow: documents.NewWorkflow(repo, DocType, documents.CreditNoteMessages(), audit),
	}
}

// List returns active credit notes matching the filter with resolved
// counterparty names, plus total count and page count.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*CreditNote, int64, int, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	notes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, 0, err
	}

	s.populateNames(ctx, notes)

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return notes, total, totalPages, nil
}

// GetByID returns one credit note with resolved counterparty names.
func (s *Service) GetByID(ctx context.Context, id int64) (*CreditNote, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateNames(ctx, []*CreditNote{note})
	return note, nil
}

// Create stamps the note with the next CN number, the creation timestamp
// and the initial status, then persists it.
func (s *Service) Create(ctx context.Context, note *CreditNote) (bool, string) {
	if err := note.Validate(ctx); err != nil {
		return false, err.Error()
	}

	note.Number = s.seq.NextCode(ctx, sequence.CreditNotes())
	note.CreatedAt = time.Now()
	note.CreatedBy = appctx.GetUserName(ctx)
	note.IsActive = true
	if note.Status == "" {
		note.Status = documents.StatusUnApproved
	}

	if err := s.repo.Create(ctx, note); err != nil {
		logger.Error(ctx, "credit note create failed", "error", err)
		return false, "Error: " + err.Error()
	}

	logger.Info(ctx, "credit note created", "id", note.ID, "number", note.Number)
	return true, "Created successfully"
}

// Update rewrites an existing note's editable fields.
func (s *Service) Update(ctx context.Context, note *CreditNote) (bool, string) {
	if err := note.Validate(ctx); err != nil {
		return false, err.Error()
	}

	if _, err := s.repo.GetByID(ctx, note.ID); err != nil {
		return false, "Not found"
	}
	if err := s.repo.Update(ctx, note); err != nil {
		logger.Error(ctx, "credit note update failed", "id", note.ID, "error", err)
		return false, "Error: " + err.Error()
	}
	return true, "Updated successfully"
}

// Approve transitions the note to Approved.
func (s *Service) Approve(ctx context.Context, id int64) (bool, string) {
	return s.workflow.Approve(ctx, id)
}

// Unapprove reverts an approved note.
func (s *Service) Unapprove(ctx context.Context, id int64) (bool, string) {
	return s.workflow.Unapprove(ctx, id)
}

// Delete soft-deletes the note; the approval status survives.
func (s *Service) Delete(ctx context.Context, id int64) (bool, string) {
	return s.workflow.Delete(ctx, id)
}

// SearchAccounts offers counterparty candidates allowed for the role.
func (s *Service) SearchAccounts(ctx context.Context, searchTerm string, entryProfileID *int64, role rules.Role) []rules.LookupItem {
	return s.engine.ListAllowedAccounts(ctx, searchTerm, entryProfileID, role)
}

// EntryProfiles lists profiles selectable on the credit note screen.
func (s *Service) EntryProfiles(ctx context.Context) ([]rules.EntryProfile, error) {
	return s.engine.ListEntryProfiles(ctx, DocType)
}

// InferEntryProfile derives the forced profile from either leg's rules.
func (s *Service) InferEntryProfile(ctx context.Context, note *CreditNote) *int64 {
	return s.engine.InferEntryProfile(ctx, note.CreditRef(), note.DebitRef())
}

func (s *Service) populateNames(ctx context.Context, notes []*CreditNote) {
	rows := make([]accounts.NamePopulator, len(notes))
	for i, n := range notes {
		rows[i] = n
	}
	s.resolver.PopulateNames(ctx, rows)
}
