// Package documents holds the approval workflow shared by every financial
// document type (credit notes, receipt entries, payment settlements).
package documents

import (
	"context"
	"time"

	"agriaccount/pkg/logger"
)

// Status is the approval state of a document.
type Status string

const (
	// StatusPending is the credit note's label for its initial state.
	// Workflow guards treat it as identical to StatusUnApproved.
	StatusPending    Status = "Pending"
	StatusUnApproved Status = "UnApproved"
	StatusApproved   Status = "Approved"
)

// IsApproved reports whether the status is the approved state.
func (s Status) IsApproved() bool {
	return s == StatusApproved
}

// Meta carries the fields every financial document shares.
type Meta struct {
	ID        int64     `db:"id" json:"id"`
	Status    Status    `db:"status" json:"status"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
}

// Messages are the outcome strings a document type reports. The exact
// wording is part of the UI contract and is pinned by tests.
type Messages struct {
	NotFound        string
	AlreadyApproved string
	NotApproved     string
	Approved        string
	Unapproved      string
	Deleted         string
}

// DefaultMessages returns the wording shared by most document types.
func DefaultMessages() Messages {
	return Messages{
		NotFound:        "Not found",
		AlreadyApproved: "Already approved",
		NotApproved:     "Entry is not approved",
		Approved:        "Approved successfully",
		Unapproved:      "Unapproved successfully",
		Deleted:         "Deleted successfully",
	}
}

// CreditNoteMessages keeps the credit note's historical wording.
func CreditNoteMessages() Messages {
	m := DefaultMessages()
	m.NotApproved = "Note is not approved"
	return m
}

// Store is the persistence surface the workflow drives. Status and the
// soft-delete flag are only ever mutated through these two statements;
// nothing overwrites them as a side effect of a broader update.
type Store interface {
	// GetStatus returns the document's status and soft-delete flag, or
	// apperror.NewNotFound when the id does not exist.
	GetStatus(ctx context.Context, id int64) (Status, bool, error)

	// UpdateStatus persists a new approval status.
	UpdateStatus(ctx context.Context, id int64, status Status) error

	// SetActive persists the soft-delete flag. Status is untouched.
	SetActive(ctx context.Context, id int64, active bool) error
}

// Auditor records who did what to which document. Optional.
type Auditor interface {
	Record(ctx context.Context, entityType string, entityID int64, action string)
}

// Workflow is the two-state approval machine: UnApproved ⇄ Approved.
// Transitions are idempotency-guarded; a repeated approve is rejected,
// not silently accepted. Expected business failures come back as
// (false, message) pairs, never as errors.
type Workflow struct {
	store      Store
	entityType string
	msgs       Messages
	audit      Auditor
}

// NewWorkflow creates a workflow for one document type.
func NewWorkflow(store Store, entityType string, msgs Messages, audit Auditor) *Workflow {
	return &Workflow{store: store, entityType: entityType, msgs: msgs, audit: audit}
}

// Approve transitions the document to Approved.
func (w *Workflow) Approve(ctx context.Context, id int64) (bool, string) {
	status, active, err := w.store.GetStatus(ctx, id)
	if err != nil || !active {
		return false, w.msgs.NotFound
	}
	if status.IsApproved() {
		return false, w.msgs.AlreadyApproved
	}

	if err := w.store.UpdateStatus(ctx, id, StatusApproved); err != nil {
		logger.Error(ctx, "approve failed", "entity", w.entityType, "id", id, "error", err)
		return false, "Error: " + err.Error()
	}
	w.record(ctx, id, "approve")
	return true, w.msgs.Approved
}

// Unapprove reverts an approved document to UnApproved.
func (w *Workflow) Unapprove(ctx context.Context, id int64) (bool, string) {
	status, active, err := w.store.GetStatus(ctx, id)
	if err != nil || !active {
		return false, w.msgs.NotFound
	}
	if !status.IsApproved() {
		return false, w.msgs.NotApproved
	}

	if err := w.store.UpdateStatus(ctx, id, StatusUnApproved); err != nil {
		logger.Error(ctx, "unapprove failed", "entity", w.entityType, "id", id, "error", err)
		return false, "Error: " + err.Error()
	}
	w.record(ctx, id, "unapprove")
	return true, w.msgs.Unapproved
}

// Delete soft-deletes the document regardless of approval state. The
// approval status is preserved; only the active flag changes.
func (w *Workflow) Delete(ctx context.Context, id int64) (bool, string) {
	_, active, err := w.store.GetStatus(ctx, id)
	if err != nil || !active {
		return false, w.msgs.NotFound
	}

	if err := w.store.SetActive(ctx, id, false); err != nil {
		logger.Error(ctx, "delete failed", "entity", w.entityType, "id", id, "error", err)
		return false, "Error: " + err.Error()
	}
	w.record(ctx, id, "delete")
	return true, w.msgs.Deleted
}

func (w *Workflow) record(ctx context.Context, id int64, action string) {
	if w.audit != nil {
		w.audit.Record(ctx, w.entityType, id, action)
	}
}
