package worklog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/shared"
)

// NoteFormat distinguishes what a delivery note documents
type NoteFormat string

const (
	// NoteFormatHours documents worked hours
	NoteFormatHours NoteFormat = "hours"
	// NoteFormatMaterial documents delivered materials
	NoteFormatMaterial NoteFormat = "material"
)

// IsValid checks if the note format is valid
func (f NoteFormat) IsValid() bool {
	return f == NoteFormatHours || f == NoteFormatMaterial
}

// DeliveryNote is a work record progressing from draft to signed. A signed
// note carries a signature artifact reference and can no longer be deleted,
// though its PDF may be re-rendered.
type DeliveryNote struct {
	shared.OwnedAggregateRoot
	shared.Lifecycle
	ClientID             uuid.UUID
	ProjectID            uuid.UUID
	Format               NoteFormat
	Hours                []string
	Materials            []string
	Description          string
	WorkDate             time.Time
	SignatureArtifactRef string
	PDFArtifactRef       string
}

// NewDeliveryNote creates a new draft note. The format determines which entry
// list survives: an hours note never keeps materials and vice versa, even when
// the caller supplied both.
func NewDeliveryNote(ownerUserID, clientID, projectID uuid.UUID, format NoteFormat, hours, materials []string, description string, workDate time.Time) (*DeliveryNote, error) {
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Delivery note format must be hours or material")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID is required")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Project ID is required")
	}

	n := &DeliveryNote{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerUserID),
		Lifecycle:          shared.NewLifecycle(),
		ClientID:           clientID,
		ProjectID:          projectID,
		Format:             format,
		Hours:              hours,
		Materials:          materials,
		Description:        strings.TrimSpace(description),
		WorkDate:           workDate,
	}
	n.normalizeEntries()
	return n, nil
}

// normalizeEntries clears the list that does not match the format and replaces
// nil slices with empty ones so persisted notes always carry both lists.
func (n *DeliveryNote) normalizeEntries() {
	switch n.Format {
	case NoteFormatHours:
		n.Materials = []string{}
	case NoteFormatMaterial:
		n.Hours = []string{}
	}
	if n.Hours == nil {
		n.Hours = []string{}
	}
	if n.Materials == nil {
		n.Materials = []string{}
	}
}

// IsSigned reports whether the note has been signed
func (n *DeliveryNote) IsSigned() bool {
	return n.SignatureArtifactRef != ""
}

// AttachSignature records the uploaded signature artifact and moves the note
// to the signed state. Signing is one-directional.
func (n *DeliveryNote) AttachSignature(ref string) error {
	if ref == "" {
		return shared.NewDomainError("INVALID_INPUT", "Signature artifact reference is required")
	}
	if n.IsSigned() {
		return shared.NewDomainError("INVALID_STATE", "Delivery note is already signed")
	}
	n.SignatureArtifactRef = ref
	n.Touch()
	return nil
}

// AttachPDF records the rendered document artifact, overwriting any previous
// reference
func (n *DeliveryNote) AttachPDF(ref string) error {
	if ref == "" {
		return shared.NewDomainError("INVALID_INPUT", "PDF artifact reference is required")
	}
	n.PDFArtifactRef = ref
	n.Touch()
	return nil
}

// EnsureDeletable rejects deletion of signed notes
func (n *DeliveryNote) EnsureDeletable() error {
	if n.IsSigned() {
		return shared.NewDomainError("INVALID_STATE", "Signed delivery note cannot be deleted")
	}
	return nil
}

// Archive transitions the note to the archived state
func (n *DeliveryNote) Archive() error {
	if err := n.Lifecycle.Archive(); err != nil {
		return err
	}
	n.Touch()
	return nil
}

// Restore transitions the note back to the active state
func (n *DeliveryNote) Restore() error {
	if err := n.Lifecycle.Restore(); err != nil {
		return err
	}
	n.Touch()
	return nil
}
