package worklog

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/access"
	"github.com/worklog/backend/internal/domain/directory"
	"github.com/worklog/backend/internal/domain/identity"
	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/domain/worklog"
	"go.uber.org/zap"
)

// workDateLayout is the wire format for the work date
const workDateLayout = "2006-01-02"

// DeliveryNoteService drives the draft -> signed state machine. Signing
// uploads the signature artifact, persists its reference, then renders and
// uploads the PDF; a failure in any step leaves no dangling reference behind.
type DeliveryNoteService struct {
	notes    worklog.DeliveryNoteRepository
	clients  directory.ClientRepository
	projects directory.ProjectRepository
	users    identity.UserRepository
	resolver *access.Resolver
	store    ArtifactStore
	renderer NoteRenderer
	logger   *zap.Logger
}

// NewDeliveryNoteService creates a new delivery note service
func NewDeliveryNoteService(
	notes worklog.DeliveryNoteRepository,
	clients directory.ClientRepository,
	projects directory.ProjectRepository,
	users identity.UserRepository,
	resolver *access.Resolver,
	store ArtifactStore,
	renderer NoteRenderer,
	logger *zap.Logger,
) *DeliveryNoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryNoteService{
		notes:    notes,
		clients:  clients,
		projects: projects,
		users:    users,
		resolver: resolver,
		store:    store,
		renderer: renderer,
		logger:   logger,
	}
}

// Create creates a draft note. Client and project references are stored as
// given; they are validated by the callers that created them.
func (s *DeliveryNoteService) Create(ctx context.Context, actorID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid client ID")
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid project ID")
	}
	workDate, err := time.Parse(workDateLayout, req.WorkDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid work date, expected YYYY-MM-DD")
	}

	note, err := worklog.NewDeliveryNote(actorID, clientID, projectID,
		worklog.NoteFormat(req.Format), req.Hours, req.Materials, req.Description, workDate)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("Delivery note created",
		zap.String("note_id", note.ID.String()),
		zap.String("owner_id", actorID.String()),
	)
	return ToNoteResponse(note), nil
}

// GetByID returns an active note visible to the actor
func (s *DeliveryNoteService) GetByID(ctx context.Context, actorID, noteID uuid.UUID) (*NoteResponse, error) {
	note, err := s.notes.FindActiveByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, note.OwnerUserID); err != nil {
		return nil, err
	}
	return ToNoteResponse(note), nil
}

// List returns active notes: the whole tenant's when company is true,
// otherwise only the actor's own
func (s *DeliveryNoteService) List(ctx context.Context, actorID uuid.UUID, company bool, filter shared.Filter) (*shared.Paginated[NoteResponse], error) {
	owners, err := s.scopeOwners(ctx, actorID, company)
	if err != nil {
		return nil, err
	}
	page, err := s.notes.ListActiveByOwners(ctx, owners, filter)
	if err != nil {
		return nil, err
	}
	return toNoteResponses(page), nil
}

// ListArchived returns archived notes with the same company toggle as List
func (s *DeliveryNoteService) ListArchived(ctx context.Context, actorID uuid.UUID, company bool, filter shared.Filter) (*shared.Paginated[NoteResponse], error) {
	owners, err := s.scopeOwners(ctx, actorID, company)
	if err != nil {
		return nil, err
	}
	page, err := s.notes.ListArchivedByOwners(ctx, owners, filter)
	if err != nil {
		return nil, err
	}
	return toNoteResponses(page), nil
}

// Sign moves a draft note to the signed state: upload signature, persist its
// reference, then render and upload the PDF. The PDF reference is persisted
// only after a successful render and upload.
func (s *DeliveryNoteService) Sign(ctx context.Context, actorID, noteID uuid.UUID, req SignNoteRequest) (*NoteResponse, error) {
	note, err := s.notes.FindActiveByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, note.OwnerUserID); err != nil {
		return nil, err
	}
	if note.IsSigned() {
		return nil, shared.NewDomainError("INVALID_STATE", "Delivery note is already signed")
	}

	signature, err := base64.StdEncoding.DecodeString(req.Signature)
	if err != nil || len(signature) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Signature must be base64-encoded image data")
	}

	sigRef, err := s.store.Upload(ctx, fmt.Sprintf("signatures/%s.png", note.ID), signature, "image/png")
	if err != nil {
		return nil, fmt.Errorf("failed to upload signature: %w", err)
	}
	if err := note.AttachSignature(sigRef); err != nil {
		return nil, err
	}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}

	if err := s.renderAndAttachPDF(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("Delivery note signed",
		zap.String("note_id", note.ID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return ToNoteResponse(note), nil
}

// GetPDF returns the rendered document for a note, rendering and uploading
// it on demand when no reference exists yet. A cached reference is fetched
// directly without re-rendering.
func (s *DeliveryNoteService) GetPDF(ctx context.Context, actorID, noteID uuid.UUID) ([]byte, error) {
	note, err := s.notes.FindActiveByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, note.OwnerUserID); err != nil {
		return nil, err
	}

	if note.PDFArtifactRef != "" {
		data, err := s.store.Fetch(ctx, note.PDFArtifactRef)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch document: %w", err)
		}
		return data, nil
	}

	data, err := s.renderNote(ctx, note)
	if err != nil {
		return nil, err
	}
	ref, err := s.store.Upload(ctx, fmt.Sprintf("deliverynotes/%s.pdf", note.ID), data, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}
	if err := note.AttachPDF(ref); err != nil {
		return nil, err
	}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return data, nil
}

// Delete hard-deletes a draft note. Signed notes are immutable for deletion.
func (s *DeliveryNoteService) Delete(ctx context.Context, actorID, noteID uuid.UUID) error {
	note, err := s.notes.FindActiveByID(ctx, noteID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actorID, note.OwnerUserID); err != nil {
		return err
	}
	if err := note.EnsureDeletable(); err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, noteID); err != nil {
		return err
	}

	s.logger.Info("Delivery note deleted",
		zap.String("note_id", noteID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

// Archive soft-deletes an active note
func (s *DeliveryNoteService) Archive(ctx context.Context, actorID, noteID uuid.UUID) (*NoteResponse, error) {
	note, err := s.notes.FindActiveByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, note.OwnerUserID); err != nil {
		return nil, err
	}
	if err := note.Archive(); err != nil {
		return nil, err
	}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return ToNoteResponse(note), nil
}

// Restore brings an archived note back to the active state
func (s *DeliveryNoteService) Restore(ctx context.Context, actorID, noteID uuid.UUID) (*NoteResponse, error) {
	note, err := s.notes.FindArchivedByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actorID, note.OwnerUserID); err != nil {
		return nil, err
	}
	if err := note.Restore(); err != nil {
		return nil, err
	}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return ToNoteResponse(note), nil
}

// renderAndAttachPDF renders the note, uploads the document and persists the
// new reference
func (s *DeliveryNoteService) renderAndAttachPDF(ctx context.Context, note *worklog.DeliveryNote) error {
	data, err := s.renderNote(ctx, note)
	if err != nil {
		return err
	}
	ref, err := s.store.Upload(ctx, fmt.Sprintf("deliverynotes/%s.pdf", note.ID), data, "application/pdf")
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}
	if err := note.AttachPDF(ref); err != nil {
		return err
	}
	return s.notes.Save(ctx, note)
}

func (s *DeliveryNoteService) renderNote(ctx context.Context, note *worklog.DeliveryNote) ([]byte, error) {
	snapshot, err := s.buildSnapshot(ctx, note)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.Render(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return data, nil
}

// buildSnapshot loads the owner, client and project referenced by the note,
// plus the signature image when present
func (s *DeliveryNoteService) buildSnapshot(ctx context.Context, note *worklog.DeliveryNote) (*NoteSnapshot, error) {
	owner, err := s.users.FindByID(ctx, note.OwnerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load note owner: %w", err)
	}
	client, err := s.clients.FindByID(ctx, note.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load note client: %w", err)
	}
	project, err := s.projects.FindByID(ctx, note.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load note project: %w", err)
	}

	snapshot := &NoteSnapshot{
		NoteID:      note.ID.String(),
		Format:      note.Format,
		Hours:       note.Hours,
		Materials:   note.Materials,
		Description: note.Description,
		WorkDate:    note.WorkDate,
		UserName:    fmt.Sprintf("%s %s", owner.Name, owner.Surname),
		UserEmail:   owner.Email,
		ClientName:  client.Name,
		ClientTaxID: client.TaxID,
		ClientAddress: fmt.Sprintf("%s %d, %d %s (%s)",
			client.Address.Street, client.Address.Number,
			client.Address.Postal, client.Address.City, client.Address.Province),
		ProjectName: project.Name,
		ProjectCode: project.ProjectCode,
	}
	if owner.Company != nil {
		snapshot.CompanyName = owner.Company.Name
	}

	if note.SignatureArtifactRef != "" {
		signature, err := s.store.Fetch(ctx, note.SignatureArtifactRef)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch signature artifact: %w", err)
		}
		snapshot.Signature = signature
	}
	return snapshot, nil
}

// scopeOwners resolves the owner set for listings: tenant-wide or self-only
func (s *DeliveryNoteService) scopeOwners(ctx context.Context, actorID uuid.UUID, company bool) ([]uuid.UUID, error) {
	if !company {
		return []uuid.UUID{actorID}, nil
	}
	return s.resolver.TenantMemberIDs(ctx, actorID)
}

func (s *DeliveryNoteService) authorize(ctx context.Context, actorID, ownerID uuid.UUID) error {
	decision, err := s.resolver.Resolve(ctx, actorID, ownerID)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return shared.ErrForbidden
	}
	return nil
}
