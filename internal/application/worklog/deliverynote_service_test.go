package worklog

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/worklog/backend/internal/domain/access"
	"github.com/worklog/backend/internal/domain/directory"
	"github.com/worklog/backend/internal/domain/identity"
	"github.com/worklog/backend/internal/domain/shared"
	"github.com/worklog/backend/internal/domain/worklog"
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*worklog.DeliveryNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worklog.DeliveryNote), args.Error(1)
}

func (m *mockNoteRepository) FindArchivedByID(ctx context.Context, id uuid.UUID) (*worklog.DeliveryNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worklog.DeliveryNote), args.Error(1)
}

func (m *mockNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*worklog.DeliveryNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worklog.DeliveryNote), args.Error(1)
}

func (m *mockNoteRepository) ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[worklog.DeliveryNote], error) {
	args := m.Called(ctx, ownerIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[worklog.DeliveryNote]), args.Error(1)
}

func (m *mockNoteRepository) ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[worklog.DeliveryNote], error) {
	args := m.Called(ctx, ownerIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[worklog.DeliveryNote]), args.Error(1)
}

func (m *mockNoteRepository) Save(ctx context.Context, note *worklog.DeliveryNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*directory.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Client), args.Error(1)
}

func (m *mockClientRepository) FindArchivedByID(ctx context.Context, id uuid.UUID) (*directory.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Client), args.Error(1)
}

func (m *mockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Client), args.Error(1)
}

func (m *mockClientRepository) ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[directory.Client], error) {
	args := m.Called(ctx, ownerIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[directory.Client]), args.Error(1)
}

func (m *mockClientRepository) ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[directory.Client], error) {
	args := m.Called(ctx, ownerIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[directory.Client]), args.Error(1)
}

func (m *mockClientRepository) ExistsActiveByNameForOwners(ctx context.Context, name string, ownerIDs []uuid.UUID, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, ownerIDs, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockClientRepository) Save(ctx context.Context, client *directory.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProjectRepository struct {
	mock.Mock
}

func (m *mockProjectRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*directory.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Project), args.Error(1)
}

func (m *mockProjectRepository) FindArchivedByID(ctx context.Context, id uuid.UUID) (*directory.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Project), args.Error(1)
}

func (m *mockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Project), args.Error(1)
}

func (m *mockProjectRepository) ListActiveByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[directory.Project], error) {
	args := m.Called(ctx, ownerIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[directory.Project]), args.Error(1)
}

func (m *mockProjectRepository) ListArchivedByOwners(ctx context.Context, ownerIDs []uuid.UUID, filter shared.Filter) (*shared.Paginated[directory.Project], error) {
	args := m.Called(ctx, ownerIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[directory.Project]), args.Error(1)
}

func (m *mockProjectRepository) ExistsActiveByNameOrCodeForOwners(ctx context.Context, name, projectCode string, ownerIDs []uuid.UUID, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, projectCode, ownerIDs, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockProjectRepository) Save(ctx context.Context, project *directory.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByCompanyCIF(ctx context.Context, cif string) ([]*identity.User, error) {
	args := m.Called(ctx, cif)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByCompanyCIF(ctx context.Context, cif string, excludeUserID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cif, excludeUserID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockArtifactStore struct {
	mock.Mock
}

func (m *mockArtifactStore) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, name, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockArtifactStore) Fetch(ctx context.Context, ref string) ([]byte, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockNoteRenderer struct {
	mock.Mock
}

func (m *mockNoteRenderer) Render(ctx context.Context, snapshot *NoteSnapshot) ([]byte, error) {
	args := m.Called(ctx, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// noteServiceFixture bundles every collaborator of a DeliveryNoteService
type noteServiceFixture struct {
	notes    *mockNoteRepository
	clients  *mockClientRepository
	projects *mockProjectRepository
	users    *mockUserRepository
	store    *mockArtifactStore
	renderer *mockNoteRenderer
	svc      *DeliveryNoteService
}

func newNoteServiceFixture() *noteServiceFixture {
	f := &noteServiceFixture{
		notes:    new(mockNoteRepository),
		clients:  new(mockClientRepository),
		projects: new(mockProjectRepository),
		users:    new(mockUserRepository),
		store:    new(mockArtifactStore),
		renderer: new(mockNoteRenderer),
	}
	f.svc = NewDeliveryNoteService(f.notes, f.clients, f.projects, f.users,
		access.NewResolver(f.users), f.store, f.renderer, nil)
	return f
}

func testUser(t *testing.T, id uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser("worker@example.com", "secret-password", "Jane", "Doe")
	require.NoError(t, err)
	user.ID = id
	return user
}

func testNote(t *testing.T, ownerID uuid.UUID) *worklog.DeliveryNote {
	t.Helper()
	note, err := worklog.NewDeliveryNote(ownerID, uuid.New(), uuid.New(), worklog.NoteFormatHours,
		[]string{"8h installation"}, nil, "on-site work", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return note
}

// expectSnapshotLookups wires the owner/client/project lookups the renderer
// snapshot needs
func (f *noteServiceFixture) expectSnapshotLookups(t *testing.T, ctx context.Context, note *worklog.DeliveryNote) {
	t.Helper()
	client, err := directory.NewClient(note.OwnerUserID, "Acme SL", "B12345678", directory.Address{
		Street: "Gran Via", Number: 1, Postal: 28013, City: "Madrid", Province: "Madrid",
	})
	require.NoError(t, err)
	project, err := directory.NewProject(note.OwnerUserID, note.ClientID, "Warehouse refit", "WR-01")
	require.NoError(t, err)

	f.users.On("FindByID", ctx, note.OwnerUserID).Return(testUser(t, note.OwnerUserID), nil)
	f.clients.On("FindByID", ctx, note.ClientID).Return(client, nil)
	f.projects.On("FindByID", ctx, note.ProjectID).Return(project, nil)
}

func TestDeliveryNoteServiceCreate(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("creates draft note", func(t *testing.T) {
		f := newNoteServiceFixture()
		f.notes.On("Save", ctx, mock.AnythingOfType("*worklog.DeliveryNote")).Return(nil)

		resp, err := f.svc.Create(ctx, actorID, CreateNoteRequest{
			ClientID:  uuid.New().String(),
			ProjectID: uuid.New().String(),
			Format:    "hours",
			Hours:     FlexStrings{"8h installation"},
			WorkDate:  "2026-03-10",
		})
		require.NoError(t, err)
		assert.False(t, resp.Signed)
		assert.Equal(t, []string{"8h installation"}, resp.Hours)
		assert.Empty(t, resp.Materials)
		assert.Equal(t, actorID.String(), resp.OwnerUserID)
	})

	t.Run("material note discards supplied hours", func(t *testing.T) {
		f := newNoteServiceFixture()
		f.notes.On("Save", ctx, mock.AnythingOfType("*worklog.DeliveryNote")).Return(nil)

		resp, err := f.svc.Create(ctx, actorID, CreateNoteRequest{
			ClientID:  uuid.New().String(),
			ProjectID: uuid.New().String(),
			Format:    "material",
			Hours:     FlexStrings{"8h"},
			Materials: FlexStrings{"3x cable"},
			WorkDate:  "2026-03-10",
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Hours)
		assert.Equal(t, []string{"3x cable"}, resp.Materials)
	})

	t.Run("rejects malformed work date", func(t *testing.T) {
		f := newNoteServiceFixture()
		_, err := f.svc.Create(ctx, actorID, CreateNoteRequest{
			ClientID:  uuid.New().String(),
			ProjectID: uuid.New().String(),
			Format:    "hours",
			WorkDate:  "10/03/2026",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		f.notes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDeliveryNoteServiceSign(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	signature := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(signature)

	t.Run("uploads signature then renders and attaches the document", func(t *testing.T) {
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		pdf := []byte("%PDF-1.7 rendered")

		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)
		f.store.On("Upload", ctx, "signatures/"+note.ID.String()+".png", signature, "image/png").
			Return("signatures/"+note.ID.String()+".png", nil)
		f.expectSnapshotLookups(t, ctx, note)
		f.store.On("Fetch", ctx, "signatures/"+note.ID.String()+".png").Return(signature, nil)
		f.renderer.On("Render", ctx, mock.MatchedBy(func(s *NoteSnapshot) bool {
			return s.Signed() && s.ClientName == "Acme SL"
		})).Return(pdf, nil)
		f.store.On("Upload", ctx, "deliverynotes/"+note.ID.String()+".pdf", pdf, "application/pdf").
			Return("deliverynotes/"+note.ID.String()+".pdf", nil)
		f.notes.On("Save", ctx, note).Return(nil)

		resp, err := f.svc.Sign(ctx, actorID, note.ID, SignNoteRequest{Signature: encoded})
		require.NoError(t, err)
		assert.True(t, resp.Signed)
		assert.NotEmpty(t, resp.SignatureArtifactRef)
		assert.NotEmpty(t, resp.PDFArtifactRef)
		f.store.AssertExpectations(t)
		f.renderer.AssertExpectations(t)
	})

	t.Run("signing an already signed note fails", func(t *testing.T) {
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		require.NoError(t, note.AttachSignature("signatures/existing.png"))

		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)

		_, err := f.svc.Sign(ctx, actorID, note.ID, SignNoteRequest{Signature: encoded})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects signatures that are not base64", func(t *testing.T) {
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)

		_, err := f.svc.Sign(ctx, actorID, note.ID, SignNoteRequest{Signature: "not base64!!"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("tenant peer may sign", func(t *testing.T) {
		peerID := uuid.New()
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		pdf := []byte("%PDF-1.7 rendered")

		actor := testUser(t, peerID)
		require.NoError(t, actor.SetCompany(identity.Company{Name: "Acme SL", CIF: "B12345678"}))
		owner := testUser(t, actorID)
		require.NoError(t, owner.SetCompany(identity.Company{Name: "Acme SL", CIF: "B12345678"}))

		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)
		f.users.On("FindByID", ctx, peerID).Return(actor, nil)
		f.users.On("FindByID", ctx, actorID).Return(owner, nil)
		f.store.On("Upload", ctx, mock.Anything, signature, "image/png").Return("signatures/ref.png", nil)

		client, err := directory.NewClient(actorID, "Acme SL", "B12345678", directory.Address{})
		require.NoError(t, err)
		project, err := directory.NewProject(actorID, note.ClientID, "Warehouse refit", "WR-01")
		require.NoError(t, err)
		f.clients.On("FindByID", ctx, note.ClientID).Return(client, nil)
		f.projects.On("FindByID", ctx, note.ProjectID).Return(project, nil)
		f.store.On("Fetch", ctx, "signatures/ref.png").Return(signature, nil)
		f.renderer.On("Render", ctx, mock.Anything).Return(pdf, nil)
		f.store.On("Upload", ctx, mock.Anything, pdf, "application/pdf").Return("deliverynotes/ref.pdf", nil)
		f.notes.On("Save", ctx, note).Return(nil)

		resp, err := f.svc.Sign(ctx, peerID, note.ID, SignNoteRequest{Signature: encoded})
		require.NoError(t, err)
		assert.True(t, resp.Signed)
	})
}

func TestDeliveryNoteServiceGetPDF(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("cached reference is fetched without re-rendering", func(t *testing.T) {
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		require.NoError(t, note.AttachPDF("deliverynotes/cached.pdf"))
		pdf := []byte("%PDF-1.7 cached")

		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)
		f.store.On("Fetch", ctx, "deliverynotes/cached.pdf").Return(pdf, nil)

		data, err := f.svc.GetPDF(ctx, actorID, note.ID)
		require.NoError(t, err)
		assert.Equal(t, pdf, data)
		f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
		f.notes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing reference renders, uploads and persists", func(t *testing.T) {
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		pdf := []byte("%PDF-1.7 fresh")

		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)
		f.expectSnapshotLookups(t, ctx, note)
		f.renderer.On("Render", ctx, mock.MatchedBy(func(s *NoteSnapshot) bool {
			return !s.Signed()
		})).Return(pdf, nil)
		f.store.On("Upload", ctx, "deliverynotes/"+note.ID.String()+".pdf", pdf, "application/pdf").
			Return("deliverynotes/"+note.ID.String()+".pdf", nil)
		f.notes.On("Save", ctx, note).Return(nil)

		data, err := f.svc.GetPDF(ctx, actorID, note.ID)
		require.NoError(t, err)
		assert.Equal(t, pdf, data)
		assert.Equal(t, "deliverynotes/"+note.ID.String()+".pdf", note.PDFArtifactRef)
		f.notes.AssertExpectations(t)
	})
}

func TestDeliveryNoteServiceDelete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("deletes a draft", func(t *testing.T) {
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)
		f.notes.On("Delete", ctx, note.ID).Return(nil)

		require.NoError(t, f.svc.Delete(ctx, actorID, note.ID))
		f.notes.AssertExpectations(t)
	})

	t.Run("refuses to delete a signed note", func(t *testing.T) {
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		require.NoError(t, note.AttachSignature("signatures/ref.png"))
		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)

		err := f.svc.Delete(ctx, actorID, note.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.notes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found wins over forbidden", func(t *testing.T) {
		f := newNoteServiceFixture()
		noteID := uuid.New()
		f.notes.On("FindActiveByID", ctx, noteID).Return(nil, shared.ErrNotFound)

		err := f.svc.Delete(ctx, uuid.New(), noteID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestDeliveryNoteServiceList(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	filter := shared.DefaultFilter()

	t.Run("personal scope lists only the actor's notes", func(t *testing.T) {
		f := newNoteServiceFixture()
		page := shared.NewPaginated([]worklog.DeliveryNote{*testNote(t, actorID)}, 1, filter.Page, filter.PageSize)
		f.notes.On("ListActiveByOwners", ctx, []uuid.UUID{actorID}, filter).Return(&page, nil)

		result, err := f.svc.List(ctx, actorID, false, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		f.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("company scope expands to the tenant member set", func(t *testing.T) {
		peerID := uuid.New()
		f := newNoteServiceFixture()

		actor := testUser(t, actorID)
		require.NoError(t, actor.SetCompany(identity.Company{Name: "Acme SL", CIF: "B12345678"}))
		peer := testUser(t, peerID)
		require.NoError(t, peer.SetCompany(identity.Company{Name: "Acme SL", CIF: "B12345678"}))

		f.users.On("FindByID", ctx, actorID).Return(actor, nil)
		f.users.On("FindByCompanyCIF", ctx, "B12345678").Return([]*identity.User{actor, peer}, nil)

		page := shared.NewPaginated([]worklog.DeliveryNote{}, 0, filter.Page, filter.PageSize)
		f.notes.On("ListActiveByOwners", ctx,
			mock.MatchedBy(func(ids []uuid.UUID) bool { return len(ids) == 2 }), filter).Return(&page, nil)

		_, err := f.svc.List(ctx, actorID, true, filter)
		require.NoError(t, err)
		f.notes.AssertExpectations(t)
	})
}

func TestDeliveryNoteServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("archive then restore round trip", func(t *testing.T) {
		f := newNoteServiceFixture()
		note := testNote(t, actorID)
		f.notes.On("FindActiveByID", ctx, note.ID).Return(note, nil)
		f.notes.On("FindArchivedByID", ctx, note.ID).Return(note, nil)
		f.notes.On("Save", ctx, note).Return(nil)

		archived, err := f.svc.Archive(ctx, actorID, note.ID)
		require.NoError(t, err)
		assert.True(t, archived.Archived)

		restored, err := f.svc.Restore(ctx, actorID, note.ID)
		require.NoError(t, err)
		assert.False(t, restored.Archived)
	})
}
