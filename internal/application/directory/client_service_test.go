package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/worklog/backend/internal/domain/access"
	"github.com/worklog/backend/internal/domain/directory"
	"github.com/worklog/backend/internal/domain/identity"
	"github.com/worklog/backend/internal/domain/shared"
)

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

// soloUser returns a user without company affiliation, forming a tenant of one
func soloUser(t *testing.T, id uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser("user-"+id.String()[:8]+"@example.com", "secret-password", "Test", "User")
	require.NoError(t, err)
	user.ID = id
	return user
}

func tenantUser(t *testing.T, id uuid.UUID, cif string) *identity.User {
	t.Helper()
	user := soloUser(t, id)
	require.NoError(t, user.SetCompany(identity.Company{Name: "Acme SL", CIF: cif}))
	return user
}

func newClientAggregate(t *testing.T, ownerID uuid.UUID, name string) *directory.Client {
	t.Helper()
	client, err := directory.NewClient(ownerID, name, "B12345678", directory.Address{City: "Madrid"})
	require.NoError(t, err)
	return client
}

func TestClientServiceCreate(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("creates client for a tenant of one", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByID", ctx, actorID).Return(soloUser(t, actorID), nil)

		clients := new(mockClientRepository)
		clients.On("ExistsActiveByNameForOwners", ctx, "Acme SL", []uuid.UUID{actorID}, uuid.Nil).Return(false, nil)
		clients.On("Save", ctx, mock.AnythingOfType("*directory.Client")).Return(nil)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		resp, err := svc.Create(ctx, actorID, CreateClientRequest{Name: " Acme SL ", TaxID: "B12345678"})
		require.NoError(t, err)
		assert.Equal(t, "Acme SL", resp.Name)
		assert.Equal(t, actorID.String(), resp.OwnerUserID)
		assert.False(t, resp.Archived)
		clients.AssertExpectations(t)
	})

	t.Run("rejects duplicate name within the tenant", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByID", ctx, actorID).Return(soloUser(t, actorID), nil)

		clients := new(mockClientRepository)
		clients.On("ExistsActiveByNameForOwners", ctx, "Acme SL", []uuid.UUID{actorID}, uuid.Nil).Return(true, nil)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		_, err := svc.Create(ctx, actorID, CreateClientRequest{Name: "Acme SL"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		clients.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("checks uniqueness across all tenant members", func(t *testing.T) {
		peerID := uuid.New()
		users := new(mockUserRepository)
		users.On("FindByID", ctx, actorID).Return(tenantUser(t, actorID, "B12345678"), nil)
		users.On("FindByCompanyCIF", ctx, "B12345678").Return([]*identity.User{
			tenantUser(t, actorID, "B12345678"),
			tenantUser(t, peerID, "B12345678"),
		}, nil)

		clients := new(mockClientRepository)
		clients.On("ExistsActiveByNameForOwners", ctx, "Acme SL",
			mock.MatchedBy(func(ids []uuid.UUID) bool { return len(ids) == 2 }), uuid.Nil).Return(true, nil)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		_, err := svc.Create(ctx, actorID, CreateClientRequest{Name: "Acme SL"})
		require.Error(t, err)
	})
}

func TestClientServiceGetByID(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	clientID := uuid.New()

	t.Run("unknown ID is not found before any ownership check", func(t *testing.T) {
		users := new(mockUserRepository)
		clients := new(mockClientRepository)
		clients.On("FindActiveByID", ctx, clientID).Return(nil, shared.ErrNotFound)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		_, err := svc.GetByID(ctx, actorID, clientID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("archived client is not found in the active set", func(t *testing.T) {
		users := new(mockUserRepository)
		clients := new(mockClientRepository)
		clients.On("FindActiveByID", ctx, clientID).Return(nil, shared.ErrNotFound)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		_, err := svc.GetByID(ctx, actorID, clientID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("resource outside the tenant is forbidden", func(t *testing.T) {
		strangerID := uuid.New()
		users := new(mockUserRepository)
		users.On("FindByID", ctx, actorID).Return(tenantUser(t, actorID, "B12345678"), nil)
		users.On("FindByID", ctx, strangerID).Return(tenantUser(t, strangerID, "A87654321"), nil)

		clients := new(mockClientRepository)
		clients.On("FindActiveByID", ctx, clientID).Return(newClientAggregate(t, strangerID, "Acme SL"), nil)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		_, err := svc.GetByID(ctx, actorID, clientID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("tenant peer can read the client", func(t *testing.T) {
		peerID := uuid.New()
		users := new(mockUserRepository)
		users.On("FindByID", ctx, actorID).Return(tenantUser(t, actorID, "B12345678"), nil)
		users.On("FindByID", ctx, peerID).Return(tenantUser(t, peerID, "B12345678"), nil)

		clients := new(mockClientRepository)
		clients.On("FindActiveByID", ctx, clientID).Return(newClientAggregate(t, peerID, "Acme SL"), nil)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		resp, err := svc.GetByID(ctx, actorID, clientID)
		require.NoError(t, err)
		assert.Equal(t, "Acme SL", resp.Name)
	})
}

func TestClientServiceUpdate(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("rename to a conflicting name fails", func(t *testing.T) {
		existing := newClientAggregate(t, actorID, "Acme SL")
		users := new(mockUserRepository)
		users.On("FindByID", ctx, actorID).Return(soloUser(t, actorID), nil)

		clients := new(mockClientRepository)
		clients.On("FindActiveByID", ctx, existing.ID).Return(existing, nil)
		clients.On("ExistsActiveByNameForOwners", ctx, "Taken Name", []uuid.UUID{actorID}, existing.ID).Return(true, nil)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		newName := "Taken Name"
		_, err := svc.Update(ctx, actorID, existing.ID, UpdateClientRequest{Name: &newName})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("keeping the same name skips the uniqueness check", func(t *testing.T) {
		existing := newClientAggregate(t, actorID, "Acme SL")
		users := new(mockUserRepository)

		clients := new(mockClientRepository)
		clients.On("FindActiveByID", ctx, existing.ID).Return(existing, nil)
		clients.On("Save", ctx, existing).Return(nil)

		svc := NewClientService(clients, access.NewResolver(users), nil)
		sameName := "Acme SL"
		taxID := "B99999999"
		resp, err := svc.Update(ctx, actorID, existing.ID, UpdateClientRequest{Name: &sameName, TaxID: &taxID})
		require.NoError(t, err)
		assert.Equal(t, "B99999999", resp.TaxID)
		clients.AssertNotCalled(t, "ExistsActiveByNameForOwners", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestClientServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("archive saves the archived state", func(t *testing.T) {
		existing := newClientAggregate(t, actorID, "Acme SL")
		clients := new(mockClientRepository)
		clients.On("FindActiveByID", ctx, existing.ID).Return(existing, nil)
		clients.On("Save", ctx, existing).Return(nil)

		svc := NewClientService(clients, access.NewResolver(new(mockUserRepository)), nil)
		resp, err := svc.Archive(ctx, actorID, existing.ID)
		require.NoError(t, err)
		assert.True(t, resp.Archived)
		require.NotNil(t, resp.ArchivedAt)
	})

	t.Run("restore only looks in the archived set", func(t *testing.T) {
		existing := newClientAggregate(t, actorID, "Acme SL")
		require.NoError(t, existing.Archive())

		clients := new(mockClientRepository)
		clients.On("FindArchivedByID", ctx, existing.ID).Return(existing, nil)
		clients.On("Save", ctx, existing).Return(nil)

		svc := NewClientService(clients, access.NewResolver(new(mockUserRepository)), nil)
		resp, err := svc.Restore(ctx, actorID, existing.ID)
		require.NoError(t, err)
		assert.False(t, resp.Archived)
		clients.AssertNotCalled(t, "FindActiveByID", mock.Anything, mock.Anything)
	})

	t.Run("purge deletes from any state", func(t *testing.T) {
		existing := newClientAggregate(t, actorID, "Acme SL")
		require.NoError(t, existing.Archive())

		clients := new(mockClientRepository)
		clients.On("FindByID", ctx, existing.ID).Return(existing, nil)
		clients.On("Delete", ctx, existing.ID).Return(nil)

		svc := NewClientService(clients, access.NewResolver(new(mockUserRepository)), nil)
		require.NoError(t, svc.Purge(ctx, actorID, existing.ID))
		clients.AssertExpectations(t)
	})
}
