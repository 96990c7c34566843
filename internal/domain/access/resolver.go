// Package access decides whether an actor may operate on a resource owned by
// another user. Ownership is either direct or derived from tenant membership:
// users declaring the same company CIF form one tenant and share full rights
// over each other's resources. Membership is always computed from the identity
// directory at decision time, never stored on the resource.
package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/worklog/backend/internal/domain/identity"
)

// Decision is the outcome of an ownership resolution
type Decision int

const (
	// DecisionDenied means the actor is neither the owner nor a tenant peer
	DecisionDenied Decision = iota
	// DecisionOwner means the actor owns the resource
	DecisionOwner
	// DecisionTenantPeer means the actor shares the owner's tenant
	DecisionTenantPeer
)

// Allowed reports whether the decision grants access
func (d Decision) Allowed() bool {
	return d == DecisionOwner || d == DecisionTenantPeer
}

// String returns a human-readable decision name
func (d Decision) String() string {
	switch d {
	case DecisionOwner:
		return "owner"
	case DecisionTenantPeer:
		return "tenant_peer"
	default:
		return "denied"
	}
}

// Resolver computes ownership decisions and tenant membership sets.
//
// Callers must check resource existence before resolving: not-found and
// forbidden are distinct outcomes and existence always wins.
type Resolver struct {
	users identity.UserRepository
}

// NewResolver creates a new ownership resolver
func NewResolver(users identity.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve decides whether actorID may access a resource owned by ownerID.
// A failed lookup of either party yields Denied rather than an error: an
// unknown or dangling owner must not leak as an internal failure.
func (r *Resolver) Resolve(ctx context.Context, actorID, ownerID uuid.UUID) (Decision, error) {
	if actorID == ownerID {
		return DecisionOwner, nil
	}

	actor, err := r.users.FindByID(ctx, actorID)
	if err != nil {
		return DecisionDenied, nil
	}
	actorCIF := actor.TenantCIF()
	if actorCIF == "" {
		return DecisionDenied, nil
	}

	owner, err := r.users.FindByID(ctx, ownerID)
	if err != nil {
		return DecisionDenied, nil
	}
	if owner.TenantCIF() == actorCIF {
		return DecisionTenantPeer, nil
	}
	return DecisionDenied, nil
}

// TenantMemberIDs returns the set of user IDs sharing the actor's tenant,
// always including the actor itself. An actor without a company affiliation
// is a tenant of one.
func (r *Resolver) TenantMemberIDs(ctx context.Context, actorID uuid.UUID) ([]uuid.UUID, error) {
	actor, err := r.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	cif := actor.TenantCIF()
	if cif == "" {
		return []uuid.UUID{actorID}, nil
	}

	members, err := r.users.FindByCompanyCIF(ctx, cif)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members)+1)
	seen := make(map[uuid.UUID]bool, len(members)+1)
	for _, m := range members {
		if !seen[m.ID] {
			ids = append(ids, m.ID)
			seen[m.ID] = true
		}
	}
	if !seen[actorID] {
		ids = append(ids, actorID)
	}
	return ids, nil
}
