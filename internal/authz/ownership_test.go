package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dom/hero-archive/internal/authz"
	"github.com/dom/hero-archive/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	owner := &authz.Identity{SubjectID: uuid.New(), Role: domain.UserRoleUser}
	other := &authz.Identity{SubjectID: uuid.New(), Role: domain.UserRoleUser}

	drafts := newMemoryOwners()
	drafts.owners[7] = owner.SubjectID

	resolver := authz.NewOwnershipResolver(map[authz.Resource]authz.OwnerLookup{
		authz.ResourceDraft: drafts,
	})

	tests := []struct {
		name     string
		id       uint
		identity *authz.Identity
		want     authz.Ownership
	}{
		{name: "owner", id: 7, identity: owner, want: authz.Owned},
		{name: "someone else", id: 7, identity: other, want: authz.NotOwned},
		{name: "missing id", id: 99, identity: owner, want: authz.Absent},
		{name: "no identity", id: 7, identity: nil, want: authz.NotOwned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(ctx, authz.ResourceDraft, tt.id, tt.identity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOwnershipResolver_StoreFailure(t *testing.T) {
	lookups := newMemoryOwners()
	lookups.err = errors.New("connection reset")
	resolver := authz.NewOwnershipResolver(map[authz.Resource]authz.OwnerLookup{
		authz.ResourceReview: lookups,
	})

	_, err := resolver.Resolve(context.Background(), authz.ResourceReview, 1, &authz.Identity{SubjectID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestOwnershipResolver_UnknownResource(t *testing.T) {
	resolver := authz.NewOwnershipResolver(nil)

	_, err := resolver.Resolve(context.Background(), authz.ResourceFavorite, 1, &authz.Identity{SubjectID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestOwnerLookupFunc(t *testing.T) {
	want := uuid.New()
	lookup := authz.OwnerLookupFunc(func(ctx context.Context, id uint) (uuid.UUID, error) {
		return want, nil
	})

	got, err := lookup.OwnerOf(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
