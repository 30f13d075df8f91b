package service_test

import (
	"context"
	"testing"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/service"
	"github.com/dom/hero-archive/internal/testutil"
	"github.com/dom/hero-archive/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_Create(t *testing.T) {
	f := newFixture(t, service.Options{})
	ctx := context.Background()
	author, cred := f.newUser(t)
	hero := testutil.NewHeroBuilder().Build(t, f.db.DB)

	tests := []struct {
		name    string
		input   service.CreateReviewInput
		wantErr error
	}{
		{name: "lowest rating", input: service.CreateReviewInput{HeroID: hero.ID, Rating: 1}},
		{name: "highest rating", input: service.CreateReviewInput{HeroID: hero.ID, Rating: 5, Comment: "great"}},
		{name: "zero rating", input: service.CreateReviewInput{HeroID: hero.ID, Rating: 0}, wantErr: domain.ErrRatingRange},
		{name: "rating too high", input: service.CreateReviewInput{HeroID: hero.ID, Rating: 6}, wantErr: domain.ErrRatingRange},
		{name: "unknown hero", input: service.CreateReviewInput{HeroID: hero.ID + 1000, Rating: 3}, wantErr: domain.ErrHeroMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			review, err := f.services.Review.Create(ctx, cred, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, author.ID, review.UserID)
		})
	}

	reviews, err := f.services.Review.ListByHero(ctx, hero.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2, "only valid reviews are stored")

	assert.Equal(t, []websocket.MessageType{
		websocket.MessageTypeReviewPosted,
		websocket.MessageTypeReviewPosted,
	}, f.events.Types())
}

func TestReviewService_PublicAndOwnReads(t *testing.T) {
	f := newFixture(t, service.Options{})
	ctx := context.Background()
	author, cred := f.newUser(t)
	hero := testutil.NewHeroBuilder().Build(t, f.db.DB)

	_, err := f.services.Review.Create(ctx, cred, service.CreateReviewInput{HeroID: hero.ID, Rating: 4})
	require.NoError(t, err)

	reviews, err := f.services.Review.ListByHero(ctx, hero.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, author.DisplayName, reviews[0].Username)

	_, err = f.services.Review.ListMine(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	mine, err := f.services.Review.ListMine(ctx, cred)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestReviewService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t, service.Options{})
	ctx := context.Background()
	_, ownerCred := f.newUser(t)
	_, strangerCred := f.newUser(t)
	hero := testutil.NewHeroBuilder().Build(t, f.db.DB)

	review, err := f.services.Review.Create(ctx, ownerCred, service.CreateReviewInput{HeroID: hero.ID, Rating: 4, Comment: "good"})
	require.NoError(t, err)

	t.Run("merged rating is validated", func(t *testing.T) {
		_, err := f.services.Review.Update(ctx, ownerCred, review.ID, domain.ReviewPatch{Rating: intPtr(7)})
		assert.ErrorIs(t, err, domain.ErrRatingRange)
	})

	t.Run("comment only", func(t *testing.T) {
		updated, err := f.services.Review.Update(ctx, ownerCred, review.ID, domain.ReviewPatch{Comment: strPtr("better")})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Rating)
		assert.Equal(t, "better", updated.Comment)
	})

	t.Run("stranger", func(t *testing.T) {
		_, err := f.services.Review.Update(ctx, strangerCred, review.ID, domain.ReviewPatch{Rating: intPtr(1)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, f.services.Review.Delete(ctx, strangerCred, review.ID), domain.ErrNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, f.services.Review.Delete(ctx, ownerCred, review.ID))
		_, err := f.services.Review.Update(ctx, ownerCred, review.ID, domain.ReviewPatch{Rating: intPtr(2)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
