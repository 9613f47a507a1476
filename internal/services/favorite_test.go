package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	posts := newTestPostService(t, newFakeStore())
	favs := NewFavoriteService(posts.db)

	post, err := posts.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	first, existed, err := favs.Add(ctx, "u1", post.ID)
	require.NoError(t, err)
	assert.False(t, existed)
	assert.NotEmpty(t, first.ID)

	second, existed, err := favs.Add(ctx, "u1", post.ID)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, posts.db.Model(&models.Favorite{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteAddValidation(t *testing.T) {
	favs := NewFavoriteService(newTestDB(t, true))

	_, _, err := favs.Add(context.Background(), "", "p1")
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = favs.Add(context.Background(), "u1", " ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, favs.Remove(context.Background(), "u1", ""), ErrValidation)
}

func TestFavoriteRemove(t *testing.T) {
	ctx := context.Background()
	posts := newTestPostService(t, newFakeStore())
	favs := NewFavoriteService(posts.db)

	post, err := posts.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	assert.NoError(t, favs.Remove(ctx, "u1", post.ID), "removing an absent pair succeeds")

	_, _, err = favs.Add(ctx, "u1", post.ID)
	require.NoError(t, err)
	_, _, err = favs.Add(ctx, "u2", post.ID)
	require.NoError(t, err)

	require.NoError(t, favs.Remove(ctx, "u1", post.ID))

	list, err := favs.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = favs.ListForUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, list, 1, "other users' favorites are untouched")
}

func TestFavoriteListForUser(t *testing.T) {
	ctx := context.Background()
	posts := newTestPostService(t, newFakeStore())
	favs := NewFavoriteService(posts.db)

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		in := validInput()
		in.Title = title
		post, err := posts.Create(ctx, in, nil)
		require.NoError(t, err)
		ids = append(ids, post.ID)
	}
	// Added in a different order than the posts were created.
	for _, i := range []int{2, 0, 1} {
		_, _, err := favs.Add(ctx, "u1", ids[i])
		require.NoError(t, err)
	}

	list, err := favs.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	var titles []string
	for _, f := range list {
		require.NotNil(t, f.Post)
		assert.Equal(t, f.PostID, f.Post.ID)
		titles = append(titles, f.Post.Title)
	}
	assert.Equal(t, []string{"third", "first", "second"}, titles)
}

func TestFavoritesFollowDeletedPost(t *testing.T) {
	ctx := context.Background()
	posts := newTestPostService(t, newFakeStore())
	favs := NewFavoriteService(posts.db)

	post, err := posts.Create(ctx, validInput(), nil)
	require.NoError(t, err)
	_, _, err = favs.Add(ctx, "u1", post.ID)
	require.NoError(t, err)

	require.NoError(t, posts.Delete(ctx, post.ID))

	list, err := favs.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavoriteConcurrentAddsKeepOneRow(t *testing.T) {
	ctx := context.Background()
	posts := newTestPostService(t, newFakeStore())
	favs := NewFavoriteService(posts.db)

	post, err := posts.Create(ctx, validInput(), nil)
	require.NoError(t, err)

	const workers = 8
	var (
		wg      sync.WaitGroup
		created atomic.Int32
		ids     sync.Map
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fav, existed, err := favs.Add(ctx, "u1", post.ID)
			if !assert.NoError(t, err) {
				return
			}
			if !existed {
				created.Add(1)
			}
			ids.Store(fav.ID, true)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load(), "exactly one add inserts the row")

	distinct := 0
	ids.Range(func(_, _ any) bool {
		distinct++
		return true
	})
	assert.Equal(t, 1, distinct, "every add returns the same row")

	var count int64
	require.NoError(t, posts.db.Model(&models.Favorite{}).
		Where(map[string]interface{}{"userId": "u1", "postId": post.ID}).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
