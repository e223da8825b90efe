package database

import (
	"fmt"
	"testing"

	"github.com/enat-care/enat/backend/errs"
	"github.com/enat-care/enat/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogRepo_AddAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlogRepo(db)

	user := seedUser(t, db, "editor@enat.care", "Enat Editorial")

	created, err := repo.Add(&models.Blog{
		UserID:          user.ID,
		BlogImg:         "https://cdn.enat.care/img/hero.jpg",
		BlogTitle:       "Heart Health",
		BlogDescription: "About heart health",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "Heart Health", created.BlogTitle)
	assert.Equal(t, user.ID, created.User.UserID)
	assert.Equal(t, "editor@enat.care", created.User.Email)

	found, err := repo.FindByID(created.BlogID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.BlogID, found.BlogID)
}

func TestBlogRepo_AddRejectsMissingUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlogRepo(db)

	_, err := repo.Add(&models.Blog{UserID: 999, BlogTitle: "Orphan"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestBlogRepo_FindByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlogRepo(db)

	found, err := repo.FindByID(42)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestBlogRepo_FindAllLimitsAndOrders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlogRepo(db)

	user := seedUser(t, db, "editor@enat.care", "Enat Editorial")
	for i := 1; i <= 12; i++ {
		seedBlog(t, db, user.ID, fmt.Sprintf("Post %02d", i))
	}

	blogs, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, blogs, homePageBlogLimit)
	assert.Equal(t, "Post 12", blogs[0].BlogTitle)
	assert.Equal(t, "Post 04", blogs[len(blogs)-1].BlogTitle)
}

func TestBlogRepo_UpdateScalars(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlogRepo(db)

	user := seedUser(t, db, "editor@enat.care", "Enat Editorial")
	blog := seedBlog(t, db, user.ID, "Heart Health")

	updated, err := repo.Update(blog.BlogID, map[string]interface{}{"blog_title": "Cardiac Care"})
	require.NoError(t, err)
	assert.Equal(t, "Cardiac Care", updated.BlogTitle)
	assert.Equal(t, blog.BlogDescription, updated.BlogDescription)
}

func TestBlogRepo_UpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlogRepo(db)

	_, err := repo.Update(42, map[string]interface{}{"blog_title": "Nope"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestBlogRepo_DeleteHidesFromReads(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBlogRepo(db)

	user := seedUser(t, db, "editor@enat.care", "Enat Editorial")
	blog := seedBlog(t, db, user.ID, "Heart Health")

	require.NoError(t, repo.Delete(blog.BlogID))

	found, err := repo.FindByID(blog.BlogID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// The row survives with deleted_at set.
	assert.Equal(t, int64(1), countRows(t, db, "blog", "blog_id = ? AND deleted_at IS NOT NULL", blog.BlogID))

	err = repo.Delete(blog.BlogID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestTagRepo_FindAllSortsByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepo(db)

	seedTag(t, db, "Wellness")
	seedTag(t, db, "Cardiology")
	seedTag(t, db, "Nutrition")

	tags, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "Cardiology", tags[0].Name)
	assert.Equal(t, "Nutrition", tags[1].Name)
	assert.Equal(t, "Wellness", tags[2].Name)
}
