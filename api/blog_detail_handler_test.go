package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/enat-care/enat/backend/database"
	"github.com/enat-care/enat/backend/models"
	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnvelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
	Error   string                     `json:"error"`
}

func setupTestServer(t *testing.T) (*chi.Mux, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.BlogDetail{},
		&models.Tag{},
		&models.BlogDetailTag{},
		&models.BlogDetailImage{},
		&models.RelatedBlogPost{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	router := chi.NewRouter()
	setupAPIRoutes(router, initializeHandlers(database.New(db), ""))
	return router, db
}

func seedBlogWithOwner(t *testing.T, db *gorm.DB, title string) models.Blog {
	t.Helper()

	user := models.User{Email: title + "@enat.care", DisplayName: "Author of " + title}
	require.NoError(t, db.Create(&user).Error)

	blog := models.Blog{
		UserID:          user.ID,
		BlogImg:         "https://cdn.enat.care/img/cover.jpg",
		BlogTitle:       title,
		BlogDescription: "About " + title,
	}
	require.NoError(t, db.Create(&blog).Error)
	return blog
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return recorder, env
}

func createDetailPayload(blogID uint64, tagIDs ...uint64) map[string]interface{} {
	tags := make([]map[string]interface{}, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, map[string]interface{}{"tag_id": id})
	}
	return map[string]interface{}{
		"blog_id":             blogID,
		"detail_description":  "full article body",
		"blog_main_highlight": "the highlight",
		"blog_post_wrap_up":   "the wrap up",
		"tags":                tags,
		"images": []map[string]interface{}{
			{"blog_img_url": "https://cdn.enat.care/img/hero.jpg"},
		},
	}
}

func TestCreateBlogDetailEndpoint(t *testing.T) {
	router, db := setupTestServer(t)

	blog := seedBlogWithOwner(t, db, "Heart Health")
	wellness := models.Tag{Name: "Wellness"}
	cardiology := models.Tag{Name: "Cardiology"}
	require.NoError(t, db.Create(&wellness).Error)
	require.NoError(t, db.Create(&cardiology).Error)

	recorder, env := doJSON(t, router, http.MethodPost, "/api/blog-details",
		createDetailPayload(blog.BlogID, wellness.ID, cardiology.ID))

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Blog detail created successfully.", env.Message)

	var detail models.BlogDetailAggregate
	require.NoError(t, json.Unmarshal(env.Data["blog_detail"], &detail))
	assert.Len(t, detail.Hash, 16)
	assert.Equal(t, blog.BlogID, detail.Blog.BlogID)

	require.Len(t, detail.Tags, 2)
	assert.Equal(t, "Cardiology", detail.Tags[0].Name)
	assert.Equal(t, "Wellness", detail.Tags[1].Name)
	require.Len(t, detail.Images, 1)
}

func TestCreateBlogDetailValidation(t *testing.T) {
	router, db := setupTestServer(t)
	blog := seedBlogWithOwner(t, db, "Heart Health")

	payload := createDetailPayload(blog.BlogID)
	delete(payload, "detail_description")
	payload["tags"] = []map[string]interface{}{{"tag_id": 1}}

	recorder, env := doJSON(t, router, http.MethodPost, "/api/blog-details", payload)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Bad Request", env.Error)
	assert.Contains(t, env.Message, "detail_description")
}

func TestCreateBlogDetailDanglingTag(t *testing.T) {
	router, db := setupTestServer(t)
	blog := seedBlogWithOwner(t, db, "Heart Health")

	recorder, env := doJSON(t, router, http.MethodPost, "/api/blog-details",
		createDetailPayload(blog.BlogID, 999))

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "tag_id")

	// Nothing from the failed transaction may remain.
	var count int64
	require.NoError(t, db.Table("blog_detail").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetBlogDetailNotFound(t *testing.T) {
	router, _ := setupTestServer(t)

	recorder, env := doJSON(t, router, http.MethodGet, "/api/blog-details/nosuchhash000000", nil)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "404 Not Found", env.Error)
}

func TestUpdateBlogDetailLegacyRelatedKey(t *testing.T) {
	router, db := setupTestServer(t)

	blog := seedBlogWithOwner(t, db, "Heart Health")
	related := seedBlogWithOwner(t, db, "Healthy Eating")
	tag := models.Tag{Name: "Cardiology"}
	require.NoError(t, db.Create(&tag).Error)

	_, env := doJSON(t, router, http.MethodPost, "/api/blog-details",
		createDetailPayload(blog.BlogID, tag.ID))
	var created models.BlogDetailAggregate
	require.NoError(t, json.Unmarshal(env.Data["blog_detail"], &created))

	// The pre-rename clients send `related_blog_post`; both keys must work.
	recorder, env := doJSON(t, router, http.MethodPatch, "/api/blog-details/"+created.Hash,
		map[string]interface{}{
			"related_blog_post": []map[string]interface{}{{"blog_id": related.BlogID}},
		})

	require.Equal(t, http.StatusOK, recorder.Code)
	var updated models.BlogDetailAggregate
	require.NoError(t, json.Unmarshal(env.Data["blog_detail"], &updated))
	require.Len(t, updated.RelatedBlogPosts, 1)
	assert.Equal(t, related.BlogID, updated.RelatedBlogPosts[0].BlogID)
	assert.Equal(t, "Healthy Eating", updated.RelatedBlogPosts[0].BlogTitle)

	// Tags were absent from the patch and stay untouched.
	require.Len(t, updated.Tags, 1)
}

func TestUpdateBlogDetailInvalidBlogID(t *testing.T) {
	router, db := setupTestServer(t)

	blog := seedBlogWithOwner(t, db, "Heart Health")
	tag := models.Tag{Name: "Cardiology"}
	require.NoError(t, db.Create(&tag).Error)

	_, env := doJSON(t, router, http.MethodPost, "/api/blog-details",
		createDetailPayload(blog.BlogID, tag.ID))
	var created models.BlogDetailAggregate
	require.NoError(t, json.Unmarshal(env.Data["blog_detail"], &created))

	recorder, env := doJSON(t, router, http.MethodPatch, "/api/blog-details/"+created.Hash,
		map[string]interface{}{"blog_id": 999})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "blog_id")
}

func TestDeleteBlogDetailEndpoint(t *testing.T) {
	router, db := setupTestServer(t)

	blog := seedBlogWithOwner(t, db, "Heart Health")
	tag := models.Tag{Name: "Wellness"}
	require.NoError(t, db.Create(&tag).Error)

	_, env := doJSON(t, router, http.MethodPost, "/api/blog-details",
		createDetailPayload(blog.BlogID, tag.ID))
	var created models.BlogDetailAggregate
	require.NoError(t, json.Unmarshal(env.Data["blog_detail"], &created))

	recorder, delEnv := doJSON(t, router, http.MethodDelete, "/api/blog-details/"+created.Hash, nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, delEnv.Success)

	var receipt models.DeleteReceipt
	body, err := json.Marshal(delEnv.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.True(t, receipt.Deleted)
	assert.Equal(t, created.ID, receipt.ID)

	// Fetching again now reports not found.
	notFound, _ := doJSON(t, router, http.MethodGet, "/api/blog-details/"+created.Hash, nil)
	assert.Equal(t, http.StatusNotFound, notFound.Code)
}

func TestListBlogDetailsEndpoint(t *testing.T) {
	router, db := setupTestServer(t)

	blog := seedBlogWithOwner(t, db, "Heart Health")
	tag := models.Tag{Name: "Wellness"}
	require.NoError(t, db.Create(&tag).Error)

	for i := 0; i < 2; i++ {
		recorder, _ := doJSON(t, router, http.MethodPost, "/api/blog-details",
			createDetailPayload(blog.BlogID, tag.ID))
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder, env := doJSON(t, router, http.MethodGet, "/api/blog-details", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var details []models.BlogDetailAggregate
	require.NoError(t, json.Unmarshal(env.Data["blog_details"], &details))
	assert.Len(t, details, 2)
}

func TestNewUniqueHash(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		hash := newUniqueHash()
		require.Len(t, hash, 16)
		assert.False(t, seen[hash], "hash %q repeated", hash)
		seen[hash] = true
		for _, r := range hash {
			assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'), "unexpected rune %q", r)
		}
	}
}

func TestMalformedJSONBody(t *testing.T) {
	router, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/blog-details", bytes.NewBufferString("{not json"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestBlogEndpoints(t *testing.T) {
	router, db := setupTestServer(t)

	user := models.User{Email: "editor@enat.care", DisplayName: "Enat Editorial"}
	require.NoError(t, db.Create(&user).Error)

	recorder, env := doJSON(t, router, http.MethodPost, "/api/blogs", map[string]interface{}{
		"user_id":          user.ID,
		"blog_img":         "https://cdn.enat.care/img/cover.jpg",
		"blog_title":       "Heart Health",
		"blog_description": "About heart health",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created models.BlogWithAuthor
	require.NoError(t, json.Unmarshal(env.Data["blog"], &created))
	assert.Equal(t, "Heart Health", created.BlogTitle)
	assert.Equal(t, "Enat Editorial", created.User.DisplayName)

	path := fmt.Sprintf("/api/blogs/%d", created.BlogID)

	recorder, env = doJSON(t, router, http.MethodPatch, path,
		map[string]interface{}{"blog_title": "Cardiac Care"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var updated models.BlogWithAuthor
	require.NoError(t, json.Unmarshal(env.Data["blog"], &updated))
	assert.Equal(t, "Cardiac Care", updated.BlogTitle)

	recorder, _ = doJSON(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}
