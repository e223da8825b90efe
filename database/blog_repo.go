package database

import (
	"time"

	"github.com/enat-care/enat/backend/errs"
	"github.com/enat-care/enat/backend/models"
	"gorm.io/gorm"
)

// homePageBlogLimit caps the list endpoint; the marketing site's home page
// shows at most nine cards.
const homePageBlogLimit = 9

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogRepo) GetDB() *gorm.DB {
	return r.db
}

type blogAuthorRow struct {
	BlogID          uint64
	UserID          uint64
	Email           string
	DisplayName     string
	BlogImg         string
	BlogTitle       string
	BlogDescription string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (row blogAuthorRow) toView() models.BlogWithAuthor {
	return models.BlogWithAuthor{
		BlogID: row.BlogID,
		UserID: row.UserID,
		User: models.UserSnapshot{
			UserID:      row.UserID,
			Email:       row.Email,
			DisplayName: row.DisplayName,
		},
		BlogImg:         row.BlogImg,
		BlogTitle:       row.BlogTitle,
		BlogDescription: row.BlogDescription,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func blogBaseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("blog b").
		Select("b.blog_id, b.user_id, u.email, u.display_name, b.blog_img, b.blog_title, b.blog_description, b.created_at, b.updated_at").
		Joins("JOIN `user` u ON u.id = b.user_id").
		Where("b.deleted_at IS NULL")
}

// FindAll returns the newest active blogs with their owner snapshots.
func (r *BlogRepo) FindAll() ([]models.BlogWithAuthor, error) {
	var rows []blogAuthorRow
	err := blogBaseQuery(r.db).
		Order("b.created_at DESC, b.blog_id DESC").
		Limit(homePageBlogLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	blogs := make([]models.BlogWithAuthor, 0, len(rows))
	for _, row := range rows {
		blogs = append(blogs, row.toView())
	}
	return blogs, nil
}

// FindByID returns one active blog with its owner, or nil when absent.
func (r *BlogRepo) FindByID(id uint64) (*models.BlogWithAuthor, error) {
	var row blogAuthorRow
	result := blogBaseQuery(r.db).Where("b.blog_id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	view := row.toView()
	return &view, nil
}

// Add inserts a new blog after verifying the owning user exists, and returns
// the created blog with its owner snapshot.
func (r *BlogRepo) Add(blog *models.Blog) (*models.BlogWithAuthor, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("id = ?", blog.UserID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.NewNotFound("user for the provided user_id")
	}

	if err := r.db.Create(blog).Error; err != nil {
		return nil, err
	}
	return r.FindByID(blog.BlogID)
}

// Update applies the scalar fields to an existing blog and returns the
// refreshed row, or ErrNotFound when no active blog carries the id.
func (r *BlogRepo) Update(id uint64, updates map[string]interface{}) (*models.BlogWithAuthor, error) {
	result := r.db.Model(&models.Blog{}).Where("blog_id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("blog")
	}
	return r.FindByID(id)
}

// Delete soft-deletes a blog by id; ErrNotFound when no active row matched.
func (r *BlogRepo) Delete(id uint64) error {
	result := r.db.Where("blog_id = ?", id).Delete(&models.Blog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("blog")
	}
	return nil
}
