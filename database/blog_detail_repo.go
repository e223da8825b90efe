package database

import (
	"time"

	"github.com/enat-care/enat/backend/errs"
	"github.com/enat-care/enat/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlogDetailRepo is the writer and reader for blog-detail aggregates. Every
// write runs inside one transaction: either the whole aggregate mutation
// lands, or none of it does.
type BlogDetailRepo struct {
	db *gorm.DB
}

func NewBlogDetailRepo(db *gorm.DB) *BlogDetailRepo {
	return &BlogDetailRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogDetailRepo) GetDB() *gorm.DB {
	return r.db
}

// blogDetailRow is the flat scan target for the base query joining the
// detail with its parent blog and the blog's owner.
type blogDetailRow struct {
	ID                uint64
	BlogID            uint64
	Hash              string
	DetailDescription string
	BlogMainHighlight string
	BlogPostWrapUp    string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	BlogImg           string
	BlogTitle         string
	BlogDescription   string
	UserID            uint64
	Email             string
	DisplayName       string
}

const blogDetailBaseSelect = "bd.id, bd.blog_id, bd.hash, " +
	"bd.detail_description, bd.blog_main_highlight, bd.blog_post_wrap_up, " +
	"bd.created_at, bd.updated_at, " +
	"b.blog_img, b.blog_title, b.blog_description, b.user_id, " +
	"u.email, u.display_name"

func blogDetailBaseQuery(db *gorm.DB) *gorm.DB {
	return db.Table("blog_detail bd").
		Select(blogDetailBaseSelect).
		Joins("JOIN blog b ON b.blog_id = bd.blog_id").
		Joins("JOIN `user` u ON u.id = b.user_id").
		Where("bd.deleted_at IS NULL")
}

// FindAll returns every active blog detail as a composed aggregate, newest
// first. Associations are loaded in bulk (one query per association type)
// and grouped in memory, not per row.
func (r *BlogDetailRepo) FindAll() ([]models.BlogDetailAggregate, error) {
	var rows []blogDetailRow
	err := blogDetailBaseQuery(r.db).Order("bd.created_at DESC, bd.id DESC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]models.BlogDetailAggregate, 0, len(rows))
	if len(rows) == 0 {
		return aggregates, nil
	}

	ids := make([]uint64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	tagsByID, err := loadTagItems(r.db, ids)
	if err != nil {
		return nil, err
	}
	imagesByID, err := loadImageItems(r.db, ids)
	if err != nil {
		return nil, err
	}
	relatedByID, err := loadRelatedItems(r.db, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		aggregates = append(aggregates, composeAggregate(row, tagsByID[row.ID], imagesByID[row.ID], relatedByID[row.ID]))
	}
	return aggregates, nil
}

// FindByHash returns the aggregate for one active detail, or nil when no
// active row carries the hash.
func (r *BlogDetailRepo) FindByHash(hash string) (*models.BlogDetailAggregate, error) {
	var row blogDetailRow
	result := blogDetailBaseQuery(r.db).Where("bd.hash = ?", hash).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return assembleAggregate(r.db, row)
}

// Create inserts the detail row and its associations in one transaction and
// returns the aggregate read back inside that same transaction.
//
// Failure kinds: ErrAlreadyExists when an active row already carries the
// hash, ErrNotFound when the parent blog is missing, ErrInvalidReference
// when a tag or related blog id dangles, ErrStorageAnomaly when the root
// insert affects no rows. Any of them rolls the whole transaction back.
func (r *BlogDetailRepo) Create(input models.BlogDetailInput) (*models.BlogDetailAggregate, error) {
	var aggregate *models.BlogDetailAggregate

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Defensive pre-check; the unique index on hash is the authoritative guard.
		var duplicates int64
		if err := tx.Model(&models.BlogDetail{}).Where("hash = ?", input.Hash).Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return errs.NewAlreadyExists("a blog detail with these details")
		}

		exists, err := blogExists(tx, input.BlogID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewNotFound("blog for the provided blog_id")
		}

		detail := models.BlogDetail{
			BlogID:            uint64(input.BlogID),
			Hash:              input.Hash,
			DetailDescription: input.DetailDescription,
			BlogMainHighlight: input.BlogMainHighlight,
			BlogPostWrapUp:    input.BlogPostWrapUp,
		}
		result := tx.Create(&detail)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return errs.NewStorageAnomaly("blog_detail insert affected no rows")
		}

		for _, ref := range input.Tags {
			if ref.TagID <= 0 {
				continue
			}
			exists, err := tagExists(tx, ref.TagID)
			if err != nil {
				return err
			}
			if !exists {
				return errs.NewInvalidReference("one or more tag_id values do not exist")
			}
			association := models.BlogDetailTag{BlogDetailID: detail.ID, TagID: uint64(ref.TagID)}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&association).Error; err != nil {
				return err
			}
		}

		for _, ref := range input.Images {
			if ref.BlogImgURL == "" {
				continue
			}
			image := models.BlogDetailImage{BlogDetailID: detail.ID, BlogImgURL: ref.BlogImgURL}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&image).Error; err != nil {
				return err
			}
		}

		for _, ref := range input.RelatedBlogPosts {
			if ref.BlogID <= 0 {
				continue
			}
			exists, err := blogExists(tx, ref.BlogID)
			if err != nil {
				return err
			}
			if !exists {
				return errs.NewInvalidReference("one or more related blog_id values do not exist")
			}
			related := models.RelatedBlogPost{BlogDetailID: detail.ID, BlogID: uint64(ref.BlogID)}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&related).Error; err != nil {
				return err
			}
		}

		loaded, err := loadAggregateByID(tx, detail.ID)
		if err != nil {
			return err
		}
		aggregate = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return aggregate, nil
}

// UpdateByHash applies a sparse patch to the detail located by hash. Scalar
// fields update only when present; each present association array replaces
// the current set wholesale, an empty array clearing it. The whole patch is
// all-or-nothing.
func (r *BlogDetailRepo) UpdateByHash(hash string, patch models.BlogDetailPatch) (*models.BlogDetailAggregate, error) {
	var aggregate *models.BlogDetailAggregate

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var detail models.BlogDetail
		result := tx.Where("hash = ?", hash).Limit(1).Find(&detail)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("blog detail")
		}

		updates := map[string]interface{}{}
		if patch.DetailDescription != nil {
			updates["detail_description"] = *patch.DetailDescription
		}
		if patch.BlogMainHighlight != nil {
			updates["blog_main_highlight"] = *patch.BlogMainHighlight
		}
		if patch.BlogPostWrapUp != nil {
			updates["blog_post_wrap_up"] = *patch.BlogPostWrapUp
		}
		if patch.BlogID != nil && uint64(*patch.BlogID) != detail.BlogID {
			if *patch.BlogID <= 0 {
				return errs.NewInvalidParameter("blog_id must be a positive integer")
			}
			exists, err := blogExists(tx, *patch.BlogID)
			if err != nil {
				return err
			}
			if !exists {
				return errs.NewInvalidParameter("provided blog_id does not exist")
			}
			updates["blog_id"] = uint64(*patch.BlogID)
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.BlogDetail{}).Where("id = ?", detail.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Tags != nil {
			if err := replaceTags(tx, detail.ID, *patch.Tags); err != nil {
				return err
			}
		}
		if patch.Images != nil {
			if err := replaceImages(tx, detail.ID, *patch.Images); err != nil {
				return err
			}
		}
		if patch.RelatedBlogPosts != nil {
			if err := replaceRelatedPosts(tx, detail.ID, *patch.RelatedBlogPosts); err != nil {
				return err
			}
		}

		loaded, err := loadAggregateByID(tx, detail.ID)
		if err != nil {
			return err
		}
		aggregate = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return aggregate, nil
}

// DeleteByHash soft-deletes the detail and all of its child rows. Children
// go first so no active child ever references a deleted parent.
func (r *BlogDetailRepo) DeleteByHash(hash string) (*models.DeleteReceipt, error) {
	var receipt *models.DeleteReceipt

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var detail models.BlogDetail
		result := tx.Where("hash = ?", hash).Limit(1).Find(&detail)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("blog detail")
		}

		if err := tx.Where("blog_detail_id = ?", detail.ID).Delete(&models.BlogDetailTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_detail_id = ?", detail.ID).Delete(&models.BlogDetailImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_detail_id = ?", detail.ID).Delete(&models.RelatedBlogPost{}).Error; err != nil {
			return err
		}

		parent := tx.Where("id = ?", detail.ID).Delete(&models.BlogDetail{})
		if parent.Error != nil {
			return parent.Error
		}
		if parent.RowsAffected == 0 {
			return errs.NewStorageAnomaly("blog_detail delete affected no rows")
		}

		var deleted models.BlogDetail
		if err := tx.Unscoped().Where("id = ?", detail.ID).First(&deleted).Error; err != nil {
			return err
		}
		receipt = &models.DeleteReceipt{Deleted: true, ID: deleted.ID, DeletedAt: deleted.DeletedAt.Time}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// replaceTags validates the incoming set, then swaps it in for the current
// one. Replacement removes the old rows outright; only the cascading delete
// of a whole detail soft-deletes association rows.
func replaceTags(tx *gorm.DB, detailID uint64, refs []models.TagRef) error {
	if len(refs) > 0 {
		ids := make([]uint64, 0, len(refs))
		for _, ref := range refs {
			if ref.TagID <= 0 {
				return errs.NewInvalidParameter("each tag_id must be a positive integer")
			}
			ids = append(ids, uint64(ref.TagID))
		}
		var found int64
		if err := tx.Model(&models.Tag{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(ids)) {
			return errs.NewInvalidParameter("one or more tag_id values do not exist")
		}
	}

	if err := tx.Unscoped().Where("blog_detail_id = ?", detailID).Delete(&models.BlogDetailTag{}).Error; err != nil {
		return err
	}
	for _, ref := range refs {
		association := models.BlogDetailTag{BlogDetailID: detailID, TagID: uint64(ref.TagID)}
		if err := tx.Create(&association).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceImages(tx *gorm.DB, detailID uint64, refs []models.ImageRef) error {
	if err := tx.Unscoped().Where("blog_detail_id = ?", detailID).Delete(&models.BlogDetailImage{}).Error; err != nil {
		return err
	}
	for _, ref := range refs {
		if ref.BlogImgURL == "" {
			continue
		}
		image := models.BlogDetailImage{BlogDetailID: detailID, BlogImgURL: ref.BlogImgURL}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceRelatedPosts(tx *gorm.DB, detailID uint64, refs []models.RelatedBlogRef) error {
	if len(refs) > 0 {
		ids := make([]uint64, 0, len(refs))
		for _, ref := range refs {
			if ref.BlogID <= 0 {
				return errs.NewInvalidParameter("each related blog_id must be a positive integer")
			}
			ids = append(ids, uint64(ref.BlogID))
		}
		var found int64
		if err := tx.Model(&models.Blog{}).Where("blog_id IN ?", ids).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(ids)) {
			return errs.NewInvalidParameter("one or more related blog_id values do not exist")
		}
	}

	if err := tx.Unscoped().Where("blog_detail_id = ?", detailID).Delete(&models.RelatedBlogPost{}).Error; err != nil {
		return err
	}
	for _, ref := range refs {
		related := models.RelatedBlogPost{BlogDetailID: detailID, BlogID: uint64(ref.BlogID)}
		if err := tx.Create(&related).Error; err != nil {
			return err
		}
	}
	return nil
}

func tagExists(tx *gorm.DB, id int64) (bool, error) {
	var count int64
	err := tx.Model(&models.Tag{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func blogExists(tx *gorm.DB, id int64) (bool, error) {
	var count int64
	err := tx.Model(&models.Blog{}).Where("blog_id = ?", id).Count(&count).Error
	return count > 0, err
}

func loadAggregateByID(db *gorm.DB, id uint64) (*models.BlogDetailAggregate, error) {
	var row blogDetailRow
	result := blogDetailBaseQuery(db).Where("bd.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewStorageAnomaly("blog_detail vanished during transaction")
	}
	return assembleAggregate(db, row)
}

func assembleAggregate(db *gorm.DB, row blogDetailRow) (*models.BlogDetailAggregate, error) {
	ids := []uint64{row.ID}

	tagsByID, err := loadTagItems(db, ids)
	if err != nil {
		return nil, err
	}
	imagesByID, err := loadImageItems(db, ids)
	if err != nil {
		return nil, err
	}
	relatedByID, err := loadRelatedItems(db, ids)
	if err != nil {
		return nil, err
	}

	aggregate := composeAggregate(row, tagsByID[row.ID], imagesByID[row.ID], relatedByID[row.ID])
	return &aggregate, nil
}

func composeAggregate(row blogDetailRow, tags []models.TagItem, images []models.ImageItem, related []models.RelatedPostItem) models.BlogDetailAggregate {
	if tags == nil {
		tags = []models.TagItem{}
	}
	if images == nil {
		images = []models.ImageItem{}
	}
	if related == nil {
		related = []models.RelatedPostItem{}
	}
	return models.BlogDetailAggregate{
		ID: row.ID,
		Blog: models.BlogSnapshot{
			BlogID:          row.BlogID,
			BlogImg:         row.BlogImg,
			BlogTitle:       row.BlogTitle,
			BlogDescription: row.BlogDescription,
		},
		Hash:              row.Hash,
		DetailDescription: row.DetailDescription,
		BlogMainHighlight: row.BlogMainHighlight,
		BlogPostWrapUp:    row.BlogPostWrapUp,
		User: models.UserSnapshot{
			UserID:      row.UserID,
			Email:       row.Email,
			DisplayName: row.DisplayName,
		},
		Tags:             tags,
		Images:           images,
		RelatedBlogPosts: related,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func loadTagItems(db *gorm.DB, detailIDs []uint64) (map[uint64][]models.TagItem, error) {
	var rows []struct {
		BlogDetailID uint64
		TagID        uint64
		Name         string
	}
	err := db.Table("blog_detail_tag bdt").
		Select("bdt.blog_detail_id, t.id AS tag_id, t.name").
		Joins("JOIN tag t ON t.id = bdt.tag_id").
		Where("bdt.blog_detail_id IN ?", detailIDs).
		Where("bdt.deleted_at IS NULL").
		Where("t.deleted_at IS NULL").
		Order("t.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[uint64][]models.TagItem)
	for _, row := range rows {
		grouped[row.BlogDetailID] = append(grouped[row.BlogDetailID], models.TagItem{TagID: row.TagID, Name: row.Name})
	}
	return grouped, nil
}

func loadImageItems(db *gorm.DB, detailIDs []uint64) (map[uint64][]models.ImageItem, error) {
	var rows []struct {
		BlogDetailID uint64
		BlogImgURL   string
	}
	err := db.Table("blog_detail_img").
		Select("blog_detail_id, blog_img_url").
		Where("blog_detail_id IN ?", detailIDs).
		Where("deleted_at IS NULL").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[uint64][]models.ImageItem)
	for _, row := range rows {
		grouped[row.BlogDetailID] = append(grouped[row.BlogDetailID], models.ImageItem{BlogImgURL: row.BlogImgURL})
	}
	return grouped, nil
}

func loadRelatedItems(db *gorm.DB, detailIDs []uint64) (map[uint64][]models.RelatedPostItem, error) {
	var rows []struct {
		BlogDetailID uint64
		BlogID       uint64
		BlogTitle    string
	}
	err := db.Table("related_blog_post rbp").
		Select("rbp.blog_detail_id, rbp.blog_id, b.blog_title").
		Joins("JOIN blog b ON b.blog_id = rbp.blog_id").
		Where("rbp.blog_detail_id IN ?", detailIDs).
		Where("rbp.deleted_at IS NULL").
		Order("rbp.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[uint64][]models.RelatedPostItem)
	for _, row := range rows {
		grouped[row.BlogDetailID] = append(grouped[row.BlogDetailID], models.RelatedPostItem{BlogID: row.BlogID, BlogTitle: row.BlogTitle})
	}
	return grouped, nil
}
