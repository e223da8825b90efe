package database

import (
	"testing"

	"github.com/enat-care/enat/backend/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, displayName string) models.User {
	t.Helper()

	user := models.User{Email: email, DisplayName: displayName}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedBlog(t *testing.T, db *gorm.DB, userID uint64, title string) models.Blog {
	t.Helper()

	blog := models.Blog{
		UserID:          userID,
		BlogImg:         "https://cdn.enat.care/img/" + title + ".jpg",
		BlogTitle:       title,
		BlogDescription: "About " + title,
	}
	if err := db.Create(&blog).Error; err != nil {
		t.Fatalf("failed to seed blog: %v", err)
	}
	return blog
}

func seedTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()

	tag := models.Tag{Name: name}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}
	return tag
}

func countRows(t *testing.T, db *gorm.DB, table, where string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	query := db.Table(table)
	if where != "" {
		query = query.Where(where, args...)
	}
	if err := query.Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return count
}
