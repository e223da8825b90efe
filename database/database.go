package database

import (
	"gorm.io/gorm"
)

type Database struct {
	blogRepo       *BlogRepo
	blogDetailRepo *BlogDetailRepo
	tagRepo        *TagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		blogRepo:       NewBlogRepo(db),
		blogDetailRepo: NewBlogDetailRepo(db),
		tagRepo:        NewTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) BlogDetailRepo() *BlogDetailRepo {
	return d.blogDetailRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}
