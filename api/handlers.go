package api

import (
	"github.com/enat-care/enat/backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, dsn string) *routeHandlers {
	return &routeHandlers{
		blogHandler:       newBlogHandler(database.BlogRepo()),
		blogDetailHandler: newBlogDetailHandler(database.BlogDetailRepo()),
		tagHandler:        newTagHandler(database.TagRepo()),
		installHandler:    newInstallHandler(dsn),
	}
}
