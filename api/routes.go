package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes mounts every endpoint under /api.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Blog detail endpoints
		r.Get("/blog-details", handlers.blogDetailHandler.getAllBlogDetails())
		r.Post("/blog-details", handlers.blogDetailHandler.createBlogDetail())
		r.Get("/blog-details/{blogDetailHash}", handlers.blogDetailHandler.getBlogDetail())
		r.Patch("/blog-details/{blogDetailHash}", handlers.blogDetailHandler.updateBlogDetail())
		r.Delete("/blog-details/{blogDetailHash}", handlers.blogDetailHandler.deleteBlogDetail())

		// Blog endpoints
		r.Get("/blogs", handlers.blogHandler.getAllBlogs())
		r.Post("/blogs", handlers.blogHandler.createBlog())
		r.Get("/blogs/{blogID}", handlers.blogHandler.getBlog())
		r.Patch("/blogs/{blogID}", handlers.blogHandler.updateBlog())
		r.Delete("/blogs/{blogID}", handlers.blogHandler.deleteBlog())

		// Tag endpoints
		r.Get("/tags", handlers.tagHandler.getAllTags())

		// Schema installer
		r.Get("/install", handlers.installHandler.install())
	})
}
