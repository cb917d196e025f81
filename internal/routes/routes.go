package routes

import (
	"review-backend/internal/handlers"
	"review-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Deps carries the wired handlers plus the authentication middleware that
// resolves bearer tokens for every API route.
type Deps struct {
	Authenticate fiber.Handler
	Auth         *handlers.AuthHandler
	Categories   *handlers.CategoryHandler
	Genres       *handlers.GenreHandler
	Titles       *handlers.TitleHandler
	Reviews      *handlers.ReviewHandler
	Comments     *handlers.CommentHandler
	Users        *handlers.UserHandler
	Upload       *handlers.UploadHandler
}

func Setup(app *fiber.App, d Deps) {
	api := app.Group("/api")
	v1 := api.Group("/v1", d.Authenticate)

	auth := v1.Group("/auth")
	{
		auth.Post("/signup", d.Auth.Signup)
		auth.Post("/token", d.Auth.Token)
	}

	// Classification entities: reads for everyone, writes for admins.
	categories := v1.Group("/categories", middleware.AdminOrReadOnly())
	{
		categories.Get("/", d.Categories.List)
		categories.Post("/", d.Categories.Create)
		categories.Delete("/:slug", d.Categories.Delete)
	}

	genres := v1.Group("/genres", middleware.AdminOrReadOnly())
	{
		genres.Get("/", d.Genres.List)
		genres.Post("/", d.Genres.Create)
		genres.Delete("/:slug", d.Genres.Delete)
	}

	// Title routes get per-route guards: the nested review/comment paths
	// share the /titles prefix but follow their own permission rules.
	titles := v1.Group("/titles")
	{
		titles.Get("/", d.Titles.List)
		titles.Post("/", middleware.AdminOrReadOnly(), d.Titles.Create)
		titles.Get("/:id", d.Titles.Get)
		titles.Patch("/:id", middleware.AdminOrReadOnly(), d.Titles.Update)
		titles.Delete("/:id", middleware.AdminOrReadOnly(), d.Titles.Delete)
	}

	reviews := v1.Group("/titles/:titleID/reviews")
	{
		reviews.Get("/", d.Reviews.List)
		reviews.Post("/", middleware.RequireAuthenticated(), d.Reviews.Create)
		reviews.Get("/:id", d.Reviews.Get)
		reviews.Patch("/:id", middleware.RequireAuthenticated(), d.Reviews.Update)
		reviews.Delete("/:id", middleware.RequireAuthenticated(), d.Reviews.Delete)
	}

	comments := v1.Group("/titles/:titleID/reviews/:reviewID/comments")
	{
		comments.Get("/", d.Comments.List)
		comments.Post("/", middleware.RequireAuthenticated(), d.Comments.Create)
		comments.Get("/:id", d.Comments.Get)
		comments.Patch("/:id", middleware.RequireAuthenticated(), d.Comments.Update)
		comments.Delete("/:id", middleware.RequireAuthenticated(), d.Comments.Delete)
	}

	users := v1.Group("/users")
	{
		// /me must be registered ahead of /:username.
		users.Get("/me", middleware.RequireAuthenticated(), d.Users.Me)
		users.Patch("/me", middleware.RequireAuthenticated(), d.Users.UpdateMe)

		users.Get("/", middleware.RequireAdmin(), d.Users.List)
		users.Post("/", middleware.RequireAdmin(), d.Users.Create)
		users.Get("/:username", middleware.RequireAdmin(), d.Users.Get)
		users.Patch("/:username", middleware.RequireAdmin(), d.Users.Update)
		users.Delete("/:username", middleware.RequireAdmin(), d.Users.Delete)
	}

	upload := v1.Group("/upload")
	{
		upload.Get("/presign", middleware.RequireAdmin(), d.Upload.GetPresignedURL)
	}
}
