// Package app holds the dependencies shared by the HTTP handlers.
package app

import (
	"github.com/junaidrashid-git/jewelry-api/auth"
	"github.com/junaidrashid-git/jewelry-api/cache"
	"github.com/junaidrashid-git/jewelry-api/config"
	"github.com/junaidrashid-git/jewelry-api/events"
	"github.com/junaidrashid-git/jewelry-api/imageref"
	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Config config.Config

	Tokens  *auth.Tokens
	Images  *imageref.Resolver
	Links   *imageref.Materializer
	Uploads *imageref.Uploader

	// Cache may be nil; a nil cache loads straight from the database.
	Cache *cache.ProductCache

	Events events.Publisher
	Hub    *events.Hub
}

// New builds the handler dependencies from cfg. Optional services (cache,
// broker) are attached by the caller.
func New(db *gorm.DB, cfg config.Config) *Deps {
	hub := events.NewHub()
	return &Deps{
		DB:      db,
		Config:  cfg,
		Tokens:  auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Images:  imageref.NewResolver(cfg.Policy()),
		Links:   imageref.NewMaterializer(cfg.PublicBaseURL),
		Uploads: imageref.NewUploader(cfg.UploadDir, cfg.MaxUploadBytes),
		Events:  hub,
		Hub:     hub,
	}
}
