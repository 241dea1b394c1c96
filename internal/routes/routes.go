package routes

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/videoteca/backend/internal/catalog"
	"github.com/videoteca/backend/internal/ingest"
	"github.com/videoteca/backend/internal/middlewares"
)

// Env carries the collaborators the route handlers need.
type Env struct {
	Store    catalog.Store
	Pipeline *ingest.Pipeline
}

func CreateMainRouter(env *Env) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(middlewares.ErrorMiddleware())
	router.Use(middlewares.AuthMiddleware())

	VideoRouter(router.Group("/videos"), env)

	return middlewares.NewLogMiddleware(router)
}
