package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/videoteca/backend/internal/catalog"
	"github.com/videoteca/backend/internal/errs"
	"github.com/videoteca/backend/internal/middlewares"
)

var invalidPageError = errors.New("Page must be a valid number")
var videoNotFoundError = errors.New("Video not found or not public.")
var noHighlightsError = errors.New("No highlighted videos found or none are public.")
var internalError = errors.New("Internal server error")

func VideoRouter(g *gin.RouterGroup, env *Env) {
	g.GET("/search", env.searchVideos)
	g.GET("/featured", env.featuredVideos)
	g.GET("/title/:title", env.videoByTitle)
	g.POST("/title/:title/views", env.incrementViews)

	g.POST("", middlewares.MustAuthMiddleware(), env.createVideo)
	g.PATCH("/:id", middlewares.MustAuthMiddleware(), env.updateVideo)
}

func videoJSON(record *catalog.Record, detailed bool) gin.H {
	var thumbnail gin.H
	if record.Thumbnail != nil {
		thumbnail = gin.H{"url": record.Thumbnail.URL}
	}

	categories := record.Categories
	if categories == nil {
		categories = []string{}
	}

	var publishedAt *string
	if record.PublishedAt != nil {
		s := record.PublishedAt.Format(time.RFC3339)
		publishedAt = &s
	}

	video := gin.H{
		"id":          record.Id,
		"sourceType":  record.SourceVariant,
		"videoId":     record.ExternalId,
		"title":       record.Title,
		"description": record.Description,
		"author":      record.Author,
		"duration":    record.DurationDisplay,
		"thumbnail":   thumbnail,
		"publishedAt": publishedAt,
		"isNew":       record.IsNew,
		"featured":    record.Featured,
		"categories":  categories,
		"createdAt":   record.CreatedAt.Format(time.RFC3339),
	}

	if detailed {
		video["embedCode"] = record.EmbedCode
		video["views"] = record.Views
		video["youtubeUrl"] = record.YoutubeURL
		video["uploadedFileRef"] = record.UploadedFileRef
		video["isPublic"] = record.IsPublic
		video["highlight"] = record.Highlight
		video["isRestricted"] = record.IsRestricted
		video["verificationMessage"] = record.VerificationMessage
	}

	return video
}

func (env *Env) searchVideos(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to fetch videos")

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		var err error
		if page, err = strconv.Atoi(pageStr); err != nil || page < 1 {
			handler.PublicError(http.StatusBadRequest, invalidPageError)
			return
		}
	}

	records, total, err := env.Store.Search(c.Request.Context(), catalog.SearchParams{
		Page:        page,
		SearchQuery: c.Query("search_query"),
		Categories:  c.QueryArray("category"),
	})
	if err != nil {
		handler.PrivateError(err)
		handler.PublicError(http.StatusInternalServerError, internalError)
		return
	}

	videos := make([]gin.H, 0, len(records))
	for i := range records {
		videos = append(videos, videoJSON(&records[i], false))
	}

	totalPages := (total + catalog.SearchPageSize - 1) / catalog.SearchPageSize

	c.JSON(http.StatusOK, gin.H{
		"page":       page,
		"totalPages": totalPages,
		"videos":     videos,
	})
}

func (env *Env) featuredVideos(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to fetch videos")

	records, err := env.Store.Highlighted(c.Request.Context())
	if err != nil {
		handler.PrivateError(err)
		handler.PublicError(http.StatusInternalServerError, internalError)
		return
	}

	if len(records) == 0 {
		handler.PublicError(http.StatusNotFound, noHighlightsError)
		return
	}

	videos := make([]gin.H, 0, len(records))
	for i := range records {
		videos = append(videos, videoJSON(&records[i], false))
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

func (env *Env) videoByTitle(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to fetch video")

	record, err := env.Store.FindByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		handler.PrivateError(err)
		handler.PublicError(http.StatusInternalServerError, internalError)
		return
	}

	if record == nil {
		handler.PublicError(http.StatusNotFound, videoNotFoundError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"video": videoJSON(record, true)})
}

func (env *Env) incrementViews(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to count view")

	err := env.Store.IncrementViews(c.Request.Context(), c.Param("title"))
	if errors.Is(err, catalog.ErrRecordNotFound) {
		handler.PublicError(http.StatusNotFound, videoNotFoundError)
		return
	}
	if err != nil {
		handler.PrivateError(err)
		handler.PublicError(http.StatusInternalServerError, internalError)
		return
	}

	c.Status(http.StatusNoContent)
}
