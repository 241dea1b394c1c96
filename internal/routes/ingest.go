package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/videoteca/backend/internal/catalog"
	"github.com/videoteca/backend/internal/errs"
	"github.com/videoteca/backend/internal/ingest"
	"github.com/videoteca/backend/internal/media"
)

var invalidVideoIdError = errors.New("Invalid video id.")
var invalidBodyError = errors.New("Invalid request body.")

type intakeRequest struct {
	SourceType      string   `json:"sourceType"`
	YoutubeURL      string   `json:"youtubeUrl"`
	EmbedCode       string   `json:"embedCode"`
	UploadedFileRef string   `json:"uploadedFileRef"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Author          string   `json:"author"`
	ThumbnailURL    string   `json:"thumbnailUrl"`
	IsPublic            *bool    `json:"isPublic"`
	Featured            *bool    `json:"featured"`
	Highlight           *bool    `json:"highlight"`
	IsRestricted        *bool    `json:"isRestricted"`
	VerificationMessage string   `json:"verificationMessage"`
	Categories          []string `json:"categories"`
}

func (r intakeRequest) intake() ingest.Intake {
	return ingest.Intake{
		SourceType:      r.SourceType,
		YoutubeURL:      r.YoutubeURL,
		EmbedCode:       r.EmbedCode,
		UploadedFileRef: r.UploadedFileRef,
		Title:           r.Title,
		Description:     r.Description,
		Author:          r.Author,
		ThumbnailURL:    r.ThumbnailURL,
		IsPublic:            r.IsPublic,
		Featured:            r.Featured,
		Highlight:           r.Highlight,
		IsRestricted:        r.IsRestricted,
		VerificationMessage: r.VerificationMessage,
		Categories:          r.Categories,
	}
}

// ingestError translates pipeline failures into response errors. Validation
// failures surface every accumulated message.
func ingestError(handler errs.ErrorHandler, err error) {
	var verr *media.ValidationError
	switch {
	case errors.As(err, &verr):
		for _, msg := range verr.Messages {
			handler.PublicError(http.StatusBadRequest, errors.New(msg))
		}
	case errors.Is(err, catalog.ErrDuplicateExternalId), errors.Is(err, catalog.ErrDuplicateTitle):
		handler.PublicError(http.StatusConflict, err)
	case errors.Is(err, catalog.ErrRecordNotFound):
		handler.PublicError(http.StatusNotFound, err)
	default:
		handler.PrivateError(err)
		handler.PublicError(http.StatusInternalServerError, internalError)
	}
}

func (env *Env) createVideo(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to add video")

	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.PrivateError(err)
		handler.PublicError(http.StatusBadRequest, invalidBodyError)
		return
	}

	record, err := env.Pipeline.Create(c.Request.Context(), req.intake())
	if err != nil {
		ingestError(handler, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"video": videoJSON(record, true)})
}

func (env *Env) updateVideo(c *gin.Context) {
	handler := errs.NewGinErrorHandler(c, "Unable to update video")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.PublicError(http.StatusBadRequest, invalidVideoIdError)
		return
	}

	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.PrivateError(err)
		handler.PublicError(http.StatusBadRequest, invalidBodyError)
		return
	}

	record, err := env.Pipeline.Update(c.Request.Context(), id, req.intake())
	if err != nil {
		ingestError(handler, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"video": videoJSON(record, true)})
}
