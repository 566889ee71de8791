package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-analyzer/internal/models"
	"github.com/phambaophuc/image-analyzer/internal/services/analysis"
	"github.com/phambaophuc/image-analyzer/internal/services/processor"
	"github.com/phambaophuc/image-analyzer/internal/services/storage"
	"github.com/phambaophuc/image-analyzer/internal/ui"
	"github.com/phambaophuc/image-analyzer/pkg/utils"
	"go.uber.org/zap"
)

const (
	indexTemplate = "index.html"

	imageParamKey       = "image"
	queryParamKey       = "query"
	apiKeyParamKey      = "apiKey"
	previewIDParamKey   = "preview_id"
	previewNameParamKey = "preview_name"
	intentParamKey      = "intent"

	intentPreview = "preview"

	msgPreviewExpired   = "The selected image has expired. Please choose it again."
	msgUploadTooLarge   = "The selected image is too large."
	msgUploadInvalid    = "Please select a valid image file."
	msgUploadUnreadable = "Could not read the selected file."
)

// PageHandler serves the upload form. Each request replays the form fields
// through ui.Transition and renders the resulting state.
type PageHandler struct {
	analyzer  *analysis.Service
	storage   *storage.StorageService
	processor *processor.ImageProcessor
	logger    *zap.Logger
	maxUpload int64
}

func NewPageHandler(
	analyzer *analysis.Service,
	storage *storage.StorageService,
	processor *processor.ImageProcessor,
	logger *zap.Logger,
	maxUpload int64,
) *PageHandler {
	return &PageHandler{
		analyzer:  analyzer,
		storage:   storage,
		processor: processor,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

type pageView struct {
	State ui.State
}

func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, ui.State{Phase: ui.PhaseIdle})
}

func (h *PageHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			// Nothing past the limit was parsed; the form action still
			// names the held preview.
			h.logger.Info("Rejected oversized form",
				zap.String("request_id", requestID(c)),
				zap.Int64("limit", tooLarge.Limit),
			)
			state := h.apply(ctx, h.restoreState(c), ui.Event{Kind: ui.EventFileRejected, Message: msgUploadTooLarge})
			h.render(c, state)
			return
		}
		h.logger.Warn("Failed to parse form", zap.String("request_id", requestID(c)), zap.Error(err))
	}

	state := h.restoreState(c)

	state = h.apply(ctx, state, ui.Event{Kind: ui.EventQueryChanged, Value: c.PostForm(queryParamKey)})
	state = h.apply(ctx, state, ui.Event{Kind: ui.EventCredentialChanged, Value: c.PostForm(apiKeyParamKey)})

	file, rejection := h.readUpload(c)
	if rejection != "" {
		state = h.apply(ctx, state, ui.Event{Kind: ui.EventFileRejected, Message: rejection})
		h.render(c, state)
		return
	}
	if file != nil {
		state = h.apply(ctx, state, ui.Event{Kind: ui.EventFileSelected, File: file})
	}

	if c.PostForm(intentParamKey) == intentPreview {
		h.render(c, state)
		return
	}

	state, effect := ui.Transition(state, ui.Event{Kind: ui.EventSubmit})
	h.release(ctx, effect)
	if effect.Dispatch {
		state = h.apply(ctx, state, h.dispatch(c, state))
	}

	h.render(c, state)
}

func (h *PageHandler) Clear(c *gin.Context) {
	state := h.restoreState(c)
	state.Credential = c.PostForm(apiKeyParamKey)

	state = h.apply(c.Request.Context(), state, ui.Event{Kind: ui.EventClear})
	h.render(c, state)
}

// Preview serves the thumbnail of a held image.
func (h *PageHandler) Preview(c *gin.Context) {
	preview, err := h.storage.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, storage.ErrPreviewNotFound) {
			h.logger.Error("Failed to load preview", zap.String("request_id", requestID(c)), zap.Error(err))
		}
		c.Status(http.StatusNotFound)
		return
	}

	thumb, err := h.processor.Thumbnail(preview.Data)
	if err != nil {
		h.logger.Warn("Failed to render thumbnail", zap.String("request_id", requestID(c)), zap.Error(err))
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/jpeg", thumb.Bytes())
}

// === STATE HANDLING ===

func (h *PageHandler) restoreState(c *gin.Context) ui.State {
	state := ui.State{Phase: ui.PhaseIdle}

	if id := formValue(c, previewIDParamKey); utils.IsPreviewID(id) {
		state.File = &ui.SelectedFile{
			PreviewID: id,
			Name:      formValue(c, previewNameParamKey),
		}
	}

	return state
}

// formValue prefers the posted field and falls back to the action URL, which
// survives a body that could not be parsed.
func formValue(c *gin.Context, key string) string {
	if value := c.PostForm(key); value != "" {
		return value
	}
	return c.Query(key)
}

func (h *PageHandler) apply(ctx context.Context, state ui.State, ev ui.Event) ui.State {
	next, effect := ui.Transition(state, ev)
	h.release(ctx, effect)
	return next
}

func (h *PageHandler) release(ctx context.Context, effect ui.Effect) {
	if effect.ReleasePreview != "" {
		h.storage.Release(ctx, effect.ReleasePreview)
	}
}

// dispatch sends the single analysis request for an in-flight state and
// reports its outcome as an event.
func (h *PageHandler) dispatch(c *gin.Context, state ui.State) ui.Event {
	ctx := c.Request.Context()

	preview, err := h.storage.Load(ctx, state.File.PreviewID)
	if err != nil {
		h.logger.Warn("Preview unavailable at submit",
			zap.String("request_id", requestID(c)),
			zap.String("preview_id", state.File.PreviewID),
			zap.Error(err),
		)
		return ui.Event{Kind: ui.EventFailed, Message: msgPreviewExpired}
	}

	result, err := h.analyzer.Analyze(ctx, &models.AnalysisRequest{
		Image:  utils.EncodeDataURL(preview.ContentType, preview.Data),
		Query:  state.Query,
		APIKey: state.Credential,
	})
	if err != nil {
		status, message := classifyError(err)
		h.logger.Error("Image analysis failed",
			zap.String("request_id", requestID(c)),
			zap.Int("status", status),
			zap.Error(err),
		)
		return ui.Event{Kind: ui.EventFailed, Message: message}
	}

	return ui.Event{Kind: ui.EventSucceeded, Result: result}
}

// === FILE OPERATIONS ===

// readUpload holds a newly chosen file. Both results are empty when the
// form carried no new file; a non-empty rejection is shown to the user.
func (h *PageHandler) readUpload(c *gin.Context) (*ui.SelectedFile, string) {
	file, header, err := c.Request.FormFile(imageParamKey)
	if err != nil || header.Size == 0 {
		return nil, ""
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("Failed to read upload", zap.String("request_id", requestID(c)), zap.Error(err))
		return nil, msgUploadUnreadable
	}

	contentType, err := h.processor.ValidateImage(data)
	if err != nil {
		h.logger.Info("Rejected upload",
			zap.String("request_id", requestID(c)),
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		if errors.Is(err, processor.ErrFileTooLarge) {
			return nil, msgUploadTooLarge
		}
		return nil, msgUploadInvalid
	}

	id, err := h.storage.Hold(c.Request.Context(), header.Filename, contentType, data)
	if err != nil {
		h.logger.Error("Failed to hold preview", zap.String("request_id", requestID(c)), zap.Error(err))
		return nil, msgUploadUnreadable
	}

	return &ui.SelectedFile{PreviewID: id, Name: header.Filename}, ""
}

func (h *PageHandler) render(c *gin.Context, state ui.State) {
	c.HTML(http.StatusOK, indexTemplate, pageView{State: state})
}
