package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
)

// DefaultHistoryLimit cuando la petición no trae ?limit.
const DefaultHistoryLimit = 50

type handlers struct {
	text     TextAnalyzer
	url      URLAnalyzer
	history  ports.HistoryReader
	feedback ports.FeedbackRecorder
	logger   logx.Logger
}

type textRequest struct {
	Text *string `json:"text"`
}

type urlRequest struct {
	URL      *string `json:"url"`
	DeepScan bool    `json:"deep_scan"`
}

type feedbackRequest struct {
	Type     string `json:"type"`
	Comments string `json:"comments"`
}

func abortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func (h *handlers) health(c *gin.Context) {
	body := gin.H{"status": "ok", "model_available": false}
	if h.text != nil {
		body["model_available"] = h.text.ModelAvailable()
	}
	if h.url != nil {
		body["deep_scan_services"] = h.url.DeepScanServices()
	}
	c.JSON(http.StatusOK, body)
}

func (h *handlers) analyzeText(c *gin.Context) {
	if h.text == nil {
		abortError(c, http.StatusNotImplemented, "text analysis not configured")
		return
	}

	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Text == nil {
		abortError(c, http.StatusBadRequest, "field 'text' is required")
		return
	}

	res, err := h.text.Analyze(c.Request.Context(), *req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedInput) {
			abortError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Err(err, "route", "analyze/text")
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) analyzeURL(c *gin.Context) {
	if h.url == nil {
		abortError(c, http.StatusNotImplemented, "URL analysis not configured")
		return
	}

	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.URL == nil {
		abortError(c, http.StatusBadRequest, "field 'url' is required")
		return
	}

	c.JSON(http.StatusOK, h.url.Analyze(c.Request.Context(), *req.URL, req.DeepScan))
}

func (h *handlers) listHistory(c *gin.Context) {
	if h.history == nil {
		abortError(c, http.StatusNotImplemented, "history backend does not support listing")
		return
	}

	limit := DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			abortError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Err(err, "route", "history")
		abortError(c, http.StatusInternalServerError, "failed to list history")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *handlers) recordFeedback(c *gin.Context) {
	if h.feedback == nil {
		abortError(c, http.StatusNotImplemented, domain.ErrFeedbackUnsupported.Error())
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	id := c.Param("id")
	err := h.feedback.RecordFeedback(c.Request.Context(), id, req.Type, req.Comments)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "recorded", "id": id})
	case errors.Is(err, domain.ErrInvalidFeedbackType):
		abortError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRecordNotFound):
		abortError(c, http.StatusNotFound, err.Error())
	default:
		h.logger.Err(err, "route", "feedback", "id", id)
		abortError(c, http.StatusInternalServerError, "failed to record feedback")
	}
}
