package questions

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pdfqa-backend/internal/documents"
	"pdfqa-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches question routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask", h.ask)
}

type askRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

type askResponse struct {
	Answer    string    `json:"answer"`
	Document  string    `json:"document"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("documentId", req.DocumentID)

	answer, err := h.Svc.Ask(c.Request.Context(), req.DocumentID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusInternalServerError, "upstream_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to answer question", nil)
		}
		return
	}

	respond.OK(c, askResponse{
		Answer:    answer.Answer,
		Document:  answer.Document,
		Timestamp: answer.Timestamp,
	})
}
