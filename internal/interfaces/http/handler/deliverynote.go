package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appworklog "github.com/worklog/backend/internal/application/worklog"
)

// DeliveryNoteHandler handles delivery note API endpoints
type DeliveryNoteHandler struct {
	BaseHandler
	noteService *appworklog.DeliveryNoteService
}

// NewDeliveryNoteHandler creates a new DeliveryNoteHandler
func NewDeliveryNoteHandler(noteService *appworklog.DeliveryNoteService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{
		noteService: noteService,
	}
}

// companyScope reports whether the request asked for the whole tenant's
// notes rather than only the caller's own
func companyScope(c *gin.Context) bool {
	return c.Query("company") == "true"
}

// Create creates a new delivery note owned by the authenticated user
func (h *DeliveryNoteHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appworklog.CreateNoteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// Get returns one active delivery note visible to the authenticated user
func (h *DeliveryNoteHandler) Get(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	noteID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetByID(c.Request.Context(), actorID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// List returns active delivery notes, scoped to the caller's own notes by
// default or to the whole tenant with ?company=true
func (h *DeliveryNoteHandler) List(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.noteService.List(c.Request.Context(), actorID, companyScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Sign attaches a signature to a delivery note and freezes its content
func (h *DeliveryNoteHandler) Sign(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	noteID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appworklog.SignNoteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	note, err := h.noteService.Sign(c.Request.Context(), actorID, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// GetPDF returns the rendered PDF document of a delivery note
func (h *DeliveryNoteHandler) GetPDF(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	noteID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	pdf, err := h.noteService.GetPDF(c.Request.Context(), actorID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="delivery-note.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Delete permanently removes an unsigned delivery note
func (h *DeliveryNoteHandler) Delete(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	noteID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), actorID, noteID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Archive soft-deletes an active delivery note
func (h *DeliveryNoteHandler) Archive(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	noteID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	note, err := h.noteService.Archive(c.Request.Context(), actorID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// Restore brings an archived delivery note back to the active state
func (h *DeliveryNoteHandler) Restore(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	noteID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	note, err := h.noteService.Restore(c.Request.Context(), actorID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, note)
}

// ListArchived returns archived delivery notes with the same scoping rules
// as List
func (h *DeliveryNoteHandler) ListArchived(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.noteService.ListArchived(c.Request.Context(), actorID, companyScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
