package handler

import (
	"github.com/gin-gonic/gin"
	directoryapp "github.com/worklog/backend/internal/application/directory"
)

// ClientHandler handles client directory API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *directoryapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *directoryapp.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// Create creates a new client owned by the authenticated user
func (h *ClientHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req directoryapp.CreateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// Get returns one active client visible to the authenticated user
func (h *ClientHandler) Get(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), actorID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// List returns the active clients of the user's tenant
func (h *ClientHandler) List(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.clientService.List(c.Request.Context(), actorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update modifies an active client
func (h *ClientHandler) Update(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req directoryapp.UpdateClientRequest
	if !h.bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), actorID, clientID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Archive soft-deletes an active client
func (h *ClientHandler) Archive(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.Archive(c.Request.Context(), actorID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Restore brings an archived client back to the active state
func (h *ClientHandler) Restore(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.Restore(c.Request.Context(), actorID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// ListArchived returns the archived clients of the user's tenant
func (h *ClientHandler) ListArchived(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.clientService.ListArchived(c.Request.Context(), actorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetArchived returns one archived client visible to the authenticated user
func (h *ClientHandler) GetArchived(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetArchivedByID(c.Request.Context(), actorID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Purge permanently deletes a client regardless of lifecycle state
func (h *ClientHandler) Purge(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	clientID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.clientService.Purge(c.Request.Context(), actorID, clientID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
