package handler

import (
	"github.com/gin-gonic/gin"
	directoryapp "github.com/worklog/backend/internal/application/directory"
)

// ProjectHandler handles project directory API endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *directoryapp.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *directoryapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create creates a new project owned by the authenticated user
func (h *ProjectHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req directoryapp.CreateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, project)
}

// Get returns one active project visible to the authenticated user
func (h *ProjectHandler) Get(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	projectID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), actorID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// List returns the active projects of the user's tenant
func (h *ProjectHandler) List(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.projectService.List(c.Request.Context(), actorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update modifies an active project
func (h *ProjectHandler) Update(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	projectID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req directoryapp.UpdateProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), actorID, projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Archive soft-deletes an active project
func (h *ProjectHandler) Archive(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	projectID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.Archive(c.Request.Context(), actorID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Restore brings an archived project back to the active state
func (h *ProjectHandler) Restore(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	projectID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.Restore(c.Request.Context(), actorID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// ListArchived returns the archived projects of the user's tenant
func (h *ProjectHandler) ListArchived(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	filter, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.projectService.ListArchived(c.Request.Context(), actorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetArchived returns one archived project visible to the authenticated user
func (h *ProjectHandler) GetArchived(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	projectID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetArchivedByID(c.Request.Context(), actorID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Purge permanently deletes a project regardless of lifecycle state
func (h *ProjectHandler) Purge(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	projectID, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.Purge(c.Request.Context(), actorID, projectID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
