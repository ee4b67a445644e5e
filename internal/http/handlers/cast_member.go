package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lcamargo/catalog-backend/internal/http/response"
	"github.com/lcamargo/catalog-backend/internal/services"
)

type CastMemberHandler struct {
	svc *services.CastMemberService
}

func NewCastMemberHandler(svc *services.CastMemberService) *CastMemberHandler {
	return &CastMemberHandler{svc: svc}
}

type createCastMemberRequest struct {
	Name string `json:"name" binding:"required"`
	Type int    `json:"type" binding:"required"`
}

type updateCastMemberRequest struct {
	Name *string `json:"name"`
	Type *int    `json:"type"`
}

// POST /api/cast-members
func (h *CastMemberHandler) Create(c *gin.Context) {
	var req createCastMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	row, err := h.svc.Create(c.Request.Context(), services.CreateCastMemberInput{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"data": row})
}

// GET /api/cast-members
func (h *CastMemberHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), withTrashed(c))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": rows})
}

// GET /api/cast-members/:id
func (h *CastMemberHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	row, err := h.svc.Get(c.Request.Context(), id, withTrashed(c))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": row})
}

// PUT /api/cast-members/:id
func (h *CastMemberHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req updateCastMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	row, err := h.svc.Update(c.Request.Context(), id, services.UpdateCastMemberInput{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": row})
}

// DELETE /api/cast-members/:id
func (h *CastMemberHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondNoContent(c)
}
