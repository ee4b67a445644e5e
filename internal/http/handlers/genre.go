package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lcamargo/catalog-backend/internal/http/response"
	"github.com/lcamargo/catalog-backend/internal/services"
)

type GenreHandler struct {
	svc *services.GenreService
}

func NewGenreHandler(svc *services.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

type createGenreRequest struct {
	Name        string   `json:"name" binding:"required"`
	IsActive    *bool    `json:"is_active"`
	CategoryIDs []string `json:"categories_id"`
}

type updateGenreRequest struct {
	Name        *string  `json:"name"`
	IsActive    *bool    `json:"is_active"`
	CategoryIDs []string `json:"categories_id"`
}

// POST /api/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req createGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	categoryIDs, err := parseIDList(req.CategoryIDs)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	row, err := h.svc.Create(c.Request.Context(), services.CreateGenreInput{
		Name:        req.Name,
		IsActive:    req.IsActive,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"data": row})
}

// GET /api/genres
func (h *GenreHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), withTrashed(c))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": rows})
}

// GET /api/genres/:id
func (h *GenreHandler) Get(c *gin.Context) {
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

// PUT /api/genres/:id
func (h *GenreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req updateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var categoryIDs []uuid.UUID
	if req.CategoryIDs != nil {
		categoryIDs, err = parseIDList(req.CategoryIDs)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
	}
	row, err := h.svc.Update(c.Request.Context(), id, services.UpdateGenreInput{
		Name:        req.Name,
		IsActive:    req.IsActive,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": row})
}

// DELETE /api/genres/:id
func (h *GenreHandler) Delete(c *gin.Context) {
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

// parseIDList parses ids, keeping the result non-nil so callers can tell "sent
// empty" apart from "not sent".
func parseIDList(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
