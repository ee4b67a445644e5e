package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
	"github.com/lcamargo/catalog-backend/internal/http/response"
	"github.com/lcamargo/catalog-backend/internal/services"
)

type VideoHandler struct {
	svc *services.VideoService
}

func NewVideoHandler(svc *services.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// POST /api/videos (multipart/form-data)
func (h *VideoHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	in := services.CreateVideoInput{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Rating:      formValue(form, "rating"),
	}
	if in.YearLaunched, err = formInt(form, "year_launched"); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if in.Duration, err = formInt(form, "duration"); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	in.Opened = formValue(form, "opened") == "1" || formValue(form, "opened") == "true"

	if in.CategoryIDs, _, err = formIDs(form, "categories_id"); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if in.GenreIDs, _, err = formIDs(form, "genres_id"); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if in.CastMemberIDs, _, err = formIDs(form, "cast_members_id"); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if in.Uploads, err = formUploads(form); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	row, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"data": row})
}

// GET /api/videos
func (h *VideoHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), withTrashed(c))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": rows})
}

// GET /api/videos/:id
func (h *VideoHandler) Get(c *gin.Context) {
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

// PUT /api/videos/:id (multipart/form-data, partial)
func (h *VideoHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	var in services.UpdateVideoInput
	if v, ok := formLookup(form, "title"); ok {
		in.Title = &v
	}
	if v, ok := formLookup(form, "description"); ok {
		in.Description = &v
	}
	if v, ok := formLookup(form, "rating"); ok {
		in.Rating = &v
	}
	if v, ok := formLookup(form, "year_launched"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid year_launched: %w", err))
			return
		}
		in.YearLaunched = &n
	}
	if v, ok := formLookup(form, "duration"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid duration: %w", err))
			return
		}
		in.Duration = &n
	}
	if v, ok := formLookup(form, "opened"); ok {
		b := v == "1" || v == "true"
		in.Opened = &b
	}

	ids, sent, err := formIDs(form, "categories_id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if sent {
		in.CategoryIDs = ids
	}
	if ids, sent, err = formIDs(form, "genres_id"); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	} else if sent {
		in.GenreIDs = ids
	}
	if ids, sent, err = formIDs(form, "cast_members_id"); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	} else if sent {
		in.CastMemberIDs = ids
	}
	if in.Uploads, err = formUploads(form); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	row, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"data": row})
}

// DELETE /api/videos/:id
func (h *VideoHandler) Delete(c *gin.Context) {
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

func formValue(form *multipart.Form, key string) string {
	v, _ := formLookup(form, key)
	return v
}

func formLookup(form *multipart.Form, key string) (string, bool) {
	vals, ok := form.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func formInt(form *multipart.Form, key string) (int, error) {
	v, ok := formLookup(form, key)
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// formIDs reads an id list sent either as repeated "key" fields or as
// "key[]". The second return reports whether the field was present at all.
func formIDs(form *multipart.Form, key string) ([]uuid.UUID, bool, error) {
	vals, ok := form.Value[key]
	if !ok {
		vals, ok = form.Value[key+"[]"]
	}
	if !ok {
		return nil, false, nil
	}
	out := make([]uuid.UUID, 0, len(vals))
	for _, s := range vals {
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, true, fmt.Errorf("invalid %s entry %q: %w", key, s, err)
		}
		out = append(out, id)
	}
	return out, true, nil
}

func formUploads(form *multipart.Form) (map[catalog.VideoSlot]*catalog.Upload, error) {
	uploads := map[catalog.VideoSlot]*catalog.Upload{}
	for _, slot := range catalog.VideoSlots {
		headers, ok := form.File[string(slot)]
		if !ok || len(headers) == 0 {
			continue
		}
		up, err := readUpload(headers[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", string(slot), err)
		}
		uploads[slot] = up
	}
	if len(uploads) == 0 {
		return nil, nil
	}
	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (*catalog.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &catalog.Upload{Name: fh.Filename, Content: content}, nil
}
