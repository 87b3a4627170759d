package inbound

import (
	"github.com/shandysiswandi/talentflow/internal/content/entity"
	"github.com/shandysiswandi/talentflow/internal/content/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// GetMeta returns static labels for the content panel.
// @Summary Content panel labels
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=MetaResponse} "Labels"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Router /api/v1/content/meta [get]
func (h *HTTPEndpoint) GetMeta(r *router.Request) (any, error) {
	resp, err := h.uc.GetMeta(r.Context())
	if err != nil {
		return nil, err
	}

	return toMeta(resp), nil
}

// ListEntries lists industries or partners.
// @Summary List cards
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=[]EntryResponse} "Cards"
// @Router /api/v1/content/industries [get]
// @Router /api/v1/content/partners [get]
func (h *HTTPEndpoint) ListEntries(kind entity.Kind) router.Handler {
	return func(r *router.Request) (any, error) {
		resp, err := h.uc.ListEntries(r.Context(), kind)
		if err != nil {
			return nil, err
		}

		return toEntries(resp), nil
	}
}

// CreateEntry adds a card.
// @Summary Create card
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EntryForm true "Card"
// @Success 201 {object} router.successResponse{data=EntryResponse} "Created"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/content/industries [post]
// @Router /api/v1/content/partners [post]
func (h *HTTPEndpoint) CreateEntry(kind entity.Kind) router.Handler {
	return func(r *router.Request) (any, error) {
		var req EntryForm
		if err := r.DecodeBody(&req); err != nil {
			return nil, err
		}

		resp, err := h.uc.CreateEntry(r.Context(), entryInput(kind, req))
		if err != nil {
			return nil, err
		}

		return CreateEntryResponse{EntryResponse: toEntry(*resp)}, nil
	}
}

// UpdateEntry replaces a card.
// @Summary Update card
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Card ID"
// @Param request body EntryForm true "Card"
// @Success 200 {object} router.successResponse{data=EntryResponse} "Updated"
// @Failure 404 {object} router.errorResponse "Not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/content/industries/{id} [put]
// @Router /api/v1/content/partners/{id} [put]
func (h *HTTPEndpoint) UpdateEntry(kind entity.Kind) router.Handler {
	return func(r *router.Request) (any, error) {
		id, err := r.GetParamInt64("id")
		if err != nil {
			return nil, err
		}

		var req EntryForm
		if err := r.DecodeBody(&req); err != nil {
			return nil, err
		}

		resp, err := h.uc.UpdateEntry(r.Context(), usecase.UpdateEntryInput{ID: id, EntryInput: entryInput(kind, req)})
		if err != nil {
			return nil, err
		}

		return toEntry(*resp), nil
	}
}

// DeleteEntry removes a card.
// @Summary Delete card
// @Tags Content
// @Security BearerAuth
// @Param id path string true "Card ID"
// @Success 204 "Deleted"
// @Failure 404 {object} router.errorResponse "Not found"
// @Router /api/v1/content/industries/{id} [delete]
// @Router /api/v1/content/partners/{id} [delete]
func (h *HTTPEndpoint) DeleteEntry(kind entity.Kind) router.Handler {
	return func(r *router.Request) (any, error) {
		id, err := r.GetParamInt64("id")
		if err != nil {
			return nil, err
		}

		if err := h.uc.DeleteEntry(r.Context(), kind, id); err != nil {
			return nil, err
		}

		return DeleteEntryResponse{}, nil
	}
}

// GetOptions returns the global option lists.
// @Summary Global options
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=map[string][]string} "Options"
// @Router /api/v1/content/options [get]
func (h *HTTPEndpoint) GetOptions(r *router.Request) (any, error) {
	return h.uc.GetOptions(r.Context())
}

// UpdateOptions replaces the option lists sent in the body.
// @Summary Update global options
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body map[string][]string true "Lists by name"
// @Success 200 {object} router.successResponse{data=map[string][]string} "Options"
// @Failure 422 {object} router.errorResponse "Unknown list"
// @Router /api/v1/content/options [put]
func (h *HTTPEndpoint) UpdateOptions(r *router.Request) (any, error) {
	var req map[string][]string
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return h.uc.UpdateOptions(r.Context(), req)
}

// UploadImage stores an image for a landing page section.
// @Summary Upload image
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param folder query string true "hero, industries or partners"
// @Param file formData file true "Image"
// @Success 200 {object} router.successResponse{data=ImageResponse} "Stored"
// @Failure 422 {object} router.errorResponse "Invalid image"
// @Router /api/v1/content/images [put]
func (h *HTTPEndpoint) UploadImage(r *router.Request) (any, error) {
	file, err := r.StreamSingleFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	obj, err := h.uc.UploadImage(r.Context(), usecase.UploadImageInput{
		Folder:      r.GetQuery("folder"),
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Body:        file,
	})
	if err != nil {
		return nil, err
	}

	return ImageResponse{Key: obj.Key, URL: obj.URL, Size: obj.Size, ContentType: obj.ContentType}, nil
}

func entryInput(kind entity.Kind, f EntryForm) usecase.EntryInput {
	return usecase.EntryInput{
		Kind:        kind,
		Name:        f.Name,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		URL:         f.url(kind),
		Active:      f.Active,
	}
}
