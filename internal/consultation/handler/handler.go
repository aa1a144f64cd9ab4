// Package handler wires the gin HTTP surface onto the consultation
// Service (§6).
package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portal_final_backend/internal/consultation/service"
	"portal_final_backend/internal/consultation/transport"
	"portal_final_backend/internal/http/response"
	"portal_final_backend/internal/shared/validator"
	"portal_final_backend/platform/apperr"
)

// Handler holds the consultation Service and exposes gin.HandlerFuncs.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// respondError maps an apperr.Error to its HTTP status; any other error
// (such as an undecodable LLM response passed up from the pipeline) is
// treated as internal (§7).
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperr.Error); ok {
		response.Error(c, appErr.HTTPStatus(), appErr.Message, appErr.Details)
		return
	}
	response.Error(c, http.StatusInternalServerError, err.Error(), nil)
}

// ProcessAudio handles POST /api/process-audio: a multipart upload carrying
// the recorded consultation audio, plus optional push_to_crm/language
// fields (§6).
func (h *Handler) ProcessAudio(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "audio file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read audio file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read audio file", nil)
		return
	}

	pushToCRM := c.PostForm("push_to_crm") == "true"
	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	result, err := h.svc.ProcessAudio(c.Request.Context(), data, mimeType, pushToCRM)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, transport.FromConsultationResult(result))
}

// ProcessText handles POST /api/process-text: a JSON transcript (§6).
func (h *Handler) ProcessText(c *gin.Context) {
	var req transport.ProcessTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validator.Validate.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.svc.ProcessText(c.Request.Context(), req.Text, req.PushToCRM)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, transport.FromConsultationResult(result))
}

// ListCommunities handles GET /api/communities (§6): {communities: [...]}.
func (h *Handler) ListCommunities(c *gin.Context) {
	all := h.svc.ListCommunities()
	out := make([]transport.CommunityResponse, len(all))
	for i, community := range all {
		out[i] = transport.FromCommunity(community)
	}
	response.OK(c, gin.H{"communities": out})
}

// GetCommunity handles GET /api/communities/{id} (§6).
func (h *Handler) GetCommunity(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	community, ok := h.svc.GetCommunity(id)
	if !ok {
		respondError(c, apperr.NotFound("community not found"))
		return
	}
	response.OK(c, transport.FromCommunity(community))
}

// CreateCommunity handles POST /api/communities (§6): {community_id}.
func (h *Handler) CreateCommunity(c *gin.Context) {
	var req transport.CommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validator.Validate.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	community := req.ToCommunity()
	if err := h.svc.CreateCommunity(community); err != nil {
		respondError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"community_id": community.CommunityID})
}

// UpdateCommunity handles PUT /api/communities/{id} (§6): {message}.
func (h *Handler) UpdateCommunity(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req transport.CommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := validator.Validate.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	community := req.ToCommunity()
	if err := h.svc.UpdateCommunity(id, community); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "community updated"})
}

// DeleteCommunity handles DELETE /api/communities/{id} (§6): {message}.
func (h *Handler) DeleteCommunity(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.DeleteCommunity(id); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "community deleted"})
}

// Stats handles GET /api/stats (§6).
func (h *Handler) Stats(c *gin.Context) {
	response.OK(c, h.svc.Stats())
}

func parseID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperr.BadRequest("id must be an integer")
	}
	return id, nil
}
