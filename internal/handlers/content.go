package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/services"
)

type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (ch *ContentHandler) Create(c *gin.Context) {
	var req services.ContentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	block, err := ch.contentService.Create(c.Request.Context(), nil, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"content_block": block})
}

func (ch *ContentHandler) Update(c *gin.Context) {
	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid content block id"))
		return
	}
	var req services.ContentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	block, err := ch.contentService.Update(c.Request.Context(), nil, blockID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"content_block": block})
}

func (ch *ContentHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	blocks, err := ch.contentService.List(c.Request.Context(), nil, activeOnly)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"content_blocks": blocks})
}

func (ch *ContentHandler) Deactivate(c *gin.Context) {
	blockID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid content block id"))
		return
	}
	if err := ch.contentService.SetActive(c.Request.Context(), nil, blockID, false); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "content block deactivated"})
}
