package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/services"
)

type RequestHandler struct {
	requestService services.RequestService
}

func NewRequestHandler(requestService services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (rh *RequestHandler) Create(c *gin.Context) {
	var req services.CreateRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	sr, err := rh.requestService.Create(c.Request.Context(), nil, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"request": sr})
}

func (rh *RequestHandler) List(c *gin.Context) {
	items, err := rh.requestService.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"requests": items})
}
