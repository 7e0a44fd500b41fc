package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/services"
)

type ProgramHandler struct {
	programService services.ProgramService
}

func NewProgramHandler(programService services.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

func (ph *ProgramHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	program, err := ph.programService.Create(c.Request.Context(), nil, req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"program": program})
}

func (ph *ProgramHandler) List(c *gin.Context) {
	programs, err := ph.programService.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"programs": programs})
}
