package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/services"
)

type TemplateHandler struct {
	templateService services.TemplateService
}

func NewTemplateHandler(templateService services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

func (th *TemplateHandler) Create(c *gin.Context) {
	var req services.CreateTemplateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	tpl, err := th.templateService.Create(c.Request.Context(), nil, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"template": tpl})
}

func (th *TemplateHandler) List(c *gin.Context) {
	templates, err := th.templateService.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"templates": templates})
}

func (th *TemplateHandler) BuilderView(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid template id"))
		return
	}
	view, err := th.templateService.BuilderView(c.Request.Context(), nil, templateID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func (th *TemplateHandler) AddSection(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid template id"))
		return
	}
	var req services.SectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	section, err := th.templateService.AddSection(c.Request.Context(), nil, templateID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"section": section})
}

func (th *TemplateHandler) UpdateSection(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid section id"))
		return
	}
	var req services.SectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	section, err := th.templateService.UpdateSection(c.Request.Context(), nil, sectionID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"section": section})
}

func (th *TemplateHandler) DeleteSection(c *gin.Context) {
	sectionID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid section id"))
		return
	}
	if err := th.templateService.DeleteSection(c.Request.Context(), nil, sectionID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "section deleted"})
}

func (th *TemplateHandler) Delete(c *gin.Context) {
	templateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid template id"))
		return
	}
	if err := th.templateService.Delete(c.Request.Context(), nil, templateID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "template deleted"})
}
