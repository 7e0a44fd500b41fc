package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transferdesk/advising-backend/internal/apierr"
	"github.com/transferdesk/advising-backend/internal/assembler"
	"github.com/transferdesk/advising-backend/internal/services"
)

type PacketHandler struct {
	assemblerService assembler.Service
	packetService    services.PacketService
	exportService    services.ExportService
	notifyService    services.NotifyService
}

func NewPacketHandler(
	assemblerService assembler.Service,
	packetService services.PacketService,
	exportService services.ExportService,
	notifyService services.NotifyService,
) *PacketHandler {
	return &PacketHandler{
		assemblerService: assemblerService,
		packetService:    packetService,
		exportService:    exportService,
		notifyService:    notifyService,
	}
}

func (ph *PacketHandler) Generate(c *gin.Context) {
	var req struct {
		RequestID         uuid.UUID   `json:"request_id"`
		TemplateID        uuid.UUID   `json:"template_id"`
		IncludeSectionIDs []uuid.UUID `json:"include_section_ids"`
		ExtraContentIDs   []uuid.UUID `json:"extra_content_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	packet, err := ph.assemblerService.Generate(c.Request.Context(), nil, assembler.GenerateInput{
		RequestID:         req.RequestID,
		TemplateID:        req.TemplateID,
		IncludeSectionIDs: req.IncludeSectionIDs,
		ExtraContentIDs:   req.ExtraContentIDs,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"packet": packet})
}

func (ph *PacketHandler) Get(c *gin.Context) {
	packetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid packet id"))
		return
	}
	packet, err := ph.packetService.Get(c.Request.Context(), nil, packetID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"packet": packet})
}

func (ph *PacketHandler) Finalize(c *gin.Context) {
	var req struct {
		PacketID uuid.UUID `json:"packet_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	packet, err := ph.packetService.Finalize(c.Request.Context(), nil, req.PacketID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"packet": packet})
}

func (ph *PacketHandler) UpdateSection(c *gin.Context) {
	packetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid packet id"))
		return
	}
	sectionID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid section id"))
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	section, err := ph.packetService.UpdateSectionContent(c.Request.Context(), nil, packetID, sectionID, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"section": section})
}

func (ph *PacketHandler) AddInfoBlock(c *gin.Context) {
	packetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid packet id"))
		return
	}
	var req struct {
		ContentBlockID uuid.UUID `json:"content_block_id"`
		Title          *string   `json:"title"`
		DisplayOrder   *int      `json:"display_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	section, err := ph.packetService.AddInfoBlock(c.Request.Context(), nil, packetID, req.ContentBlockID, req.Title, req.DisplayOrder)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"section": section})
}

func (ph *PacketHandler) Export(c *gin.Context) {
	var req struct {
		PacketID uuid.UUID `json:"packet_id"`
		Format   string    `json:"format"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	path, err := ph.exportService.Export(c.Request.Context(), nil, req.PacketID, req.Format)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"path": path})
}

func (ph *PacketHandler) Send(c *gin.Context) {
	packetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.InvalidInput("invalid packet id"))
		return
	}
	var req struct {
		Format string `json:"format"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	if err := ph.notifyService.SendPacket(c.Request.Context(), nil, packetID, req.Format); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "packet sent"})
}
