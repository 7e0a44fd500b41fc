package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/types"
)

const latexCompileTimeout = 60 * time.Second

// Escaping is intentionally minimal; PDF output is a convenience path and
// content authors control the blocks.
const texTemplate = `\documentclass[11pt]{article}
\usepackage[margin=1in]{geometry}
\usepackage[T1]{fontenc}
\title{Transfer Advising Packet}
\begin{document}
\maketitle
\section*{Student}
{{.StudentName}} (\texttt{ {{.StudentEmail}} })\\
Program: {{.TargetProgram}}
{{range .Sections}}
\section*{ {{.Title}} }
{{.Content}}
{{end}}
\end{document}
`

type texSection struct {
	Title   string
	Content string
}

type texData struct {
	StudentName   string
	StudentEmail  string
	TargetProgram string
	Sections      []texSection
}

// LatexRenderer shells out to pdflatex. Callers must gate it behind
// configuration; the binary is asserted at construction, not per call.
type LatexRenderer struct {
	log      *logger.Logger
	latexBin string
	tpl      *template.Template
}

func NewLatexRenderer(baseLog *logger.Logger, latexBin string) (*LatexRenderer, error) {
	if strings.TrimSpace(latexBin) == "" {
		latexBin = "pdflatex"
	}
	if _, err := exec.LookPath(latexBin); err != nil {
		return nil, fmt.Errorf("latex binary %q not found: %w", latexBin, err)
	}
	tpl, err := template.New("packet").Parse(texTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse tex template: %w", err)
	}
	return &LatexRenderer{
		log:      baseLog.With("service", "LatexRenderer"),
		latexBin: latexBin,
		tpl:      tpl,
	}, nil
}

func (r *LatexRenderer) Render(ctx context.Context, packet *types.Packet, sections []*types.PacketSection, exportDir string) (string, error) {
	if packet == nil || packet.Request == nil {
		return "", fmt.Errorf("packet with request required")
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	texName := fmt.Sprintf("packet_%s.tex", packet.ID)
	texPath := filepath.Join(exportDir, texName)
	pdfPath := filepath.Join(exportDir, fmt.Sprintf("packet_%s.pdf", packet.ID))

	data := texData{
		StudentName:   packet.Request.StudentName,
		StudentEmail:  packet.Request.StudentEmail,
		TargetProgram: orDash(packet.Request.TargetProgram),
	}
	for _, s := range sections {
		data.Sections = append(data.Sections, texSection{
			Title:   s.Title,
			Content: strings.ReplaceAll(s.Content, "\n", `\\`),
		})
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render tex: %w", err)
	}
	if err := os.WriteFile(texPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write tex file: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, latexCompileTimeout)
	defer cancel()
	cmd := exec.CommandContext(runCtx, r.latexBin, "-interaction=nonstopmode", texName)
	cmd.Dir = exportDir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		r.log.Warn("LaTeX compile failed", "packet_id", packet.ID, "error", err, "stderr", stderr.String())
		return "", fmt.Errorf("latex compile failed: %w", err)
	}
	r.log.Info("Rendered packet pdf", "packet_id", packet.ID, "path", pdfPath)
	return pdfPath, nil
}
