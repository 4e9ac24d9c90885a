package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/sowforge/internal/pricing"
	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
)

type createSOWRequest struct {
	WorkspaceID     string        `json:"workspace_id"`
	Title           string        `json:"title"`
	ClientName      string        `json:"client_name"`
	Rows            []pricing.Row `json:"rows"`
	DiscountPercent float64       `json:"discount_percent"`
}

type updateSOWRequest struct {
	Title           *string        `json:"title,omitempty"`
	ClientName      *string        `json:"client_name,omitempty"`
	Rows            *[]pricing.Row `json:"rows,omitempty"`
	DiscountPercent *float64       `json:"discount_percent,omitempty"`
}

type generateSOWRequest struct {
	Brief string `json:"brief"`
}

func (s *Server) ListSOWs(c *gin.Context) {
	var query struct {
		WorkspaceID string `form:"workspace_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.sowSvc.List(c.Request.Context(), sowdomain.ListRequest{
		WorkspaceID: strings.TrimSpace(query.WorkspaceID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateSOW(c *gin.Context) {
	var req createSOWRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.sowSvc.Create(c.Request.Context(), sowdomain.CreateRequest{
		WorkspaceID:     strings.TrimSpace(req.WorkspaceID),
		Title:           strings.TrimSpace(req.Title),
		ClientName:      strings.TrimSpace(req.ClientName),
		Rows:            req.Rows,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSOWByID(c *gin.Context) {
	resp, err := s.sowSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateSOW(c *gin.Context) {
	var req updateSOWRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.sowSvc.Update(c.Request.Context(), sowdomain.UpdateRequest{
		ID:              strings.TrimSpace(c.Param("id")),
		Title:           req.Title,
		ClientName:      req.ClientName,
		Rows:            req.Rows,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteSOW(c *gin.Context) {
	if err := s.sowSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func (s *Server) GenerateSOW(c *gin.Context) {
	var req generateSOWRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.sowSvc.Generate(c.Request.Context(), sowdomain.GenerateRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Brief: req.Brief,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportSOWPDF(c *gin.Context) {
	view, err := s.sowSvc.ExportView(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.exporter.PDF(c.Request.Context(), view)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	writeAttachment(c, reader, "application/pdf", exportFilename(view.Title, "pdf"))
}

func (s *Server) ExportSOWCSV(c *gin.Context) {
	view, err := s.sowSvc.ExportView(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.exporter.CSV(c.Request.Context(), view)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	writeAttachment(c, reader, "text/csv", exportFilename(view.Title, "csv"))
}

func writeAttachment(c *gin.Context, reader io.Reader, contentType, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func exportFilename(title, ext string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "statement-of-work"
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-") + "." + ext
}
