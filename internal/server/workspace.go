package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	workspacedomain "github.com/smallbiznis/sowforge/internal/workspace/domain"
)

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

func (s *Server) ListWorkspaces(c *gin.Context) {
	resp, err := s.workspaceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateWorkspace(c *gin.Context) {
	var req createWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.workspaceSvc.Create(c.Request.Context(), workspacedomain.CreateRequest{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetWorkspaceByID(c *gin.Context) {
	resp, err := s.workspaceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteWorkspace(c *gin.Context) {
	if err := s.workspaceSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
