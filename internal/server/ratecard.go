package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ratecarddomain "github.com/smallbiznis/sowforge/internal/ratecard/domain"
)

type createRateCardRequest struct {
	RoleName   string  `json:"role_name"`
	HourlyRate float64 `json:"hourly_rate"`
}

type updateRateCardRequest struct {
	RoleName   *string  `json:"role_name,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

func (s *Server) ListRateCard(c *gin.Context) {
	var query struct {
		RoleName string `form:"role_name"`
		SortBy   string `form:"sort_by"`
		OrderBy  string `form:"order_by"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ratecardSvc.List(c.Request.Context(), ratecarddomain.ListRequest{
		RoleName: strings.TrimSpace(query.RoleName),
		SortBy:   strings.TrimSpace(query.SortBy),
		OrderBy:  strings.TrimSpace(query.OrderBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateRateCardEntry(c *gin.Context) {
	var req createRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ratecardSvc.Create(c.Request.Context(), ratecarddomain.CreateRequest{
		RoleName:   strings.TrimSpace(req.RoleName),
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateRateCardEntry(c *gin.Context) {
	var req updateRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ratecardSvc.Update(c.Request.Context(), ratecarddomain.UpdateRequest{
		ID:         strings.TrimSpace(c.Param("id")),
		RoleName:   req.RoleName,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteRateCardEntry(c *gin.Context) {
	if err := s.ratecardSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
