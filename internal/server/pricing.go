package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/sowforge/internal/pricing"
)

type pricingRowsRequest struct {
	Rows []pricing.Row `json:"rows"`
}

type pricingBreakdownRequest struct {
	Rows            []pricing.Row `json:"rows"`
	DiscountPercent float64       `json:"discount_percent"`
}

// EnforcePricing runs arbitrary rows through the enforcement engine against
// the stored rate catalog without persisting anything. The UI uses it to
// preview what saving would do.
func (s *Server) EnforcePricing(c *gin.Context) {
	var req pricingRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	catalog, err := s.ratecardSvc.Snapshot(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	opts := pricing.DefaultOptions()
	if s.cfg.Pricing.FallbackRate > 0 {
		opts.FallbackRate = s.cfg.Pricing.FallbackRate
	}
	opts.NewRowID = func() string { return s.genID.Generate().String() }

	rows, err := pricing.EnforceWithOptions(req.Rows, catalog, opts)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"rows":       rows,
		"validation": pricing.Validate(rows),
	}})
}

func (s *Server) ValidatePricing(c *gin.Context) {
	var req pricingRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result := pricing.Validate(req.Rows)
	resp := gin.H{"validation": result}
	if !result.IsValid {
		resp["suggestions"] = pricing.SuggestAdjustments(req.Rows)
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) BreakdownPricing(c *gin.Context) {
	var req pricingBreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		AbortWithError(c, newValidationError("discount_percent", "invalid_discount", "discount must be between 0 and 100"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": pricing.CalculateBreakdown(req.Rows, req.DiscountPercent)})
}
