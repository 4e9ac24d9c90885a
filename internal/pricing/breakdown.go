package pricing

// GSTRate is the fixed goods-and-services tax applied after discount.
const GSTRate = 0.10

// Breakdown is the derived financial summary of a pricing table. Values keep
// full float64 precision; rounding to cents is a presentation concern.
type Breakdown struct {
	Subtotal              float64 `json:"subtotal"`
	DiscountPercent       float64 `json:"discount_percent"`
	DiscountAmount        float64 `json:"discount_amount"`
	SubtotalAfterDiscount float64 `json:"subtotal_after_discount"`
	GST                   float64 `json:"gst"`
	GrandTotal            float64 `json:"grand_total"`
}

// CalculateBreakdown computes subtotal, discount, GST and grand total over
// all rows. Garbled hours or rates count as 0 instead of failing. The
// calculator does not clamp discountPercent; keeping it in [0, 100] is the
// caller's job.
func CalculateBreakdown(rows []Row, discountPercent float64) Breakdown {
	subtotal := 0.0
	for _, row := range rows {
		subtotal += row.Cost()
	}

	discountPercent = sanitizeNumber(discountPercent)
	discountAmount := subtotal * (discountPercent / 100)
	afterDiscount := subtotal - discountAmount
	gst := afterDiscount * GSTRate

	return Breakdown{
		Subtotal:              subtotal,
		DiscountPercent:       discountPercent,
		DiscountAmount:        discountAmount,
		SubtotalAfterDiscount: afterDiscount,
		GST:                   gst,
		GrandTotal:            afterDiscount + gst,
	}
}
