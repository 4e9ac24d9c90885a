package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
)

func (e *marotoExporter) CSV(_ context.Context, view *sowdomain.ExportView) (io.Reader, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Role", "Description", "Hours", "Rate", "Cost"},
	}
	for _, row := range view.Rows {
		records = append(records, []string{
			row.Role,
			row.Description,
			hours(row.Hours),
			fmt.Sprintf("%.2f", row.Rate),
			fmt.Sprintf("%.2f", row.Cost()),
		})
	}

	b := view.Breakdown
	records = append(records,
		[]string{"Subtotal", "", "", "", fmt.Sprintf("%.2f", b.Subtotal)},
		[]string{fmt.Sprintf("Discount (%s%%)", hours(b.DiscountPercent)), "", "", "", fmt.Sprintf("-%.2f", b.DiscountAmount)},
		[]string{"After discount", "", "", "", fmt.Sprintf("%.2f", b.SubtotalAfterDiscount)},
		[]string{"GST (10%)", "", "", "", fmt.Sprintf("%.2f", b.GST)},
		[]string{"Total", "", "", "", fmt.Sprintf("%.2f", b.GrandTotal)},
	)

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return bytes.NewReader(buf.Bytes()), nil
}
