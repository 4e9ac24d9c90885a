package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
)

type marotoExporter struct{}

func New() Exporter {
	return &marotoExporter{}
}

func (e *marotoExporter) PDF(_ context.Context, view *sowdomain.ExportView) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Statement of Work", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(18,
		col.New(12).Add(
			text.New(view.Title, props.Text{Size: 12, Style: fontstyle.Bold}),
			text.New("Prepared for: "+view.ClientName, props.Text{Size: 9, Top: 7}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(4, "Role", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Hours", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Cost", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, row := range view.Rows {
		m.AddRow(12,
			text.NewCol(4, row.Role, props.Text{Size: 9}),
			text.NewCol(4, row.Description, props.Text{Size: 8}),
			text.NewCol(1, hours(row.Hours), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, money(row.Rate), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(row.Cost()), props.Text{Size: 9, Align: align.Right}),
		)
	}

	b := view.Breakdown
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, money(b.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	if b.DiscountPercent > 0 {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, fmt.Sprintf("Discount (%s%%)", hours(b.DiscountPercent)), props.Text{Size: 9}),
			text.NewCol(2, "-"+money(b.DiscountAmount), props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "After discount", props.Text{Size: 9}),
			text.NewCol(2, money(b.SubtotalAfterDiscount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "GST (10%)", props.Text{Size: 9}),
		text.NewCol(2, money(b.GST), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, money(b.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
