package export

import (
	"context"
	"fmt"
	"io"
	"strconv"

	sowdomain "github.com/smallbiznis/sowforge/internal/sow/domain"
)

// Exporter renders a validated document view into a downloadable artifact.
// Callers obtain the view from the SOW service, which refuses to hand out
// non-compliant tables, so exporters never re-validate.
type Exporter interface {
	PDF(ctx context.Context, view *sowdomain.ExportView) (io.Reader, error)
	CSV(ctx context.Context, view *sowdomain.ExportView) (io.Reader, error)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
