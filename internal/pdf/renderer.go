// Package pdf turns a starter record into the documents an operator
// downloads: the single onboarding sheet and the landscape roster report.
// Both are pure functions of their input plus the embedded logo; the
// renderer holds no mutable state and is safe for concurrent use.
package pdf

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/prlsite/starters/internal/models"
	"github.com/prlsite/starters/internal/normalize"
)

//go:embed assets/logo.png
var logoPNG []byte

// ErrRenderUnavailable means the document engine or its fixed assets
// cannot be used. It is deterministic for a given build, so callers
// surface it instead of retrying.
var ErrRenderUnavailable = errors.New("document renderer unavailable")

var headerColor = &props.Color{Red: 0, Green: 95, Blue: 140}

// Renderer produces PDF documents from starter records.
type Renderer struct {
	logo []byte
	err  error
}

// Unavailable returns a renderer whose every call reports the given
// startup failure. It lets the rest of the service run: stored data is
// unaffected, only document downloads fail.
func Unavailable(err error) *Renderer {
	if err == nil {
		err = ErrRenderUnavailable
	}
	return &Renderer{err: err}
}

// NewRenderer validates the embedded assets once so a broken build fails
// at startup, not on the first download.
func NewRenderer() (*Renderer, error) {
	return newRendererWithLogo(logoPNG)
}

// Single renders one starter onto the fixed onboarding template.
func (r *Renderer) Single(rec models.Starter) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(18,
		image.NewFromBytesCol(3, r.logo, extension.Png, props.Rect{Center: false, Percent: 90}),
		text.NewCol(9, "New Starter Details", props.Text{
			Size: 16, Style: fontstyle.Bold, Align: align.Right, Top: 5, Color: headerColor,
		}),
	)
	m.AddRow(6, text.NewCol(12, "Generated "+normalize.LongDate(rec.GeneratedDate), props.Text{
		Size: 8, Align: align.Right,
	}))
	m.AddRows(line.NewRow(4))

	r.section(m, "Supplier Information")
	r.field(m, "Supplier Name", rec.SupplierName)
	r.field(m, "Supplier Contact", rec.SupplierContact)
	r.multiline(m, "Supplier Address", rec.SupplierAddress)

	r.section(m, "Client Information")
	r.field(m, "Client Name", rec.ClientName)
	r.field(m, "Client Contact", rec.ClientContact)
	r.multiline(m, "Client Address", rec.ClientAddress)

	r.section(m, "Candidate Information")
	r.field(m, "Employee Name", rec.EmployeeName)
	r.multiline(m, "Address", rec.Address)
	r.field(m, "NI Number", rec.NINumber)
	r.field(m, "Role / Position", rec.RolePosition)
	r.field(m, "Department", rec.Department)
	r.field(m, "Start Date", normalize.LongDate(rec.StartDate))
	r.field(m, "Office Location", rec.OfficeLocation)
	r.field(m, "Salary Details", rec.SalaryDetails)
	r.field(m, "Probation Length", rec.ProbationLength)

	r.section(m, "Emergency & Additional Information")
	r.multiline(m, "Emergency Contact", rec.EmergencyContact)
	r.multiline(m, "Additional Information", rec.AdditionalInfo)

	return r.generate(m)
}

// reportColumns is the roster column set: everything but the supplier
// block, id first, in schema order.
func reportColumns() []string {
	cols := []string{"id"}
	for _, c := range models.Columns {
		if models.SupplierColumns[c] {
			continue
		}
		cols = append(cols, c)
	}
	return cols
}

// TabularReport renders the candidate-facing roster: one header row of
// title-case column names and one body row per record, A4 landscape.
// Zero records still produce a valid, header-only document.
func (r *Renderer) TabularReport(recs []models.Starter) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	cols := reportColumns()
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithMaxGridSize(len(cols)).
		Build()
	m := maroto.New(cfg)

	m.AddRow(10, text.NewCol(len(cols), "All Starters", props.Text{
		Size: 12, Style: fontstyle.Bold, Color: headerColor,
	}))

	header := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		header = append(header, text.NewCol(1, normalize.TitleColumn(c), props.Text{
			Size: 6, Style: fontstyle.Bold, Color: headerColor,
		}))
	}
	m.AddRow(8, header...)
	m.AddRows(line.NewRow(2))
	m.AddRows(r.bodyRows(recs, cols)...)

	return r.generate(m)
}

// bodyRows builds one table row per record, in input order.
func (r *Renderer) bodyRows(recs []models.Starter, cols []string) []core.Row {
	rows := make([]core.Row, 0, len(recs))
	for _, rec := range recs {
		body := make([]core.Col, 0, len(cols))
		for _, c := range cols {
			body = append(body, text.NewCol(1, r.cell(rec, c), props.Text{Size: 6}))
		}
		rows = append(rows, row.New(10).Add(body...))
	}
	return rows
}

// cell flattens a stored value for a single table cell: dates long-form,
// multi-line text joined on one line.
func (r *Renderer) cell(rec models.Starter, colName string) string {
	switch colName {
	case "id":
		return fmt.Sprintf("%d", rec.ID)
	case "start_date", "generated_date":
		return normalize.LongDate(rec.Value(colName))
	default:
		return strings.Join(normalize.Lines(rec.Value(colName)), " ")
	}
}

func (r *Renderer) generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderUnavailable, err)
	}
	return doc.GetBytes(), nil
}

func (r *Renderer) section(m core.Maroto, title string) {
	m.AddRow(10, text.NewCol(12, title, props.Text{
		Size: 11, Style: fontstyle.Bold, Top: 3, Color: headerColor,
	}))
}

func (r *Renderer) field(m core.Maroto, label, value string) {
	m.AddRow(6,
		text.NewCol(4, label, props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(8, value, props.Text{Size: 9}),
	)
}

// multiline lays out one row per normalized line so addresses and notes
// keep their line breaks instead of collapsing.
func (r *Renderer) multiline(m core.Maroto, label, value string) {
	lines := normalize.Lines(value)
	rows := make([]core.Row, 0, len(lines))
	for i, ln := range lines {
		lbl := ""
		if i == 0 {
			lbl = label
		}
		rows = append(rows, row.New(5).Add(
			text.NewCol(4, lbl, props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(8, ln, props.Text{Size: 9}),
		))
	}
	m.AddRows(rows...)
}

func newRendererWithLogo(logo []byte) (*Renderer, error) {
	if len(logo) == 0 {
		return nil, fmt.Errorf("%w: logo asset missing", ErrRenderUnavailable)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(logo)); err != nil {
		return nil, fmt.Errorf("%w: logo asset invalid: %v", ErrRenderUnavailable, err)
	}
	return &Renderer{logo: logo}, nil
}
