package pdfexport

import (
	"strconv"

	"storefront/internal/render"
)

// Page geometry in points for portrait A4 with an upper-left origin.
const (
	pageWidth     = 595.0
	marginX       = 40.0
	contentWidth  = pageWidth - 2*marginX
	lineHeight    = 14.0
	tableRowH     = 18
	firstPageRows = 16
	otherPageRows = 34
)

var colWidths = []int{5, 29, 16, 6, 12, 10, 10, 12}

type font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
	Col  string `json:"col,omitempty"`
}

type text struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  font       `json:"font"`
	Align string     `json:"align,omitempty"`
	Width float64    `json:"width,omitempty"`
}

type tableHeader struct {
	Values  []string `json:"values"`
	Font    font     `json:"font"`
	BgCol   string   `json:"bgCol,omitempty"`
	Anchors []string `json:"colAnchors,omitempty"`
}

type table struct {
	Pos        [2]float64   `json:"pos"`
	Width      float64      `json:"width"`
	Rows       int          `json:"rows"`
	Cols       int          `json:"cols"`
	LineHeight int          `json:"lineHeight"`
	Font       font         `json:"font"`
	ColWidths  []int        `json:"colWidths"`
	ColAnchors []string     `json:"colAnchors,omitempty"`
	EvenCol    string       `json:"evenCol,omitempty"`
	Header     *tableHeader `json:"header,omitempty"`
	Values     [][]string   `json:"values"`
}

type content struct {
	Text  []text  `json:"text,omitempty"`
	Table []table `json:"table,omitempty"`
}

type page struct {
	Content content `json:"content"`
}

// descriptor is pdfcpu's JSON page description.
type descriptor struct {
	Paper  string          `json:"paper"`
	Origin string          `json:"origin"`
	Pages  map[string]page `json:"pages"`
}

var (
	regular = font{Name: "Helvetica", Size: 9}
	bold    = font{Name: "Helvetica-Bold", Size: 9}
	title   = font{Name: "Helvetica-Bold", Size: 18, Col: "#1F2937"}
	muted   = font{Name: "Helvetica", Size: 8, Col: "#6B7280"}
	anchors = []string{"Center", "Left", "Left", "Center", "Right", "Right", "Right", "Right"}
)

// buildDescriptor lays v out over as many pages as the line items need.
// Header and parties go on page one, totals after the last table.
func buildDescriptor(v *render.View, paper string) descriptor {
	if paper == "" {
		paper = "A4P"
	}
	d := descriptor{Paper: paper, Origin: "UpperLeft", Pages: map[string]page{}}

	chunks := paginate(v.Rows)
	for i, rows := range chunks {
		var c content
		y := 50.0
		if i == 0 {
			y = header(&c, v, y)
		}
		y = itemTable(&c, rows, y)
		if i == len(chunks)-1 {
			totals(&c, v, y+16)
		}
		footer(&c, i+1, len(chunks))
		d.Pages[strconv.Itoa(i+1)] = page{Content: c}
	}
	return d
}

func paginate(rows []render.Row) [][]render.Row {
	if len(rows) <= firstPageRows {
		return [][]render.Row{rows}
	}
	out := [][]render.Row{rows[:firstPageRows]}
	rest := rows[firstPageRows:]
	for len(rest) > otherPageRows {
		out = append(out, rest[:otherPageRows])
		rest = rest[otherPageRows:]
	}
	return append(out, rest)
}

func header(c *content, v *render.View, y float64) float64 {
	c.Text = append(c.Text,
		text{Value: v.Title, Pos: [2]float64{marginX, y}, Font: title},
		text{Value: "Invoice No: " + v.InvoiceNumber, Pos: [2]float64{pageWidth - marginX, y}, Font: bold, Align: "right"},
	)
	y += 2 * lineHeight
	meta := []string{"Order ID: " + v.OrderID}
	if v.OrderDate != "" {
		meta = append(meta, "Date: "+v.OrderDate)
	}
	if v.OrderStatus != "" {
		meta = append(meta, "Status: "+v.OrderStatus)
	}
	if v.PaymentStatus != "" {
		meta = append(meta, "Payment: "+v.PaymentStatus)
	}
	for _, m := range meta {
		c.Text = append(c.Text, text{Value: m, Pos: [2]float64{pageWidth - marginX, y}, Font: regular, Align: "right"})
		y += lineHeight
	}

	y += lineHeight
	cols := []struct {
		heading string
		lines   []string
	}{{"Sold By", v.Seller}, {"Billed To", v.Buyer}, {"Ship To", v.ShipTo}}
	colW := contentWidth / float64(len(cols))
	bottom := y
	for i, col := range cols {
		if len(col.lines) == 0 {
			continue
		}
		x := marginX + float64(i)*colW
		cy := y
		c.Text = append(c.Text, text{Value: col.heading, Pos: [2]float64{x, cy}, Font: bold})
		cy += lineHeight
		for _, l := range col.lines {
			c.Text = append(c.Text, text{Value: l, Pos: [2]float64{x, cy}, Font: regular, Width: colW - 8})
			cy += lineHeight
		}
		bottom = max(bottom, cy)
	}
	return bottom + lineHeight
}

func itemTable(c *content, rows []render.Row, y float64) float64 {
	values := make([][]string, 0, len(rows))
	for _, r := range rows {
		values = append(values, r.Cells())
	}
	c.Table = append(c.Table, table{
		Pos:        [2]float64{marginX, y},
		Width:      contentWidth,
		Rows:       len(values) + 1,
		Cols:       len(render.Columns),
		LineHeight: tableRowH,
		Font:       regular,
		ColWidths:  colWidths,
		ColAnchors: anchors,
		EvenCol:    "#F3F4F6",
		Header: &tableHeader{
			Values:  render.Columns,
			Font:    font{Name: "Helvetica-Bold", Size: 9, Col: "#FFFFFF"},
			BgCol:   "#4F46E5",
			Anchors: anchors,
		},
		Values: values,
	})
	return y + float64((len(values)+1)*tableRowH)
}

func totals(c *content, v *render.View, y float64) {
	labelX := pageWidth - marginX - 200
	for _, t := range v.Totals {
		f := regular
		if t.Grand {
			f = bold
		}
		c.Text = append(c.Text,
			text{Value: t.Label, Pos: [2]float64{labelX, y}, Font: f},
			text{Value: t.Value, Pos: [2]float64{pageWidth - marginX, y}, Font: f, Align: "right"},
		)
		y += lineHeight + 2
	}
	y += lineHeight
	c.Text = append(c.Text,
		text{Value: "Amount in words:", Pos: [2]float64{marginX, y}, Font: bold},
		text{Value: v.AmountInWords, Pos: [2]float64{marginX, y + lineHeight}, Font: regular, Width: contentWidth},
	)
}

func footer(c *content, n, total int) {
	c.Text = append(c.Text, text{
		Value: "This is a computer generated invoice. Page " + strconv.Itoa(n) + " of " + strconv.Itoa(total),
		Pos:   [2]float64{pageWidth / 2, 810},
		Font:  muted,
		Align: "center",
	})
}
