package shopping

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
)

const (
	DocumentFilename    = "shopping_list.pdf"
	DocumentContentType = "application/pdf"
)

// RenderConfig holds page geometry in points. Vertical positions are
// measured from the bottom edge of the page, like the cursor.
type RenderConfig struct {
	PageWidth  float64
	PageHeight float64
	LeftMargin float64

	// Title baseline sits at PageHeight - TitleOffset, on the first page only.
	TitleOffset float64
	// First ingredient line starts at PageHeight - FirstLineOffset.
	FirstLineOffset float64
	// Continuation pages restart at PageHeight - ContinuationOffset.
	ContinuationOffset float64

	LineHeight   float64
	BottomMargin float64
	FontSize     float64
}

// DefaultRenderConfig is A4 portrait.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PageWidth:          595.28,
		PageHeight:         841.89,
		LeftMargin:         50,
		TitleOffset:        50,
		FirstLineOffset:    100,
		ContinuationOffset: 50,
		LineHeight:         20,
		BottomMargin:       50,
		FontSize:           12,
	}
}

func (c RenderConfig) Validate() error {
	switch {
	case c.PageWidth <= 0 || c.PageHeight <= 0:
		return errors.New("page size must be positive")
	case c.LineHeight <= 0:
		return errors.New("line height must be positive")
	case c.FontSize <= 0:
		return errors.New("font size must be positive")
	case c.PageHeight-c.FirstLineOffset < c.BottomMargin:
		return errors.New("first line starts below the bottom margin")
	case c.PageHeight-c.ContinuationOffset < c.BottomMargin:
		return errors.New("continuation lines start below the bottom margin")
	}
	return nil
}

// LinesPerPage is how many ingredient lines a page takes before a new page
// is forced. A line is drawn before the cursor is checked, so the line that
// crosses the bottom margin still lands on the current page and the next
// page is started right after it.
func (c RenderConfig) LinesPerPage(first bool) int {
	start := c.PageHeight - c.ContinuationOffset
	if first {
		start = c.PageHeight - c.FirstLineOffset
	}
	return int(math.Floor((start - c.BottomMargin) / c.LineHeight))
}

func TitleFor(owner string) string {
	return "Shopping list for " + owner
}

type placedText struct {
	X, Y float64
	Text string
}

// layout splits the document into pages of positioned text. A line that
// crosses the bottom margin always starts a new page, even when it is the
// last one, so the final page may be blank.
func (c RenderConfig) layout(owner string, lines []AggregatedLine) [][]placedText {
	pages := [][]placedText{{
		{X: c.LeftMargin, Y: c.PageHeight - c.TitleOffset, Text: TitleFor(owner)},
	}}

	cursor := c.PageHeight - c.FirstLineOffset
	for _, line := range lines {
		last := len(pages) - 1
		pages[last] = append(pages[last], placedText{
			X:    c.LeftMargin,
			Y:    cursor,
			Text: FormatLine(line),
		})
		cursor -= c.LineHeight

		if cursor < c.BottomMargin {
			pages = append(pages, nil)
			cursor = c.PageHeight - c.ContinuationOffset
		}
	}

	return pages
}

// Document is a rendered shopping list ready to be sent as an attachment.
type Document struct {
	Content     []byte
	Filename    string
	ContentType string
	Pages       int
}

type Renderer struct {
	cfg   RenderConfig
	fonts *FontRegistry
}

func NewRenderer(cfg RenderConfig, fonts *FontRegistry) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if fonts == nil {
		return nil, ErrFontUnavailable
	}
	return &Renderer{cfg: cfg, fonts: fonts}, nil
}

func (r *Renderer) Config() RenderConfig {
	return r.cfg
}

// Render lays out the title and lines in the given order and serializes the
// result as PDF. An empty list still yields a single page with the title.
func (r *Renderer) Render(owner string, lines []AggregatedLine) (*Document, error) {
	pages := r.cfg.layout(owner, lines)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: r.cfg.PageWidth, Ht: r.cfg.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(TitleFor(owner), true)
	pdf.SetCreator("foodgram", true)

	if err := r.fonts.register(pdf); err != nil {
		return nil, err
	}

	for _, page := range pages {
		pdf.AddPage()
		pdf.SetFont(r.fonts.Family(), "", r.cfg.FontSize)
		for _, t := range page {
			// fpdf measures y from the top edge
			pdf.Text(t.X, r.cfg.PageHeight-t.Y, t.Text)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return &Document{
		Content:     buf.Bytes(),
		Filename:    DocumentFilename,
		ContentType: DocumentContentType,
		Pages:       pdf.PageCount(),
	}, nil
}
