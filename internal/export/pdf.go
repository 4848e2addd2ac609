package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Layout is the fixed page geometry of exported plans, in points.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	WrapWidth  float64
	LineHeight float64
	FontSize   float64
	TitleSize  float64
}

// DefaultLayout is US Letter with 50pt margins and a 500pt text column.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  612,
		PageHeight: 792,
		Margin:     50,
		WrapWidth:  500,
		LineHeight: 14,
		FontSize:   11,
		TitleSize:  16,
	}
}

// PDFResult describes a written PDF.
type PDFResult struct {
	Path  string
	Pages int
}

// PDFWriter renders plan text into paginated PDF documents.
type PDFWriter struct {
	layout Layout
}

// NewPDFWriter creates a PDFWriter with the given layout.
func NewPDFWriter(layout Layout) *PDFWriter {
	return &PDFWriter{layout: layout}
}

// Render writes a PDF with title on the first page followed by text wrapped
// to the layout's width. It returns the number of pages written.
func (p *PDFWriter) Render(w io.Writer, title, text string) (int, error) {
	l := p.layout
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	doc.SetMargins(l.Margin, l.Margin, l.Margin)
	doc.SetAutoPageBreak(false, l.Margin)
	doc.SetTitle(title, true)
	doc.SetCreator("planify", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", l.TitleSize)
	y := l.Margin + l.TitleSize
	doc.Text(l.Margin, y, tr(title))
	y += l.LineHeight

	doc.SetFont("Helvetica", "", l.FontSize)
	bottom := l.PageHeight - l.Margin
	for _, line := range p.wrap(doc, tr, text) {
		if y+l.LineHeight > bottom {
			doc.AddPage()
			y = l.Margin
		}
		y += l.LineHeight
		if line != "" {
			doc.Text(l.Margin, y, line)
		}
	}

	pages := doc.PageCount()
	if err := doc.Output(w); err != nil {
		return 0, fmt.Errorf("rendering pdf: %w", err)
	}
	return pages, nil
}

// wrap splits text into printable lines. Blank source lines are kept so
// paragraph spacing survives the export.
func (p *PDFWriter) wrap(doc *fpdf.Fpdf, tr func(string) string, text string) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimRight(para, " \t")
		if para == "" {
			out = append(out, "")
			continue
		}
		out = append(out, doc.SplitText(tr(para), p.layout.WrapWidth)...)
	}
	return out
}

// WriteFile renders the plan into dir, naming the file after subject.
func (p *PDFWriter) WriteFile(dir, subject, text string) (*PDFResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoPlan
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, Filename(subject))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating pdf file: %w", err)
	}

	pages, renderErr := p.Render(f, Title(subject), text)
	closeErr := f.Close()
	if renderErr != nil {
		os.Remove(path)
		return nil, renderErr
	}
	if closeErr != nil {
		return nil, fmt.Errorf("closing pdf file: %w", closeErr)
	}
	return &PDFResult{Path: path, Pages: pages}, nil
}
