package utils

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fuelreq/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

// DefaultTemplatePath is resolved against the process working directory.
const DefaultTemplatePath = "templates/requisition_template.html"

// MetaRows assembles the two-column metadata table in its fixed order.
// Odometer, liters, total value and fuel type rows are appended only when
// present; zero counts as absent for the numeric three.
func MetaRows(p *models.RequisitionPDFData) [][2]string {
	rows := [][2]string{
		{"Data da Requisição:", p.Data},
		{"Posto destino:", p.Posto},
		{"Referente do veículo:", p.Referente},
		{"Placa:", p.Placa},
		{"Motorista:", p.Motorista},
		{"Supervisor:", p.Supervisor},
		{"Setor:", p.Setor},
		{"Subsetor:", p.Subsetor},
	}
	if p.KmAtual != nil && *p.KmAtual != 0 {
		rows = append(rows, [2]string{"Quilometragem atual (no momento):", strconv.FormatInt(*p.KmAtual, 10)})
	}
	if p.Litros != nil && *p.Litros != 0 {
		rows = append(rows, [2]string{"Quantidade abastecida (L):", strconv.FormatFloat(*p.Litros, 'f', -1, 64)})
	}
	if p.ValorTotal != nil && *p.ValorTotal != 0 {
		rows = append(rows, [2]string{"Valor total:", FormatBRL(*p.ValorTotal)})
	}
	if p.Combustivel != "" {
		rows = append(rows, [2]string{"Combustível:", p.Combustivel})
	}
	return rows
}

// JustificationHTML escapes the free-text justification and converts
// newlines to line breaks.
func JustificationHTML(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br/>"))
}

// BuildRequisitionHTML renders the full report document as HTML. The logo is
// embedded only when the file actually exists.
func BuildRequisitionHTML(p *models.RequisitionPDFData, templatePath string) ([]byte, error) {
	if templatePath == "" {
		templatePath = DefaultTemplatePath
	}
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("requisition template: %w", err)
	}

	if p.LogoPath != "" {
		if _, statErr := os.Stat(p.LogoPath); statErr != nil {
			p.LogoPath = ""
		}
	}
	if p.GeradoEm == "" {
		p.GeradoEm = time.Now().Format("02/01/2006 15:04")
	}
	p.MetaRows = MetaRows(p)

	var buf strings.Builder
	if err := tmpl.Execute(&buf, p); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// GenerateRequisitionPDF prints the rendered HTML to PDF with headless
// Chrome, A4 with half-inch margins. A missing browser binary is the
// "rendering dependency unavailable" failure and is labeled as such.
func GenerateRequisitionPDF(html []byte) ([]byte, error) {
	tmpHTML := filepath.Join(os.TempDir(), "requisicao_"+uuid.NewString()+".html")
	if err := os.WriteFile(tmpHTML, html, 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmpHTML),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				WithMarginTop(0.5).
				WithMarginBottom(0.5).
				WithMarginLeft(0.5).
				WithMarginRight(0.5).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("PDF engine unavailable or failed (headless Chrome/Chromium is required, install it and retry): %w", err)
	}
	return pdfBuf, nil
}

// RequisitionFilename follows the requisicao_<placa>_<yyyyMMddHHmmss>.pdf pattern.
func RequisitionFilename(placa string, now time.Time) string {
	return fmt.Sprintf("requisicao_%s_%s.pdf", placa, now.Format("20060102150405"))
}
