package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Renderer produces the exported job-description PDF from a loose field
// mapping. Any recognized key may be absent; missing data is skipped, never
// an error. Only the underlying document I/O can fail.
type Renderer interface {
	Render(fields map[string]any) ([]byte, error)
}

type pdfRenderer struct{}

func NewRenderer() Renderer {
	return &pdfRenderer{}
}

type renderLine struct {
	Text   string
	Bullet bool
}

// renderSection is one block of the document: the title, a heading-less
// company block, a key-value table, or a headed run of paragraphs.
type renderSection struct {
	Title   bool
	Heading string
	Lines   []renderLine
	Rows    [][2]string
}

// buildSections resolves the rendering policy: which sections appear, in
// which order, and how multi-line fields split into bullets. Kept separate
// from drawing so the policy is testable without parsing PDF output.
func buildSections(fields map[string]any) []renderSection {
	var sections []renderSection

	title := stringField(fields, "job_title")
	if title == "" {
		title = "Job Description"
	}
	sections = append(sections, renderSection{Title: true, Heading: title})

	var company []renderLine
	if v := stringField(fields, "company_name"); v != "" {
		company = append(company, renderLine{Text: "Company: " + v})
	}
	location := stringField(fields, "company_location")
	if location == "" {
		location = stringField(fields, "job_location")
	}
	if location != "" {
		company = append(company, renderLine{Text: "Location: " + location})
	}
	if len(company) > 0 {
		sections = append(sections, renderSection{Lines: company})
	}

	var details [][2]string
	for _, kv := range [][2]string{
		{"job_type", "Job Type"},
		{"salary", "Salary"},
		{"job_category", "Category"},
		{"application_deadline", "Application Deadline"},
	} {
		if v := stringField(fields, kv[0]); v != "" {
			details = append(details, [2]string{kv[1], v})
		}
	}
	if len(details) > 0 {
		sections = append(sections, renderSection{Rows: details})
	}

	sections = appendTextSection(sections, "Job Description", stringField(fields, "job_description"))
	sections = appendTextSection(sections, "Responsibilities", stringField(fields, "job_responsibilities"))
	sections = appendTextSection(sections, "Skills", stringField(fields, "job_skills"))

	education := stringField(fields, "job_education")
	experience := stringField(fields, "job_experience")
	if education != "" || experience != "" {
		var lines []renderLine
		if education != "" {
			lines = append(lines, renderLine{Text: "Education: " + education})
		}
		if experience != "" {
			lines = append(lines, renderLine{Text: "Experience: " + experience})
		}
		sections = append(sections, renderSection{Heading: "Education & Experience", Lines: lines})
	}

	benefits := stringField(fields, "job_benefits")
	if benefits == "" {
		benefits = stringField(fields, "company_benefits")
	}
	sections = appendTextSection(sections, "Benefits", benefits)
	sections = appendTextSection(sections, "About the Company", stringField(fields, "company_description"))

	var companyDetails [][2]string
	for _, kv := range [][2]string{
		{"company_industry", "Industry"},
		{"company_size", "Company Size"},
		{"company_website", "Website"},
	} {
		if v := stringField(fields, kv[0]); v != "" {
			companyDetails = append(companyDetails, [2]string{kv[1], v})
		}
	}
	if len(companyDetails) > 0 {
		sections = append(sections, renderSection{Rows: companyDetails})
	}

	return sections
}

// appendTextSection adds a headed section for a long-form field. A value
// containing line breaks becomes one bullet per non-blank line, in input
// order; otherwise it is a single verbatim paragraph.
func appendTextSection(sections []renderSection, heading, value string) []renderSection {
	if value == "" {
		return sections
	}

	var lines []renderLine
	if strings.Contains(value, "\n") {
		for _, item := range strings.Split(value, "\n") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				lines = append(lines, renderLine{Text: trimmed, Bullet: true})
			}
		}
	} else {
		lines = []renderLine{{Text: value}}
	}

	if len(lines) == 0 {
		return sections
	}

	return append(sections, renderSection{Heading: heading, Lines: lines})
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Render implements Renderer.
func (r *pdfRenderer) Render(fields map[string]any) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(25, 25, 25)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, section := range buildSections(fields) {
		switch {
		case section.Title:
			doc.SetFont("Helvetica", "B", 18)
			doc.MultiCell(0, 9, tr(section.Heading), "", "L", false)
			doc.Ln(4)
		case len(section.Rows) > 0:
			drawTable(doc, tr, section.Rows)
			doc.Ln(4)
		default:
			if section.Heading != "" {
				doc.SetFont("Helvetica", "B", 13)
				doc.SetTextColor(0, 0, 139)
				doc.MultiCell(0, 7, tr(section.Heading), "", "L", false)
				doc.SetTextColor(0, 0, 0)
				doc.Ln(1)
			}
			doc.SetFont("Helvetica", "", 11)
			for _, ln := range section.Lines {
				text := ln.Text
				if ln.Bullet {
					text = "• " + text
				}
				doc.MultiCell(0, 6, tr(text), "", "L", false)
			}
			doc.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func drawTable(doc *fpdf.Fpdf, tr func(string) string, rows [][2]string) {
	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		doc.SetFillColor(211, 211, 211)
		doc.CellFormat(45, 8, tr(row[0]), "1", 0, "L", true, 0, "")
		doc.CellFormat(115, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}
}
