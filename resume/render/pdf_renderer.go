package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"resume-tailor/resume/model"
)

// pdfFamily is the embedded Go font family. It is a UTF-8 TrueType font, so names and achievements
// outside Latin-1 survive into the document text.
const pdfFamily = "Go"

const (
	pdfMargin       = 16.0
	pdfLineHeight   = 5.2
	pdfBulletIndent = 3.0
	pdfBulletWidth  = 4.0
)

type pdfWriter struct {
	doc   *fpdf.Fpdf
	left  float64
	width float64
}

// RenderPDF lays out the resume on Letter pages using the embedded Go fonts.
func RenderPDF(resume model.GeneratedResume) ([]byte, error) {
	if err := requireName(resume); err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetTitle(resume.PersonalInfo.Name+" Resume", true)
	doc.SetCreator("resume-tailor", true)
	doc.SetCreationDate(renderedAt())
	registerFonts(doc)
	doc.AddPage()

	pageWidth, _ := doc.GetPageSize()
	w := &pdfWriter{
		doc:   doc,
		left:  pdfMargin,
		width: pageWidth - 2*pdfMargin,
	}

	w.header(resume)

	if summary := resume.ProfessionalSummary; summary != "" {
		w.heading(SectionSummary)
		w.setStyle(StyleMap["body"])
		w.doc.MultiCell(w.width, pdfLineHeight, summary, "", "L", false)
	}

	if len(resume.WorkExperiences) > 0 {
		w.heading(SectionExperience)
		for i, exp := range resume.WorkExperiences {
			if i > 0 {
				w.doc.Ln(2)
			}
			w.twoColumn(exp.Position, DateRange(exp.StartDate, exp.EndDate, exp.IsCurrent))
			w.setStyle(StyleMap["meta"])
			w.doc.CellFormat(w.width, pdfLineHeight, exp.Company, "", 1, "L", false, 0, "")
			for _, achievement := range nonBlank(exp.Achievements) {
				w.bullet(achievement)
			}
		}
	}

	if skills := nonBlank(resume.TechnicalSkills); len(skills) > 0 {
		w.heading(SectionSkills)
		for _, skill := range skills {
			w.bullet(skill)
		}
	}

	if len(resume.Education) > 0 {
		w.heading(SectionEducation)
		for i, edu := range resume.Education {
			if i > 0 {
				w.doc.Ln(1.5)
			}
			w.twoColumn(edu.Degree, DateRange(edu.StartDate, edu.EndDate, false))
			w.setStyle(StyleMap["meta"])
			w.doc.CellFormat(w.width, pdfLineHeight, edu.University, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func registerFonts(doc *fpdf.Fpdf) {
	doc.AddUTF8FontFromBytes(pdfFamily, "", goregular.TTF)
	doc.AddUTF8FontFromBytes(pdfFamily, "B", gobold.TTF)
	doc.AddUTF8FontFromBytes(pdfFamily, "I", goitalic.TTF)
	doc.AddUTF8FontFromBytes(pdfFamily, "BI", gobolditalic.TTF)
}

func (w *pdfWriter) header(resume model.GeneratedResume) {
	w.setStyle(StyleMap["name"])
	w.doc.CellFormat(w.width, 9, resume.PersonalInfo.Name, "", 1, "L", false, 0, "")
	if title := resume.ProfessionalTitle; title != "" {
		w.setStyle(StyleMap["title"])
		w.doc.CellFormat(w.width, 6.5, title, "", 1, "L", false, 0, "")
	}
	if contact := contactLine(resume.PersonalInfo); contact != "" {
		w.setStyle(StyleMap["contact"])
		w.doc.CellFormat(w.width, pdfLineHeight, contact, "", 1, "L", false, 0, "")
	}
}

func (w *pdfWriter) heading(title string) {
	w.doc.Ln(3)
	style := StyleMap["sectionHeading"]
	w.setStyle(style)
	w.doc.CellFormat(w.width, 7, title, "", 1, "L", false, 0, "")
	r, g, b := hexToRGB(style.Color)
	w.doc.SetDrawColor(r, g, b)
	w.doc.SetLineWidth(0.3)
	y := w.doc.GetY()
	w.doc.Line(w.left, y, w.left+w.width, y)
	w.doc.Ln(1.5)
}

// twoColumn writes a bold left label with a right-aligned date range on the same line.
func (w *pdfWriter) twoColumn(label, dates string) {
	meta := StyleMap["meta"]
	w.setStyle(meta)
	dateWidth := 0.0
	if dates != "" {
		dateWidth = w.doc.GetStringWidth(dates) + 2
		if dateWidth > w.width/2 {
			dateWidth = w.width / 2
		}
	}

	w.setStyle(StyleMap["roleLine"])
	if dates == "" {
		w.doc.CellFormat(w.width, pdfLineHeight+0.6, label, "", 1, "L", false, 0, "")
		return
	}
	w.doc.CellFormat(w.width-dateWidth, pdfLineHeight+0.6, label, "", 0, "L", false, 0, "")
	w.setStyle(meta)
	w.doc.CellFormat(dateWidth, pdfLineHeight+0.6, dates, "", 1, "R", false, 0, "")
}

func (w *pdfWriter) bullet(text string) {
	w.setStyle(StyleMap["body"])
	w.doc.SetX(w.left + pdfBulletIndent)
	w.doc.CellFormat(pdfBulletWidth, pdfLineHeight, "•", "", 0, "L", false, 0, "")
	w.doc.MultiCell(w.width-pdfBulletIndent-pdfBulletWidth, pdfLineHeight, text, "", "L", false)
}

func (w *pdfWriter) setStyle(style RunStyle) {
	fontStyle := ""
	if style.Bold {
		fontStyle += "B"
	}
	if style.Italic {
		fontStyle += "I"
	}
	size := float64(style.Size) / 2
	if size <= 0 {
		size = float64(BodySize) / 2
	}
	w.doc.SetFont(pdfFamily, fontStyle, size)
	r, g, b := hexToRGB(style.Color)
	w.doc.SetTextColor(r, g, b)
}
