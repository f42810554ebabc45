package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"resume-tailor/resume/model"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Letter page with 0.75in margins, in twips.
const (
	docxPageWidth  = 12240
	docxPageHeight = 15840
	docxMargin     = 1080
	docxTextWidth  = docxPageWidth - 2*docxMargin
)

// RenderDOCX builds a minimal OOXML word-processing package for the resume.
func RenderDOCX(resume model.GeneratedResume) ([]byte, error) {
	if err := requireName(resume); err != nil {
		return nil, err
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", renderDocumentXML(resume)},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, part := range parts {
		if err := writeZipFile(writer, part.name, []byte(part.content)); err != nil {
			return nil, fmt.Errorf("render docx %s: %w", part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return output.Bytes(), nil
}

type docxBody struct {
	b strings.Builder
}

func renderDocumentXML(resume model.GeneratedResume) string {
	body := &docxBody{}

	body.paragraph(paraProps{after: 40}, textRun(resume.PersonalInfo.Name, StyleMap["name"]))
	if title := resume.ProfessionalTitle; title != "" {
		body.paragraph(paraProps{after: 40}, textRun(title, StyleMap["title"]))
	}
	if contact := contactLine(resume.PersonalInfo); contact != "" {
		body.paragraph(paraProps{after: 120}, textRun(contact, StyleMap["contact"]))
	}

	if summary := resume.ProfessionalSummary; summary != "" {
		body.heading(SectionSummary)
		body.paragraph(paraProps{after: 80}, textRun(summary, StyleMap["body"]))
	}

	if len(resume.WorkExperiences) > 0 {
		body.heading(SectionExperience)
		for i, exp := range resume.WorkExperiences {
			before := 0
			if i > 0 {
				before = 120
			}
			body.dated(before, exp.Position, DateRange(exp.StartDate, exp.EndDate, exp.IsCurrent))
			body.paragraph(paraProps{after: 40}, textRun(exp.Company, StyleMap["meta"]))
			for _, achievement := range nonBlank(exp.Achievements) {
				body.bullet(achievement)
			}
		}
	}

	if skills := nonBlank(resume.TechnicalSkills); len(skills) > 0 {
		body.heading(SectionSkills)
		for _, skill := range skills {
			body.bullet(skill)
		}
	}

	if len(resume.Education) > 0 {
		body.heading(SectionEducation)
		for i, edu := range resume.Education {
			before := 0
			if i > 0 {
				before = 80
			}
			body.dated(before, edu.Degree, DateRange(edu.StartDate, edu.EndDate, false))
			body.paragraph(paraProps{after: 40}, textRun(edu.University, StyleMap["meta"]))
		}
	}

	var doc strings.Builder
	doc.WriteString(xml.Header)
	doc.WriteString(`<w:document xmlns:w="` + wmlNamespace + `" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)
	doc.WriteString(body.b.String())
	fmt.Fprintf(&doc, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`,
		docxPageWidth, docxPageHeight, docxMargin, docxMargin, docxMargin, docxMargin)
	doc.WriteString(`</w:body></w:document>`)
	return doc.String()
}

type paraProps struct {
	border     bool
	rightTab   bool
	before     int
	after      int
	indentLeft int
	hanging    int
}

// xml renders pPr children in schema order: pBdr, tabs, spacing, ind.
func (p paraProps) xml() string {
	var b strings.Builder
	b.WriteString("<w:pPr>")
	if p.border {
		b.WriteString(`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="` + HeadingColor + `"/></w:pBdr>`)
	}
	if p.rightTab {
		b.WriteString(`<w:tabs><w:tab w:val="right" w:pos="` + strconv.Itoa(docxTextWidth) + `"/></w:tabs>`)
	}
	fmt.Fprintf(&b, `<w:spacing w:before="%d" w:after="%d"/>`, p.before, p.after)
	if p.indentLeft > 0 {
		fmt.Fprintf(&b, `<w:ind w:left="%d" w:hanging="%d"/>`, p.indentLeft, p.hanging)
	}
	b.WriteString("</w:pPr>")
	return b.String()
}

func (d *docxBody) paragraph(props paraProps, runs ...string) {
	d.b.WriteString("<w:p>")
	d.b.WriteString(props.xml())
	for _, r := range runs {
		d.b.WriteString(r)
	}
	d.b.WriteString("</w:p>")
}

func (d *docxBody) heading(title string) {
	d.paragraph(paraProps{border: true, before: 200, after: 80}, textRun(title, StyleMap["sectionHeading"]))
}

// dated writes a bold label with the date range pushed to the right margin by a tab stop.
func (d *docxBody) dated(before int, label, dates string) {
	runs := []string{textRun(label, StyleMap["roleLine"])}
	if dates != "" {
		runs = append(runs, tabRun(dates, StyleMap["meta"]))
	}
	d.paragraph(paraProps{rightTab: true, before: before}, runs...)
}

func (d *docxBody) bullet(text string) {
	d.paragraph(paraProps{after: 20, indentLeft: 360, hanging: 216}, textRun("•\t"+text, StyleMap["body"]))
}

func textRun(text string, style RunStyle) string {
	return "<w:r>" + runProps(style) + `<w:t xml:space="preserve">` + escapeXML(text) + "</w:t></w:r>"
}

func tabRun(text string, style RunStyle) string {
	return "<w:r>" + runProps(style) + `<w:tab/><w:t xml:space="preserve">` + escapeXML(text) + "</w:t></w:r>"
}

// runProps renders rPr children in schema order: b, i, color, sz.
func runProps(style RunStyle) string {
	var b strings.Builder
	b.WriteString("<w:rPr>")
	if style.Bold {
		b.WriteString("<w:b/>")
	}
	if style.Italic {
		b.WriteString("<w:i/>")
	}
	if style.Color != "" {
		b.WriteString(`<w:color w:val="` + style.Color + `"/>`)
	}
	if style.Size > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, style.Size)
	}
	b.WriteString("</w:rPr>")
	return b.String()
}

// escapeXML escapes character data. A literal tab inside a bullet is kept as a tab element.
func escapeXML(text string) string {
	pieces := strings.Split(text, "\t")
	for i, piece := range pieces {
		var buf bytes.Buffer
		_ = xml.EscapeText(&buf, []byte(piece))
		pieces[i] = buf.String()
	}
	return strings.Join(pieces, `</w:t><w:tab/><w:t xml:space="preserve">`)
}

func writeZipFile(writer *zip.Writer, name string, content []byte) error {
	dst, err := writer.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: renderedAt().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/></Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="21"/></w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="264" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults><w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style></w:styles>`
