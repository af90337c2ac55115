package util

import (
	"bytes"
	"fmt"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/jung-kurt/gofpdf"
)

// RenderPrescriptionPDF lays a prescription out on a single A4 page.
func RenderPrescriptionPDF(p *model.Prescription, clinic string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(clinic), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Prescription #%d  |  Case %s", p.ID, p.CaseNumber)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Patient", "1", 1, "C", false, 0, "")
	addPDFDetail(pdf, tr, "Name", p.PatientName)
	addPDFDetail(pdf, tr, "Age", p.Age)
	addPDFDetail(pdf, tr, "Gender", p.Gender)
	addPDFDetail(pdf, tr, "Blood group", p.BloodGroup)
	addPDFDetail(pdf, tr, "Doctor", p.DoctorName)
	addPDFDetail(pdf, tr, "Date", p.Date)
	addPDFDetail(pdf, tr, "Diagnosis", p.Disease)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(140, 8, "Medicine", "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 8, "Quantity", "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if len(p.Medicines) == 0 {
		pdf.CellFormat(0, 8, "No medicines prescribed", "1", 1, "C", false, 0, "")
	}
	for _, m := range p.Medicines {
		pdf.CellFormat(140, 8, tr(m.Name), "1", 0, "", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("%d", m.Quantity), "1", 1, "C", false, 0, "")
	}

	if p.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Notes", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(p.Notes), "", "L", false)
	}

	pdf.SetY(pdf.GetY() + 12)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Issued %s. This is a computer generated prescription.", p.CreatedAt.Format("2006-01-02 15:04"))), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPDFDetail(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 8, label, "1", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, tr(value), "1", 1, "", false, 0, "")
}
