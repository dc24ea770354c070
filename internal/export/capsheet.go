// Package export renders a team dashboard as a downloadable cap sheet.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"hockeycap/internal/domain"
	"hockeycap/internal/service"
)

var printer = message.NewPrinter(language.English)

// Money formats whole dollars as "$9,500,000" or "-$1,250,000".
func Money(amount int64) string {
	if amount < 0 {
		return printer.Sprintf("-$%d", -amount)
	}
	return printer.Sprintf("$%d", amount)
}

type section struct {
	title     string
	contracts []domain.Contract
}

func sections(d *service.Dashboard) []section {
	return []section{
		{"Forwards", d.Forwards},
		{"Defense", d.Defense},
		{"Goaltenders", d.Goalies},
	}
}

type summaryLine struct {
	label string
	value string
}

func summary(d *service.Dashboard) []summaryLine {
	return []summaryLine{
		{"Team", d.Name},
		{"Season", d.Season},
		{"Cap Ceiling", Money(d.Ceiling)},
		{"Cap Floor", Money(d.Floor)},
		{"Committed", Money(d.TotalCommitted)},
		{"Cap Space", Money(d.CapSpace)},
		{"LTIR Used", Money(d.LTIRUsed)},
		{"Contracts", fmt.Sprintf("%d / %d", d.ContractCount, d.MaxContracts)},
	}
}

var columns = []string{"Player", "Pos", "Age", "Cap Hit", "Term", "Expiry", "Clause"}

func row(c domain.Contract) []string {
	return []string{
		c.Name,
		string(c.Position),
		fmt.Sprint(c.Age),
		Money(c.CapHit),
		fmt.Sprintf("%d/%d", c.ContractYear, c.ContractLength),
		string(c.ExpiryStatus),
		string(c.Clause),
	}
}

// BuildCapSheetPDF renders the summary block and the roster by position.
func BuildCapSheetPDF(d *service.Dashboard) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.Name+" Cap Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, d.Name+" Cap Sheet")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, line := range summary(d) {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", line.label, line.value))
		pdf.Ln(5)
	}
	if d.OverCeiling {
		pdf.SetTextColor(200, 0, 0)
		pdf.Cell(0, 6, "Over the cap ceiling")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(5)
	}

	widths := []float64{55, 12, 12, 32, 18, 18, 18}
	aligns := []string{"L", "C", "C", "R", "C", "C", "C"}
	for _, sec := range sections(d) {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, sec.title)
		pdf.Ln(7)

		pdf.SetFont("Arial", "B", 9)
		for i, col := range columns {
			pdf.CellFormat(widths[i], 6, col, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, c := range sec.contracts {
			for i, cell := range row(c) {
				pdf.CellFormat(widths[i], 6, cell, "1", 0, aligns[i], false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildCapSheetXLSX writes a summary sheet and a roster sheet. Money cells
// hold raw dollar amounts with a thousands-separator number format.
func BuildCapSheetXLSX(d *service.Dashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	rosterSheet := "Roster"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(rosterSheet); err != nil {
		return nil, err
	}

	moneyFmt := `"$"#,##0;-"$"#,##0`
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", d.Name+" Cap Sheet")
	_ = f.SetCellStyle(summarySheet, "A1", "A1", bold)
	values := []any{d.Name, d.Season, d.Ceiling, d.Floor, d.TotalCommitted, d.CapSpace, d.LTIRUsed, fmt.Sprintf("%d / %d", d.ContractCount, d.MaxContracts)}
	for i, line := range summary(d) {
		r := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), line.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), values[i])
		if _, isMoney := values[i].(int64); isMoney {
			_ = f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", r), fmt.Sprintf("B%d", r), money)
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 16)
	_ = f.SetColWidth(summarySheet, "B", "B", 24)

	r := 1
	for _, sec := range sections(d) {
		_ = f.SetCellValue(rosterSheet, fmt.Sprintf("A%d", r), sec.title)
		_ = f.SetCellStyle(rosterSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("A%d", r), bold)
		r++
		if err := f.SetSheetRow(rosterSheet, fmt.Sprintf("A%d", r), &columns); err != nil {
			return nil, err
		}
		r++
		for _, c := range sec.contracts {
			cells := []any{c.Name, string(c.Position), c.Age, c.CapHit, fmt.Sprintf("%d/%d", c.ContractYear, c.ContractLength), string(c.ExpiryStatus), string(c.Clause)}
			if err := f.SetSheetRow(rosterSheet, fmt.Sprintf("A%d", r), &cells); err != nil {
				return nil, err
			}
			_ = f.SetCellStyle(rosterSheet, fmt.Sprintf("D%d", r), fmt.Sprintf("D%d", r), money)
			r++
		}
		r++
	}
	_ = f.SetColWidth(rosterSheet, "A", "A", 26)
	_ = f.SetColWidth(rosterSheet, "D", "D", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
