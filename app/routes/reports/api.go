package reports

import (
	"database/sql"
	"fmt"
	"time"

	"annur-center/app/database"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

func GetFinancialReportAPI(c *fiber.Ctx, db *sql.DB) error {
	report, err := database.GetFinancialReport(db, c.Query("from"), c.Query("to"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build financial report")
	}
	return c.JSON(fiber.Map{"success": true, "report": report})
}

// ExportFinancialReportAPI renders the financial report as a spreadsheet
// the treasurer can hand to the board.
func ExportFinancialReportAPI(c *fiber.Ctx, db *sql.DB) error {
	report, err := database.GetFinancialReport(db, c.Query("from"), c.Query("to"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build financial report")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Summary"
	f.SetSheetName("Sheet1", sheet)

	summary := [][]interface{}{
		{"Financial Report"},
		{"From", report.From},
		{"To", report.To},
		{},
		{"Total charged", report.TotalCharged},
		{"Total collected", report.TotalCollected},
		{"Total outstanding", report.TotalOutstanding},
		{"Credits on file", report.TotalCredits},
		{"Payments", report.PaymentCount},
		{},
		{"Method", "Count", "Total"},
	}
	for _, mt := range report.ByMethod {
		summary = append(summary, []interface{}{string(mt.Method), mt.Count, mt.Total})
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
		}
	}

	payments := "Payments"
	if _, err := f.NewSheet(payments); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}
	header := []interface{}{"Receipt", "Date", "Student", "Matricule", "Method", "Amount", "Sponsor"}
	if err := f.SetSheetRow(payments, "A1", &header); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}
	for i, p := range report.Payments {
		sponsor := ""
		if p.SponsorName != nil {
			sponsor = *p.SponsorName
		}
		row := []interface{}{
			p.ReceiptNumber,
			p.PaymentDate.Format("2006-01-02"),
			p.StudentName,
			p.StudentMatricule,
			string(p.PaymentMethod),
			p.Amount,
			sponsor,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(payments, cell, &row); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to write export")
	}

	filename := fmt.Sprintf("financial-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
