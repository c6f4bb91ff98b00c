package service

import (
	"fmt"
	"io"

	"github.com/JaydevKalariyaa/proxima-sales/pkg/calc"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportService writes a sale detail to a spreadsheet, grouped the same way
// the detail screen renders it: category sections with room sub-sections.
type ExportService struct {
	logger *zap.Logger
}

// NewExportService creates an export service.
func NewExportService(logger *zap.Logger) *ExportService {
	return &ExportService{logger: logger}
}

const exportSheet = "Sale"

// WriteXLSX renders the view to w as an xlsx workbook. Demo views are
// refused; placeholder data must never leave the screen.
func (s *ExportService) WriteXLSX(view *SaleDetailView, w io.Writer) error {
	if view.Demo {
		return fmt.Errorf("refusing to export placeholder data")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	row := 1
	set := func(col string, v any) {
		cell := fmt.Sprintf("%s%d", col, row)
		// SetCellValue only fails on an invalid cell reference
		_ = f.SetCellValue(exportSheet, cell, v)
	}

	detail := view.Detail
	set("A", "Client")
	set("B", detail.Client.Name)
	row++
	if detail.Client.Phone != "" {
		set("A", "Phone")
		set("B", detail.Client.Phone)
		row++
	}
	if detail.Client.Address != "" {
		set("A", "Address")
		set("B", detail.Client.Address)
		row++
	}
	if detail.Client.ArcName != "" {
		set("A", "Architect/Mistry")
		set("B", detail.Client.ArcName)
		row++
	}
	set("A", "Status")
	set("B", detail.Status.String())
	row++
	set("A", "Date")
	set("B", detail.CreatedAt.Format("02 Jan 2006"))
	row += 2

	for _, group := range view.Groups {
		set("A", group.Category.String())
		row++
		for _, rg := range group.Rooms {
			set("A", rg.Room)
			row++

			set("A", "Product")
			set("B", "Code")
			set("C", "Size/Finish")
			set("D", "MRP")
			set("E", "Discount")
			set("F", "Price/Piece")
			set("G", "Qty")
			set("H", "Total")
			row++

			for _, it := range rg.Items {
				set("A", it.ProductName)
				set("B", it.ProductCode)
				set("C", it.SizeFinish)
				set("D", it.MRP)
				set("E", formatDiscount(it.DiscountType.String(), it.DiscountValue))
				set("F", it.PricePerPiece)
				set("G", it.Quantity)
				set("H", it.TotalAmount)
				row++
			}
		}
		row++
	}

	set("G", "Grand Total")
	set("H", detail.TotalAmount)

	if _, err := f.WriteTo(w); err != nil {
		return err
	}

	s.logger.Info("sale exported",
		zap.String("sale_id", detail.ID),
		zap.String("client", detail.Client.Name),
		zap.Int("items", len(detail.Items)),
	)
	return nil
}

func formatDiscount(discountType string, value float64) string {
	if value == 0 {
		return "-"
	}
	if discountType == calc.DiscountPercent {
		return fmt.Sprintf("%g%%", value)
	}
	return calc.FormatCurrency(value)
}
