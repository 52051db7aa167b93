package orders

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

var exportHeader = []any{
	"Code", "Customer", "Phone", "Shop", "Order status", "Payment status",
	"Payment type", "Total", "Paid", "Balance", "Delivery date", "Created",
}

// ExportXLSX writes the given orders as a single-sheet workbook.
func ExportXLSX(items []Order) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, o := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			o.UniqueCode,
			o.Customer.Name,
			o.Customer.Phone,
			o.Shop,
			o.OrderStatus,
			o.PaymentStatus,
			o.PaymentType,
			o.TotalPrice.InexactFloat64(),
			o.AmountPaid.InexactFloat64(),
			o.Balance.InexactFloat64(),
			o.DeliveryDate,
			o.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
