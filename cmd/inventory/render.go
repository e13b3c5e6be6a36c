package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/shashiranjanraj/inventory/app/models"
)

var (
	accent = lipgloss.Color("#D97706") // amber
	dim    = lipgloss.Color("#6B7280") // muted gray
	danger = lipgloss.Color("#EF4444") // red

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	qtyStyle    = cellStyle.Align(lipgloss.Right)
	lowQtyStyle = qtyStyle.Foreground(danger)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
)

const colQuantity = 3

// renderProducts draws the product list as a bordered table. Quantities of
// zero or less are highlighted.
func renderProducts(products []models.Product) string {
	if len(products) == 0 {
		return dimStyle.Render("No products yet.")
	}

	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = productRow(p)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		Headers("ID", "NAME", "BARCODE", "QTY", "SUPPLIER").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == colQuantity && row >= 0 && row < len(products) && products[row].Quantity <= 0:
				return lowQtyStyle
			case col == colQuantity:
				return qtyStyle
			default:
				return cellStyle
			}
		})

	total := 0
	for _, p := range products {
		total += p.Quantity
	}
	return t.String() + "\n" + dimStyle.Render(fmt.Sprintf("%d products, %d items", len(products), total))
}

// renderPlain is the tab-separated form, one product per line.
func renderPlain(products []models.Product) string {
	var b strings.Builder
	for _, p := range products {
		b.WriteString(strings.Join(productRow(p), "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

func productRow(p models.Product) []string {
	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		p.Name,
		p.Barcode,
		strconv.Itoa(p.Quantity),
		p.SupplierName(),
	}
}
