// Package csvexport writes the product list in the inventory export format:
// a fixed header, one newline-terminated row per product, and quoting only for
// fields that contain a comma, a double quote or a newline.
//
// Unlike encoding/csv, fields with a leading space or a carriage return are
// written unquoted.
package csvexport

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/inventory/app/models"
)

// Header is the first line of every export.
const Header = "Id,Name,Barcode,Quantity,Supplier"

// Escape quotes value when it contains ',', '"' or '\n', doubling inner
// quotes. Anything else is returned unchanged.
func Escape(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// Row renders one product without the trailing newline.
func Row(p models.Product) string {
	return strings.Join([]string{
		strconv.FormatUint(uint64(p.ID), 10),
		Escape(p.Name),
		Escape(p.Barcode),
		Escape(strconv.Itoa(p.Quantity)),
		Escape(p.SupplierName()),
	}, ",")
}

// Write streams the header and one row per product to w, in slice order.
func Write(w io.Writer, products []models.Product) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := bw.WriteString(Row(p) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Encode returns the full export as bytes.
func Encode(products []models.Product) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, products); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
