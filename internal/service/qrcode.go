package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// TableQRGenerator renders the QR code printed on a table, encoding the
// deep link the staff app opens to order against that table.
type TableQRGenerator struct {
	BaseURL string
}

// Generate returns a PNG QR code for the table.
func (g TableQRGenerator) Generate(restaurantID, tableID uuid.UUID) ([]byte, error) {
	link := fmt.Sprintf("%s/order?restaurant=%s&table=%s", g.BaseURL, restaurantID, tableID)
	return qrcode.Encode(link, qrcode.Medium, 256)
}
