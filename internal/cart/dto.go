package cart

import "github.com/shopspring/decimal"

// LineDTO is the rendered cart line.
type LineDTO struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

// DTO is the cart view the presentation layer renders: lines in
// insertion order plus the derived totals.
type DTO struct {
	Lines      []LineDTO `json:"lines"`
	TotalItems int       `json:"total_items"`
	TotalPrice string    `json:"total_price"`
}

func newDTO(ledger *Ledger) DTO {
	lines := ledger.Lines()
	dto := DTO{
		Lines:      make([]LineDTO, 0, len(lines)),
		TotalItems: ledger.TotalItems(),
		TotalPrice: format(ledger.TotalPrice()),
	}
	for _, line := range lines {
		dto.Lines = append(dto.Lines, LineDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: format(line.UnitPrice),
			Image:     line.Image,
			Quantity:  line.Quantity,
			Subtotal:  format(line.Subtotal()),
		})
	}
	return dto
}

func format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
