package checkout

import (
	"encoding/json"

	"github.com/shopease/shopease-backend/internal/cart"
	pkgerrors "github.com/shopease/shopease-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Snapshot is the immutable copy of the cart handed from the shopping
// view to the checkout view. It does not observe later mutations of the
// live ledger.
type Snapshot struct {
	Lines []cart.Line
}

// NewSnapshot copies the given lines.
func NewSnapshot(lines []cart.Line) *Snapshot {
	copied := make([]cart.Line, len(lines))
	copy(copied, lines)
	return &Snapshot{Lines: copied}
}

// Total recomputes the snapshot total from its lines; the checkout view
// derives the same figure the shopping view showed.
func (s *Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Encode serializes the line sequence for the handoff slot.
func (s *Snapshot) Encode() (string, error) {
	payload, err := json.Marshal(s.Lines)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode checkout snapshot")
	}
	return string(payload), nil
}

// DecodeSnapshot parses a handoff slot payload.
func DecodeSnapshot(payload string) (*Snapshot, error) {
	var lines []cart.Line
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode checkout snapshot")
	}
	return &Snapshot{Lines: lines}, nil
}

// SnapshotDTO is the checkout screen's order summary view.
type SnapshotDTO struct {
	Lines      []cart.LineDTO `json:"lines"`
	TotalPrice string         `json:"total_price"`
}

// DTO renders the snapshot with formatted amounts.
func (s *Snapshot) DTO() SnapshotDTO {
	dto := SnapshotDTO{
		Lines:      make([]cart.LineDTO, 0, len(s.Lines)),
		TotalPrice: s.Total().StringFixed(2),
	}
	for _, line := range s.Lines {
		dto.Lines = append(dto.Lines, cart.LineDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Image:     line.Image,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal().StringFixed(2),
		})
	}
	return dto
}
