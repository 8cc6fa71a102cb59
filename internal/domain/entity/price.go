package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
)

// Price precio neto de un SKU y precio neto por unidad logística.
type Price struct {
	SKU                  string
	NetPrice             *decimal.Decimal
	LogisticUnitNetPrice *decimal.Decimal
}

// NewPrice valida SKU no vacío y precios no negativos.
func NewPrice(sku string, netPrice, logisticUnitNetPrice *decimal.Decimal) (*Price, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, fmt.Errorf("%w: SKU vacío", domain.ErrInvariant)
	}
	if netPrice != nil && netPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio neto negativo para SKU %s", domain.ErrInvariant, sku)
	}
	if logisticUnitNetPrice != nil && logisticUnitNetPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio por unidad logística negativo para SKU %s", domain.ErrInvariant, sku)
	}
	return &Price{SKU: sku, NetPrice: netPrice, LogisticUnitNetPrice: logisticUnitNetPrice}, nil
}
