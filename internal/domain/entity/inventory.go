package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
)

// Inventory representa el stock de un SKU según el feed de inventario.
// Referencia a Product solo por valor de SKU (sin FK dentro del pipeline).
// Quantity y ShippingCost son nil cuando no vienen informados.
type Inventory struct {
	SKU          string
	Unit         string
	Quantity     *decimal.Decimal
	ShippingTime string // etiqueta libre: "24h", "48-72h", ...
	ShippingCost *decimal.Decimal
}

// NewInventory valida SKU no vacío y que cantidad y coste de envío no sean negativos.
func NewInventory(sku, unit string, quantity *decimal.Decimal, shippingTime string, shippingCost *decimal.Decimal) (*Inventory, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, fmt.Errorf("%w: SKU vacío", domain.ErrInvariant)
	}
	if quantity != nil && quantity.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad negativa para SKU %s", domain.ErrInvariant, sku)
	}
	if shippingCost != nil && shippingCost.IsNegative() {
		return nil, fmt.Errorf("%w: coste de envío negativo para SKU %s", domain.ErrInvariant, sku)
	}
	return &Inventory{
		SKU:          sku,
		Unit:         unit,
		Quantity:     quantity,
		ShippingTime: shippingTime,
		ShippingCost: shippingCost,
	}, nil
}

// HasFastShipping indica si la etiqueta de envío contiene "24h" (sensible a mayúsculas).
func (i *Inventory) HasFastShipping() bool {
	return strings.Contains(i.ShippingTime, FastShippingMarker)
}

// FastShippingMarker subcadena que identifica envío en 24 horas.
const FastShippingMarker = "24h"

// DedupBySKU conserva la primera fila de cada SKU respetando el orden de entrada.
func DedupBySKU(items []*Inventory) []*Inventory {
	seen := make(map[string]struct{}, len(items))
	out := make([]*Inventory, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.SKU]; ok {
			continue
		}
		seen[it.SKU] = struct{}{}
		out = append(out, it)
	}
	return out
}
