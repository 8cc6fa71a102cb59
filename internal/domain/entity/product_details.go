package entity

import "github.com/shopspring/decimal"

// ProductDetails vista de lectura: producto + inventario + precio unidos por SKU.
// Los campos de inventario y precio son nil si no hay fila asociada.
type ProductDetails struct {
	SKU          string
	Name         string
	EAN          string
	ProducerName string
	Category     string
	DefaultImage string

	StockQuantity *decimal.Decimal
	LogisticUnit  *string
	ShippingCost  *decimal.Decimal

	NetPrice *decimal.Decimal
}
