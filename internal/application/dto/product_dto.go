package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
)

// ProductDetailsResponse producto con su inventario y precio.
// Los campos de inventario y precio son null si no hay fila asociada.
type ProductDetailsResponse struct {
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	EAN           string           `json:"ean"`
	ProducerName  string           `json:"producerName"`
	Category      string           `json:"category"`
	DefaultImage  string           `json:"defaultImage"`
	StockQuantity *decimal.Decimal `json:"stockQuantity"`
	LogisticUnit  *string          `json:"logisticUnit"`
	ShippingCost  *decimal.Decimal `json:"shippingCost"`
	NetPrice      *decimal.Decimal `json:"netPrice"`
}

// ToProductDetailsResponse convierte la vista de lectura a DTO.
func ToProductDetailsResponse(d *entity.ProductDetails) *ProductDetailsResponse {
	return &ProductDetailsResponse{
		SKU:           d.SKU,
		Name:          d.Name,
		EAN:           d.EAN,
		ProducerName:  d.ProducerName,
		Category:      d.Category,
		DefaultImage:  d.DefaultImage,
		StockQuantity: d.StockQuantity,
		LogisticUnit:  d.LogisticUnit,
		ShippingCost:  d.ShippingCost,
		NetPrice:      d.NetPrice,
	}
}
