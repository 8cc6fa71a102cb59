package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
)

// Product representa un producto del feed de catálogo. SKU es la clave única.
// Se construye solo con NewProduct; una vez creado no se modifica.
type Product struct {
	SKU          string
	Name         string
	EAN          string // opcional
	ProducerName string // opcional
	Category     string // opcional
	DefaultImage string // opcional
	IsWire       bool
}

// NewProduct valida SKU y Name (no vacíos) y devuelve el producto.
func NewProduct(sku, name, ean, producerName, category, defaultImage string, isWire bool) (*Product, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, fmt.Errorf("%w: SKU vacío", domain.ErrInvariant)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: nombre vacío para SKU %s", domain.ErrInvariant, sku)
	}
	return &Product{
		SKU:          sku,
		Name:         name,
		EAN:          ean,
		ProducerName: producerName,
		Category:     category,
		DefaultImage: defaultImage,
		IsWire:       isWire,
	}, nil
}
