// Package feed contiene los registros crudos de los tres feeds CSV
// y las reglas para validarlos y convertirlos en entidades.
package feed

// Kind identifica uno de los tres feeds.
type Kind string

const (
	KindProducts  Kind = "products"
	KindInventory Kind = "inventory"
	KindPrices    Kind = "prices"
)

// Nombres lógicos de campo compartidos entre dialectos y registros crudos.
const (
	FieldID                   = "id"
	FieldSKU                  = "sku"
	FieldName                 = "name"
	FieldEAN                  = "ean"
	FieldProducerName         = "producer_name"
	FieldCategory             = "category"
	FieldIsWire               = "is_wire"
	FieldDefaultImage         = "default_image"
	FieldUnit                 = "unit"
	FieldQuantity             = "qty"
	FieldShipping             = "shipping"
	FieldShippingCost         = "shipping_cost"
	FieldNetPrice             = "net_price"
	FieldLogisticUnitNetPrice = "logistic_unit_net_price"
)

// RawProduct fila del feed de productos tal como viene del CSV.
type RawProduct struct {
	Line         int
	ID           string
	SKU          string
	Name         string
	EAN          string
	ProducerName string
	Category     string
	IsWire       string
	DefaultImage string
}

// RawInventory fila del feed de inventario.
type RawInventory struct {
	Line         int
	SKU          string
	Unit         string
	Quantity     string
	ShippingTime string
	ShippingCost string
}

// RawPrice fila del feed de precios.
type RawPrice struct {
	Line                 int
	SKU                  string
	NetPrice             string
	LogisticUnitNetPrice string
}

func RawProductFrom(line int, f map[string]string) RawProduct {
	return RawProduct{
		Line:         line,
		ID:           f[FieldID],
		SKU:          f[FieldSKU],
		Name:         f[FieldName],
		EAN:          f[FieldEAN],
		ProducerName: f[FieldProducerName],
		Category:     f[FieldCategory],
		IsWire:       f[FieldIsWire],
		DefaultImage: f[FieldDefaultImage],
	}
}

func RawInventoryFrom(line int, f map[string]string) RawInventory {
	return RawInventory{
		Line:         line,
		SKU:          f[FieldSKU],
		Unit:         f[FieldUnit],
		Quantity:     f[FieldQuantity],
		ShippingTime: f[FieldShipping],
		ShippingCost: f[FieldShippingCost],
	}
}

func RawPriceFrom(line int, f map[string]string) RawPrice {
	return RawPrice{
		Line:                 line,
		SKU:                  f[FieldSKU],
		NetPrice:             f[FieldNetPrice],
		LogisticUnitNetPrice: f[FieldLogisticUnitNetPrice],
	}
}
