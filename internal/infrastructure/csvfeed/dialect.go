package csvfeed

import "github.com/jhoicas/warehouse-feeds/internal/domain/feed"

// Column asocia un campo lógico a una columna del CSV, por nombre de cabecera
// o por índice según el dialecto.
type Column struct {
	Field    string
	Header   string
	Index    int
	Required bool
}

// Dialect reglas de parseo de un feed. Lo elige quien llama según el tipo de feed.
type Dialect struct {
	Name      string
	Delimiter rune
	// Quote solo admite '"' o 0 (sin comillas).
	Quote     rune
	HasHeader bool
	// ByIndex: las columnas se resuelven por Index; si no, por Header.
	ByIndex bool
	Columns []Column
	// InnerDelimiter: si el parseo externo da un único campo, se vuelve a partir con este separador.
	InnerDelimiter rune
	// Encoding nombre WHATWG del charset ("" = utf-8).
	Encoding string
}

// ProductsDialect: cabecera con nombres, separador ';'.
func ProductsDialect() Dialect {
	return Dialect{
		Name:      string(feed.KindProducts),
		Delimiter: ';',
		Quote:     '"',
		HasHeader: true,
		Columns: []Column{
			{Field: feed.FieldID, Header: "id"},
			{Field: feed.FieldSKU, Header: "sku", Required: true},
			{Field: feed.FieldName, Header: "name", Required: true},
			{Field: feed.FieldEAN, Header: "ean"},
			{Field: feed.FieldProducerName, Header: "producer_name"},
			{Field: feed.FieldCategory, Header: "category"},
			{Field: feed.FieldIsWire, Header: "is_wire"},
			{Field: feed.FieldDefaultImage, Header: "default_image"},
		},
	}
}

// InventoryDialect: columnas fijas, separador ',' y filas que pueden venir
// completas dentro de una sola celda entrecomillada. Sin cabecera: si el feed
// trae una, llega como fila y la validación la descarta al no poder leer qty.
func InventoryDialect() Dialect {
	return Dialect{
		Name:           string(feed.KindInventory),
		Delimiter:      ',',
		Quote:          '"',
		HasHeader:      false,
		ByIndex:        true,
		InnerDelimiter: ',',
		Columns: []Column{
			{Field: feed.FieldSKU, Index: 1, Required: true},
			{Field: feed.FieldUnit, Index: 2, Required: true},
			{Field: feed.FieldQuantity, Index: 3, Required: true},
			{Field: feed.FieldShipping, Index: 6, Required: true},
			{Field: feed.FieldShippingCost, Index: 7},
		},
	}
}

// PricesDialect: columnas fijas, separador ','.
func PricesDialect() Dialect {
	return Dialect{
		Name:      string(feed.KindPrices),
		Delimiter: ',',
		Quote:     '"',
		HasHeader: true,
		ByIndex:   true,
		Columns: []Column{
			{Field: feed.FieldSKU, Index: 1, Required: true},
			{Field: feed.FieldNetPrice, Index: 3, Required: true},
			{Field: feed.FieldLogisticUnitNetPrice, Index: 5},
		},
	}
}

// DialectFor devuelve el dialecto de cada feed.
func DialectFor(kind feed.Kind) (Dialect, bool) {
	switch kind {
	case feed.KindProducts:
		return ProductsDialect(), true
	case feed.KindInventory:
		return InventoryDialect(), true
	case feed.KindPrices:
		return PricesDialect(), true
	}
	return Dialect{}, false
}

// minColumns número de columnas necesarias para cubrir los índices obligatorios.
func (d Dialect) minColumns() int {
	n := 0
	for _, c := range d.Columns {
		if c.Required && c.Index+1 > n {
			n = c.Index + 1
		}
	}
	return n
}
