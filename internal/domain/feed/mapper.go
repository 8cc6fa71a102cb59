package feed

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
)

// DecodeWire solo "1" marca el producto como cable; cualquier otro valor es false.
func DecodeWire(s string) bool {
	return Clean(s) == "1"
}

// CleanShippingTime elimina todas las comillas de la etiqueta y recorta espacios.
func CleanShippingTime(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// MapProduct convierte un registro ya validado en entidad.
func MapProduct(r RawProduct) (*entity.Product, error) {
	return entity.NewProduct(
		Clean(r.SKU),
		Clean(r.Name),
		Clean(r.EAN),
		Clean(r.ProducerName),
		Clean(r.Category),
		Clean(r.DefaultImage),
		DecodeWire(r.IsWire),
	)
}

func MapInventory(r RawInventory) (*entity.Inventory, error) {
	qty, err := optionalDecimal(r.Quantity)
	if err != nil {
		return nil, err
	}
	cost, err := optionalDecimal(r.ShippingCost)
	if err != nil {
		return nil, err
	}
	return entity.NewInventory(Clean(r.SKU), Clean(r.Unit), qty, CleanShippingTime(r.ShippingTime), cost)
}

// MapPrice: un precio por unidad logística vacío se mapea a 0, no a nil.
func MapPrice(r RawPrice) (*entity.Price, error) {
	net, err := optionalDecimal(r.NetPrice)
	if err != nil {
		return nil, err
	}
	lu := decimal.Zero
	if !IsBlank(r.LogisticUnitNetPrice) {
		if lu, err = ParseDecimal(r.LogisticUnitNetPrice); err != nil {
			return nil, err
		}
	}
	return entity.NewPrice(Clean(r.SKU), net, &lu)
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if IsBlank(s) {
		return nil, nil
	}
	d, err := ParseDecimal(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
