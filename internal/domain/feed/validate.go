package feed

import "fmt"

// Verdict resultado de validar un registro crudo.
// Malformed distingue las filas que se cuentan como inválidas de las que
// simplemente se filtran (producto sin nombre).
type Verdict struct {
	Accepted  bool
	Reason    string
	Malformed bool
}

var accepted = Verdict{Accepted: true}

func reject(format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...), Malformed: true}
}

func ValidateProduct(r RawProduct) Verdict {
	if IsBlank(r.SKU) {
		return reject("SKU vacío")
	}
	if IsBlank(r.Name) {
		return Verdict{Reason: "nombre vacío"}
	}
	return accepted
}

func ValidateInventory(r RawInventory) Verdict {
	if IsBlank(r.SKU) {
		return reject("SKU vacío")
	}
	if IsBlank(r.Unit) {
		return reject("unidad vacía")
	}
	qty, err := ParseDecimal(r.Quantity)
	if err != nil {
		return reject("cantidad no numérica %q", r.Quantity)
	}
	if qty.IsNegative() {
		return reject("cantidad negativa %s", qty)
	}
	if !IsBlank(r.ShippingCost) {
		cost, err := ParseDecimal(r.ShippingCost)
		if err != nil {
			return reject("coste de envío no numérico %q", r.ShippingCost)
		}
		if cost.IsNegative() {
			return reject("coste de envío negativo %s", cost)
		}
	}
	return accepted
}

func ValidatePrice(r RawPrice) Verdict {
	if IsBlank(r.SKU) {
		return reject("SKU vacío")
	}
	net, err := ParseDecimal(r.NetPrice)
	if err != nil {
		return reject("precio neto inválido %q", r.NetPrice)
	}
	if net.IsNegative() {
		return reject("precio neto negativo %s", net)
	}
	if !IsBlank(r.LogisticUnitNetPrice) {
		lu, err := ParseDecimal(r.LogisticUnitNetPrice)
		if err != nil {
			return reject("precio por unidad logística inválido %q", r.LogisticUnitNetPrice)
		}
		if lu.IsNegative() {
			return reject("precio por unidad logística negativo %s", lu)
		}
	}
	return accepted
}
