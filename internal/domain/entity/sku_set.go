package entity

// SKUSet conjunto de SKUs para los filtros cruzados entre feeds.
type SKUSet map[string]struct{}

// NewSKUSet crea un conjunto con los SKUs indicados.
func NewSKUSet(skus ...string) SKUSet {
	s := make(SKUSet, len(skus))
	for _, sku := range skus {
		s[sku] = struct{}{}
	}
	return s
}

func (s SKUSet) Add(sku string) { s[sku] = struct{}{} }

func (s SKUSet) Has(sku string) bool {
	_, ok := s[sku]
	return ok
}

func (s SKUSet) Len() int { return len(s) }
