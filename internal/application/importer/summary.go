package importer

import (
	"fmt"
	"time"

	"github.com/jhoicas/warehouse-feeds/internal/domain/feed"
)

// FeedURLs las tres URLs de una importación.
type FeedURLs struct {
	Products  string
	Inventory string
	Prices    string
}

// FeedStats contadores de un feed.
type FeedStats struct {
	Read      int `json:"read"`      // filas de datos leídas
	Skipped   int `json:"skipped"`   // filas mal formadas: sintaxis CSV o campos obligatorios ilegibles
	Rejected  int `json:"rejected"`  // bien formadas pero descartadas por la validación (p. ej. sin nombre)
	Filtered  int `json:"filtered"`  // válidas pero excluidas por los filtros cruzados
	Admitted  int `json:"admitted"`  // enviadas al almacén
	Persisted int `json:"persisted"` // insertadas de verdad (sin duplicados previos)
}

// reject cuenta una fila que no pasa la validación.
func (fs *FeedStats) reject(v feed.Verdict) {
	if v.Malformed {
		fs.Skipped++
		return
	}
	fs.Rejected++
}

// Summary resultado de una importación completa.
type Summary struct {
	RunID            string                  `json:"runId"`
	StartedAt        time.Time               `json:"startedAt"`
	FinishedAt       time.Time               `json:"finishedAt"`
	FastShippingSKUs int                     `json:"fastShippingSkus"`
	Feeds            map[feed.Kind]FeedStats `json:"feeds"`
}

// Duration tiempo total de la importación.
func (s *Summary) Duration() time.Duration { return s.FinishedAt.Sub(s.StartedAt) }

// Nombres de las etapas, en orden de ejecución.
const (
	StageFetch            = "fetch"
	StageInventoryParse   = "inventory.parse"
	StageProductsParse    = "products.parse"
	StageProductsPersist  = "products.persist"
	StageInventoryPersist = "inventory.persist"
	StagePrices           = "prices"
)

// ImportError primer fallo irrecuperable de una importación y la etapa en que ocurrió.
type ImportError struct {
	Stage string
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("importación fallida en etapa %s: %v", e.Stage, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }
