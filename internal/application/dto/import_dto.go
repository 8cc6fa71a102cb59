package dto

import (
	"time"

	"github.com/jhoicas/warehouse-feeds/internal/application/importer"
)

// ImportRequest URLs de los tres feeds.
type ImportRequest struct {
	ProductsURL  string `json:"productsUrl" validate:"required,url"`
	InventoryURL string `json:"inventoryUrl" validate:"required,url"`
	PricesURL    string `json:"pricesUrl" validate:"required,url"`
}

// FeedURLs convierte la petición a la entrada del importador.
func (r ImportRequest) FeedURLs() importer.FeedURLs {
	return importer.FeedURLs{
		Products:  r.ProductsURL,
		Inventory: r.InventoryURL,
		Prices:    r.PricesURL,
	}
}

// ImportResponse resultado de una importación.
type ImportResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Summary   *importer.Summary `json:"summary,omitempty"`
}

// FileResponse fichero descargado.
type FileResponse struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// FileListResponse listado de ficheros descargados.
type FileListResponse struct {
	Items []FileResponse `json:"items"`
}
