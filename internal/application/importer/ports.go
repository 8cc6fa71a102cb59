package importer

import (
	"context"

	"github.com/jhoicas/warehouse-feeds/internal/infrastructure/csvfeed"
)

// FileFetcher descarga un feed remoto a disco y devuelve la ruta local.
// Los errores de descarga envuelven domain.ErrFetch.
type FileFetcher interface {
	Fetch(ctx context.Context, url, fileName string) (string, error)
	// Discard elimina un fichero descargado cuando no se conservan.
	Discard(path string) error
}

// FeedReader lee un fichero completo según su dialecto.
type FeedReader interface {
	ReadAll(ctx context.Context, path string, d csvfeed.Dialect) ([]csvfeed.Record, csvfeed.Stats, error)
}

// Runner ejecuta una importación completa; lo implementa Orchestrator.
type Runner interface {
	Run(ctx context.Context, urls FeedURLs) (*Summary, error)
}
