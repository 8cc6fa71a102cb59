package importer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/pkg/logger"
)

// Service punto de entrada común para HTTP, cron y CLI. Serializa las
// importaciones dentro del proceso: dos ejecuciones simultáneas competirían
// por las mismas filas y los mismos ficheros descargados.
type Service struct {
	runner   Runner
	slot     chan struct{}
	lockWait time.Duration
	log      *logger.Logger
}

// NewService lockWait = 0 rechaza de inmediato si ya hay una importación en curso.
func NewService(runner Runner, lockWait time.Duration, log *logger.Logger) *Service {
	return &Service{
		runner:   runner,
		slot:     make(chan struct{}, 1),
		lockWait: lockWait,
		log:      log,
	}
}

// Import valida las URLs y ejecuta la importación.
func (s *Service) Import(ctx context.Context, urls FeedURLs) (*Summary, error) {
	if err := ValidateURLs(urls); err != nil {
		return nil, err
	}
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	return s.runner.Run(ctx, urls)
}

// Running indica si hay una importación en curso.
func (s *Service) Running() bool {
	return len(s.slot) > 0
}

func (s *Service) acquire(ctx context.Context) error {
	select {
	case s.slot <- struct{}{}:
		return nil
	default:
	}
	if s.lockWait <= 0 {
		s.log.Warn().Msg("importación rechazada: ya hay otra en curso")
		return domain.ErrImportInProgress
	}

	timer := time.NewTimer(s.lockWait)
	defer timer.Stop()
	select {
	case s.slot <- struct{}{}:
		return nil
	case <-timer.C:
		s.log.Warn().Dur("wait", s.lockWait).Msg("importación rechazada: ya hay otra en curso")
		return domain.ErrImportInProgress
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) release() { <-s.slot }

// ValidateURLs exige las tres URLs, absolutas y http(s).
func ValidateURLs(urls FeedURLs) error {
	fields := []struct{ name, raw string }{
		{"productsUrl", urls.Products},
		{"inventoryUrl", urls.Inventory},
		{"pricesUrl", urls.Prices},
	}
	for _, f := range fields {
		name, raw := f.name, f.raw
		if strings.TrimSpace(raw) == "" {
			return fmt.Errorf("%w: %s es obligatoria", domain.ErrInvalidInput, name)
		}
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: %s debe ser una URL absoluta http(s)", domain.ErrInvalidInput, name)
		}
	}
	return nil
}
