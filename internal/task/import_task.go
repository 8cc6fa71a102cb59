package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/warehouse-feeds/internal/application/importer"
	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/pkg/config"
	"github.com/jhoicas/warehouse-feeds/pkg/logger"
)

// Importer lo implementa importer.Service.
type Importer interface {
	Import(ctx context.Context, urls importer.FeedURLs) (*importer.Summary, error)
}

// ImportTask importación periódica de los tres feeds.
type ImportTask struct {
	svc     Importer
	urls    importer.FeedURLs
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	log     *logger.Logger
}

// NewImportTask la expresión cron admite 5 o 6 campos (segundos opcionales) y descriptores como "@every 1h".
func NewImportTask(svc Importer, cfg config.ScheduleConfig, timeout time.Duration, log *logger.Logger) *ImportTask {
	log = log.Named("import_task")
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	cl := cronLogger{log: log}
	return &ImportTask{
		svc: svc,
		urls: importer.FeedURLs{
			Products:  cfg.ProductsURL,
			Inventory: cfg.InventoryURL,
			Prices:    cfg.PricesURL,
		},
		spec:    cfg.Cron,
		timeout: timeout,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log: log,
	}
}

// Start registra el job y arranca el planificador.
func (t *ImportTask) Start() error {
	if _, err := t.cron.AddFunc(t.spec, t.execute); err != nil {
		return fmt.Errorf("%w: cron %q: %v", domain.ErrInvalidInput, t.spec, err)
	}
	t.cron.Start()
	t.log.Info().Str("cron", t.spec).Msg("importación programada iniciada")
	return nil
}

// Stop detiene el planificador y espera al job en curso.
func (t *ImportTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info().Msg("importación programada detenida")
}

func (t *ImportTask) execute() {
	ctx := context.Background()
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	t.RunOnce(ctx)
}

// RunOnce ejecuta una importación; los errores solo se registran.
func (t *ImportTask) RunOnce(ctx context.Context) {
	summary, err := t.svc.Import(ctx, t.urls)
	switch {
	case errors.Is(err, domain.ErrImportInProgress):
		t.log.Info().Msg("importación programada omitida: otra en curso")
		return
	case err != nil:
		t.log.Error().Err(err).Msg("importación programada fallida")
		return
	}
	t.log.Info().
		Str("run_id", summary.RunID).
		Dur("duration", summary.Duration()).
		Msg("importación programada completada")
}

// cronLogger adapta el logger de la aplicación a cron.Logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
