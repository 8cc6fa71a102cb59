package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
	"github.com/jhoicas/warehouse-feeds/internal/domain/feed"
	"github.com/jhoicas/warehouse-feeds/internal/domain/repository"
	"github.com/jhoicas/warehouse-feeds/internal/infrastructure/csvfeed"
	"github.com/jhoicas/warehouse-feeds/pkg/logger"
)

// Orchestrator conduce una importación:
//
//	fetch → inventory.parse → products.parse → products.persist → inventory.persist → prices
//
// Las etapas son secuenciales; cada una depende del resultado completo de la anterior.
// No hay transacción global: un fallo no deshace lo ya persistido.
type Orchestrator struct {
	fetcher       FileFetcher
	reader        FeedReader
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	priceRepo     repository.PriceRepository
	log           *logger.Logger
	keepFiles     bool
	now           func() time.Time
}

// NewOrchestrator construye el orquestador con todas sus dependencias.
func NewOrchestrator(
	fetcher FileFetcher,
	reader FeedReader,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	priceRepo repository.PriceRepository,
	log *logger.Logger,
	keepFiles bool,
) *Orchestrator {
	return &Orchestrator{
		fetcher:       fetcher,
		reader:        reader,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		priceRepo:     priceRepo,
		log:           log,
		keepFiles:     keepFiles,
		now:           time.Now,
	}
}

var _ Runner = (*Orchestrator)(nil)

// runState estado de una sola ejecución; no sobrevive entre llamadas a Run.
type runState struct {
	urls    FeedURLs
	paths   map[feed.Kind]string
	summary Summary

	inventory []*entity.Inventory
	fastSKUs  entity.SKUSet
	products  []*entity.Product
}

type stage struct {
	name string
	fn   func(ctx context.Context, st *runState) error
}

func (o *Orchestrator) stages() []stage {
	return []stage{
		{StageFetch, o.fetchAll},
		{StageInventoryParse, o.parseInventory},
		{StageProductsParse, o.parseProducts},
		{StageProductsPersist, o.persistProducts},
		{StageInventoryPersist, o.persistInventory},
		{StagePrices, o.importPrices},
	}
}

// Run ejecuta todas las etapas. La cancelación de ctx se comprueba entre etapas;
// una llamada ya en curso (descarga, lectura, escritura) no se interrumpe.
func (o *Orchestrator) Run(ctx context.Context, urls FeedURLs) (*Summary, error) {
	st := &runState{
		urls:  urls,
		paths: make(map[feed.Kind]string, 3),
		summary: Summary{
			RunID:     uuid.New().String(),
			StartedAt: o.now(),
			Feeds:     make(map[feed.Kind]FeedStats, 3),
		},
	}
	defer o.cleanup(st)

	work := context.WithoutCancel(ctx)
	o.log.Info().Str("run_id", st.summary.RunID).Msg("importación iniciada")

	for _, s := range o.stages() {
		if err := ctx.Err(); err != nil {
			return nil, o.fail(st, s.name, err)
		}
		started := time.Now()
		if err := s.fn(work, st); err != nil {
			return nil, o.fail(st, s.name, err)
		}
		o.log.Debug().
			Str("run_id", st.summary.RunID).
			Str("stage", s.name).
			Dur("elapsed", time.Since(started)).
			Msg("etapa completada")
	}

	st.summary.FinishedAt = o.now()
	ev := o.log.Info().
		Str("run_id", st.summary.RunID).
		Int("fast_shipping_skus", st.summary.FastShippingSKUs).
		Dur("elapsed", st.summary.Duration())
	for kind, fs := range st.summary.Feeds {
		ev = ev.Int(string(kind)+"_persisted", fs.Persisted)
	}
	ev.Msg("importación completada")

	summary := st.summary
	return &summary, nil
}

func (o *Orchestrator) fail(st *runState, stageName string, err error) error {
	o.log.Error().
		Err(err).
		Str("run_id", st.summary.RunID).
		Str("stage", stageName).
		Msg("importación abortada")
	return &ImportError{Stage: stageName, Err: err}
}

func (o *Orchestrator) cleanup(st *runState) {
	if o.keepFiles {
		return
	}
	for kind, path := range st.paths {
		if err := o.fetcher.Discard(path); err != nil {
			o.log.Warn().Err(err).Str("feed", string(kind)).Msg("no se pudo eliminar el fichero descargado")
		}
	}
}

// 1. Descarga de los tres ficheros. El orden no afecta al resultado.
func (o *Orchestrator) fetchAll(ctx context.Context, st *runState) error {
	order := []struct {
		kind feed.Kind
		url  string
	}{
		{feed.KindInventory, st.urls.Inventory},
		{feed.KindPrices, st.urls.Prices},
		{feed.KindProducts, st.urls.Products},
	}
	for _, f := range order {
		path, err := o.fetcher.Fetch(ctx, f.url, string(f.kind)+".csv")
		if err != nil {
			return ensureKind(err, domain.ErrFetch, "descargar "+string(f.kind))
		}
		st.paths[f.kind] = path
	}
	return nil
}

// 2. Inventario y conjunto de SKUs con envío en 24h.
func (o *Orchestrator) parseInventory(ctx context.Context, st *runState) error {
	records, stats, err := o.read(ctx, st, feed.KindInventory)
	if err != nil {
		return err
	}
	fs := FeedStats{Read: stats.Read, Skipped: stats.Skipped}

	st.fastSKUs = entity.NewSKUSet()
	for _, rec := range records {
		raw := feed.RawInventoryFrom(rec.Line, rec.Fields)
		if v := feed.ValidateInventory(raw); !v.Accepted {
			fs.reject(v)
			o.logRejected(st, feed.KindInventory, rec.Line, v)
			continue
		}
		inv, err := feed.MapInventory(raw)
		if err != nil {
			return fmt.Errorf("inventario línea %d: %w", rec.Line, err)
		}
		st.inventory = append(st.inventory, inv)
		if inv.HasFastShipping() {
			st.fastSKUs.Add(inv.SKU)
		}
	}

	st.summary.FastShippingSKUs = st.fastSKUs.Len()
	st.summary.Feeds[feed.KindInventory] = fs
	return nil
}

// 3. Productos: solo no-cable y con envío en 24h.
func (o *Orchestrator) parseProducts(ctx context.Context, st *runState) error {
	records, stats, err := o.read(ctx, st, feed.KindProducts)
	if err != nil {
		return err
	}
	fs := FeedStats{Read: stats.Read, Skipped: stats.Skipped}

	for _, rec := range records {
		raw := feed.RawProductFrom(rec.Line, rec.Fields)
		if v := feed.ValidateProduct(raw); !v.Accepted {
			fs.reject(v)
			o.logRejected(st, feed.KindProducts, rec.Line, v)
			continue
		}
		p, err := feed.MapProduct(raw)
		if err != nil {
			return fmt.Errorf("productos línea %d: %w", rec.Line, err)
		}
		if p.IsWire || !st.fastSKUs.Has(p.SKU) {
			fs.Filtered++
			continue
		}
		st.products = append(st.products, p)
	}

	fs.Admitted = len(st.products)
	st.summary.Feeds[feed.KindProducts] = fs
	return nil
}

// 4. Persistencia de productos.
func (o *Orchestrator) persistProducts(ctx context.Context, st *runState) error {
	fs := st.summary.Feeds[feed.KindProducts]
	n, err := o.addMany(ctx, st, feed.KindProducts, len(st.products), func() (int, error) {
		return o.productRepo.AddMany(ctx, st.products)
	})
	if err != nil {
		return err
	}
	fs.Persisted = n
	st.summary.Feeds[feed.KindProducts] = fs
	return nil
}

// 5. Inventario con envío 24h cuyo SKU existe en el almacén (consulta fresca,
// incluye productos de importaciones anteriores).
func (o *Orchestrator) persistInventory(ctx context.Context, st *runState) error {
	existing, err := o.existingSKUs(ctx)
	if err != nil {
		return err
	}

	fs := st.summary.Feeds[feed.KindInventory]
	admitted := make([]*entity.Inventory, 0, len(st.inventory))
	for _, inv := range st.inventory {
		if st.fastSKUs.Has(inv.SKU) && existing.Has(inv.SKU) {
			admitted = append(admitted, inv)
			continue
		}
		fs.Filtered++
	}
	// Un solo registro por SKU: gana la primera fila del feed.
	deduped := entity.DedupBySKU(admitted)
	fs.Filtered += len(admitted) - len(deduped)
	admitted = deduped
	fs.Admitted = len(admitted)

	n, err := o.addMany(ctx, st, feed.KindInventory, len(admitted), func() (int, error) {
		return o.inventoryRepo.AddMany(ctx, admitted)
	})
	if err != nil {
		return err
	}
	fs.Persisted = n
	st.summary.Feeds[feed.KindInventory] = fs
	return nil
}

// 6. Precios válidos cuyo SKU existe en el almacén.
func (o *Orchestrator) importPrices(ctx context.Context, st *runState) error {
	records, stats, err := o.read(ctx, st, feed.KindPrices)
	if err != nil {
		return err
	}
	fs := FeedStats{Read: stats.Read, Skipped: stats.Skipped}

	existing, err := o.existingSKUs(ctx)
	if err != nil {
		return err
	}

	var admitted []*entity.Price
	for _, rec := range records {
		raw := feed.RawPriceFrom(rec.Line, rec.Fields)
		if v := feed.ValidatePrice(raw); !v.Accepted {
			fs.reject(v)
			o.logRejected(st, feed.KindPrices, rec.Line, v)
			continue
		}
		p, err := feed.MapPrice(raw)
		if err != nil {
			return fmt.Errorf("precios línea %d: %w", rec.Line, err)
		}
		if !existing.Has(p.SKU) {
			fs.Filtered++
			continue
		}
		admitted = append(admitted, p)
	}
	fs.Admitted = len(admitted)

	n, err := o.addMany(ctx, st, feed.KindPrices, len(admitted), func() (int, error) {
		return o.priceRepo.AddMany(ctx, admitted)
	})
	if err != nil {
		return err
	}
	fs.Persisted = n
	st.summary.Feeds[feed.KindPrices] = fs
	return nil
}

func (o *Orchestrator) read(ctx context.Context, st *runState, kind feed.Kind) ([]csvfeed.Record, csvfeed.Stats, error) {
	d, _ := csvfeed.DialectFor(kind)
	records, stats, err := o.reader.ReadAll(ctx, st.paths[kind], d)
	if err != nil {
		return nil, stats, ensureKind(err, domain.ErrFeedFormat, "leer "+string(kind))
	}
	if stats.Skipped > 0 {
		o.log.Warn().
			Str("run_id", st.summary.RunID).
			Str("feed", string(kind)).
			Int("skipped", stats.Skipped).
			Msg("filas mal formadas omitidas")
	}
	return records, stats, nil
}

// addMany omite la escritura si no hay nada que persistir.
func (o *Orchestrator) addMany(ctx context.Context, st *runState, kind feed.Kind, count int, write func() (int, error)) (int, error) {
	if count == 0 {
		o.log.Warn().
			Str("run_id", st.summary.RunID).
			Str("feed", string(kind)).
			Msg("ningún registro admitido, se omite la escritura")
		return 0, nil
	}
	n, err := write()
	if err != nil {
		return 0, ensureKind(err, domain.ErrPersistence, "guardar "+string(kind))
	}
	o.log.Info().
		Str("run_id", st.summary.RunID).
		Str("feed", string(kind)).
		Int("count", count).
		Int("inserted", n).
		Msg("registros guardados")
	return n, nil
}

func (o *Orchestrator) existingSKUs(ctx context.Context) (entity.SKUSet, error) {
	skus, err := o.productRepo.ExistingSKUs(ctx)
	if err != nil {
		return nil, ensureKind(err, domain.ErrPersistence, "consultar SKUs existentes")
	}
	return skus, nil
}

func (o *Orchestrator) logRejected(st *runState, kind feed.Kind, line int, v feed.Verdict) {
	ev := o.log.Debug()
	if v.Malformed {
		ev = o.log.Warn()
	}
	ev.Str("run_id", st.summary.RunID).
		Str("feed", string(kind)).
		Int("line", line).
		Str("reason", v.Reason).
		Msg("registro rechazado")
}

// ensureKind garantiza que err se pueda identificar con errors.Is(err, kind).
func ensureKind(err, kind error, op string) error {
	if errors.Is(err, kind) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
