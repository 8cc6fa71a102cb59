package importer_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
)

// fakeFetcher sirve contenido en memoria escribiéndolo en un directorio temporal.
type fakeFetcher struct {
	dir       string
	files     map[string]string
	fail      map[string]error
	fetched   []string
	discarded []string
}

func newFakeFetcher(t *testing.T, files map[string]string) *fakeFetcher {
	return &fakeFetcher{dir: t.TempDir(), files: files, fail: map[string]error{}}
}

func (f *fakeFetcher) Fetch(_ context.Context, url, fileName string) (string, error) {
	f.fetched = append(f.fetched, url)
	if err := f.fail[url]; err != nil {
		return "", err
	}
	content, ok := f.files[url]
	if !ok {
		return "", fmt.Errorf("%w: 404 %s", domain.ErrFetch, url)
	}
	path := filepath.Join(f.dir, fileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeFetcher) Discard(path string) error {
	f.discarded = append(f.discarded, path)
	return os.Remove(path)
}

// memStore almacén en memoria con la semántica de ON CONFLICT DO NOTHING.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	inventory map[string]*entity.Inventory
	prices    map[string]*entity.Price

	productCalls   [][]*entity.Product
	inventoryCalls [][]*entity.Inventory
	priceCalls     [][]*entity.Price
	existingCalls  int

	failProducts error
	failExisting error
}

func newMemStore(preexisting ...string) *memStore {
	s := &memStore{
		products:  map[string]*entity.Product{},
		inventory: map[string]*entity.Inventory{},
		prices:    map[string]*entity.Price{},
	}
	for _, sku := range preexisting {
		s.products[sku] = &entity.Product{SKU: sku, Name: "previo " + sku}
	}
	return s
}

func (s *memStore) ExistingSKUs(context.Context) (entity.SKUSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.existingCalls++
	if s.failExisting != nil {
		return nil, s.failExisting
	}
	out := entity.NewSKUSet()
	for sku := range s.products {
		out.Add(sku)
	}
	return out, nil
}

func (s *memStore) AddMany(_ context.Context, items []*entity.Product) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productCalls = append(s.productCalls, items)
	if s.failProducts != nil {
		return 0, s.failProducts
	}
	n := 0
	for _, p := range items {
		if _, ok := s.products[p.SKU]; !ok {
			s.products[p.SKU] = p
			n++
		}
	}
	return n, nil
}

func (s *memStore) GetDetailsBySKU(context.Context, string) (*entity.ProductDetails, error) {
	return nil, errors.New("no usado")
}

type memInventory struct{ *memStore }

func (s memInventory) AddMany(_ context.Context, items []*entity.Inventory) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventoryCalls = append(s.inventoryCalls, items)
	n := 0
	for _, it := range items {
		if _, ok := s.inventory[it.SKU]; !ok {
			s.inventory[it.SKU] = it
			n++
		}
	}
	return n, nil
}

type memPrices struct{ *memStore }

func (s memPrices) AddMany(_ context.Context, items []*entity.Price) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceCalls = append(s.priceCalls, items)
	n := 0
	for _, p := range items {
		if _, ok := s.prices[p.SKU]; !ok {
			s.prices[p.SKU] = p
			n++
		}
	}
	return n, nil
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
