package importing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/importer"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"golang.org/x/sync/errgroup"
	"os"
	"path/filepath"
	"sort"
)

// Upload is one order workbook waiting to be imported.
type Upload struct {
	Name   string
	Data   []byte
	Prices importer.PriceList
}

type Result struct {
	File  string `json:"file"`
	DocID string `json:"doc_id,omitempty"`
	Items int    `json:"items"`
	Error string `json:"error,omitempty"`
}

type Service struct {
	store      store.Store
	collection string
	workers    int
}

func NewImportingService(store store.Store, collection string, workers int) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{store: store, collection: collection, workers: workers}
}

// ImportAll parses uploads concurrently, then writes each school document once with
// the items of every upload that maps to it, merged in file name order. A failing
// workbook is reported in its Result and does not stop the others; only a cancelled
// context does.
func (s *Service) ImportAll(ctx context.Context, uploads []Upload) ([]Result, error) {
	results := make([]Result, len(uploads))
	docs := make([]*domain.AwardDocument, len(uploads))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for i, u := range uploads {
		i, u := i, u
		results[i] = Result{File: u.Name}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			doc, err := importer.ParseOrderWorkbook(bytes.NewReader(u.Data), u.Name, u.Prices)
			if err != nil {
				logger.Errorf(egCtx, "import %s: %s", u.Name, err.Error())
				results[i].Error = err.Error()
				return nil
			}
			docs[i] = &doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("importing.ImportAll: %w", err)
	}

	order := make([]int, 0, len(uploads))
	for i := range uploads {
		if docs[i] != nil {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return uploads[order[a]].Name < uploads[order[b]].Name })

	var ids []string
	groups := make(map[string][]int)
	for _, i := range order {
		id := docs[i].ID
		if _, ok := groups[id]; !ok {
			ids = append(ids, id)
		}
		groups[id] = append(groups[id], i)
	}

	eg, egCtx = errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for _, id := range ids {
		idx := groups[id]
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			batch := make([]domain.AwardDocument, 0, len(idx))
			for _, i := range idx {
				batch = append(batch, *docs[i])
			}

			_, err := s.save(egCtx, batch)
			if errors.Is(err, context.Canceled) {
				return err
			}
			for _, i := range idx {
				if err != nil {
					logger.Errorf(egCtx, "import %s: %s", uploads[i].Name, err.Error())
					results[i].Error = err.Error()
					continue
				}
				results[i].DocID = docs[i].ID
				results[i].Items = len(docs[i].Items)
				logger.Infof(egCtx, "imported %s as %s (%d items)", uploads[i].Name, docs[i].ID, len(docs[i].Items))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("importing.ImportAll: %w", err)
	}
	return results, nil
}

// save merges docs, which share one id, over the stored document and writes the
// result once.
func (s *Service) save(ctx context.Context, docs []domain.AwardDocument) (*domain.AwardDocument, error) {
	var merged domain.AwardDocument
	stored, err := s.store.GetAwardDocument(ctx, s.collection, docs[0].ID)
	switch {
	case err == nil:
		merged = *stored
	case !errors.Is(err, constants.ErrDBNotFound):
		return nil, err
	}

	for _, doc := range docs {
		merged = merged.Merge(doc)
	}
	if err := s.store.PutAwardDocument(ctx, s.collection, merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ImportDir imports every order workbook in dir. A "{YYMM}_{school}_계약단가.xlsx"
// next to a workbook supplies its missing prices.
func (s *Service) ImportDir(ctx context.Context, dir string) ([]Result, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_"+importer.OrderMarker+"_*.xls*"))
	if err != nil {
		return nil, fmt.Errorf("importing.ImportDir: %w", err)
	}
	sort.Strings(paths)

	var (
		uploads  []Upload
		skipped  []Result
		priceMap = make(map[string]importer.PriceList)
	)
	for _, path := range paths {
		name := filepath.Base(path)
		if !importer.IsWorkbook(name) {
			continue
		}
		src, err := importer.ParseFilename(name)
		if err != nil {
			skipped = append(skipped, Result{File: name, Error: err.Error()})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("importing.ImportDir: %w", err)
		}

		prices, err := s.loadPrices(ctx, filepath.Join(dir, importer.PriceListName(src)), priceMap)
		if err != nil {
			skipped = append(skipped, Result{File: name, Error: err.Error()})
			continue
		}
		uploads = append(uploads, Upload{Name: name, Data: data, Prices: prices})
	}

	results, err := s.ImportAll(ctx, uploads)
	if err != nil {
		return nil, err
	}
	return append(results, skipped...), nil
}

func (s *Service) loadPrices(ctx context.Context, path string, cache map[string]importer.PriceList) (importer.PriceList, error) {
	if p, ok := cache[path]; ok {
		return p, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		cache[path] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prices, err := importer.ParsePriceList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	logger.Debugf(ctx, "price list %s: %d items", filepath.Base(path), len(prices))
	cache[path] = prices
	return prices, nil
}
