// Package inmem is a process-local store, used for development and tests.
package inmem

import (
	"context"
	"fmt"
	"github.com/bytedance/sonic"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/domain/dto"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"io"
	"sort"
	"strings"
	"sync"
)

type Store struct {
	mx      sync.RWMutex
	docs    map[string]map[string]domain.AwardDocument
	vendors map[string]map[string]domain.VendorProfile
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		docs:    make(map[string]map[string]domain.AwardDocument),
		vendors: make(map[string]map[string]domain.VendorProfile),
	}
}

// Seed is the JSON layout accepted by Load: collection name to document id to the
// stored document shape.
type Seed struct {
	Schools map[string]map[string]dto.AwardDocument `json:"schools"`
	Vendors map[string]map[string]dto.VendorProfile `json:"vendors"`
}

// Load reads a Seed and adds every document it contains.
func (s *Store) Load(r io.Reader) error {
	var seed Seed
	if err := sonic.ConfigDefault.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("inmem.Load: %w", err)
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	for coll, docs := range seed.Schools {
		for id, raw := range docs {
			raw := raw
			s.putDoc(coll, raw.Normalize(id))
		}
	}
	for coll, vendors := range seed.Vendors {
		for id, raw := range vendors {
			raw := raw
			s.putVendor(coll, strings.TrimSpace(id), raw.Normalize(id))
		}
	}
	return nil
}

func (s *Store) ListAwardDocuments(_ context.Context, opts store.ListAwardDocumentsOpts) ([]domain.AwardDocument, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	res := make([]domain.AwardDocument, 0)
	for id, doc := range s.docs[opts.Collection] {
		if matches(id, doc, opts) {
			res = append(res, doc)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *Store) GetAwardDocument(_ context.Context, collection, id string) (*domain.AwardDocument, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return nil, fmt.Errorf("inmem.GetAwardDocument %s/%s: %w", collection, id, constants.ErrDBNotFound)
	}
	return &doc, nil
}

func (s *Store) PutAwardDocument(_ context.Context, collection string, doc domain.AwardDocument) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.putDoc(collection, doc)
	return nil
}

func (s *Store) GetVendor(_ context.Context, collection, name string) (*domain.VendorProfile, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	v, ok := s.vendors[collection][name]
	if !ok {
		return nil, fmt.Errorf("inmem.GetVendor %s/%s: %w", collection, name, constants.ErrDBNotFound)
	}
	return &v, nil
}

func (s *Store) PutVendor(_ context.Context, collection string, vendor domain.VendorProfile) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.putVendor(collection, vendor.Name, vendor)
	return nil
}

func (s *Store) ListVendors(_ context.Context, collection string) ([]domain.VendorProfile, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	res := make([]domain.VendorProfile, 0, len(s.vendors[collection]))
	for _, v := range s.vendors[collection] {
		res = append(res, v)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (s *Store) putDoc(collection string, doc domain.AwardDocument) {
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]domain.AwardDocument)
	}
	s.docs[collection][doc.ID] = doc
}

// putVendor keys v by its document id, which is the awarded-vendor name and may
// differ from the registered trade name.
func (s *Store) putVendor(collection, id string, v domain.VendorProfile) {
	if s.vendors[collection] == nil {
		s.vendors[collection] = make(map[string]domain.VendorProfile)
	}
	s.vendors[collection][id] = v
}

func matches(id string, doc domain.AwardDocument, opts store.ListAwardDocumentsOpts) bool {
	if opts.IDPrefix == nil && opts.YearMonth == nil {
		return true
	}
	if opts.IDPrefix != nil && strings.HasPrefix(id, *opts.IDPrefix) {
		return true
	}
	return opts.YearMonth != nil && doc.YearMonth == *opts.YearMonth
}
