package store

import (
	"context"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// ListAwardDocumentsOpts narrows a listing. When both IDPrefix and YearMonth are
// set a document matching either is returned.
type ListAwardDocumentsOpts struct {
	Collection string
	IDPrefix   *string
	YearMonth  *string
}

type Store interface {
	ListAwardDocuments(ctx context.Context, opts ListAwardDocumentsOpts) ([]domain.AwardDocument, error)
	GetAwardDocument(ctx context.Context, collection, id string) (*domain.AwardDocument, error)
	PutAwardDocument(ctx context.Context, collection string, doc domain.AwardDocument) error
	GetVendor(ctx context.Context, collection, name string) (*domain.VendorProfile, error)
	PutVendor(ctx context.Context, collection string, vendor domain.VendorProfile) error
	ListVendors(ctx context.Context, collection string) ([]domain.VendorProfile, error)
}

type store struct {
	pool Pool
}

// NewStore returns the Postgres-backed store.
func NewStore(pool Pool) Store {
	return &store{pool}
}
