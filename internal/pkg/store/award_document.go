package store

import (
	"context"
	"fmt"
	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/domain/dto"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store/xpgx"
	"time"
)

const schema = `
create table if not exists documents (
	collection text not null,
	id text not null,
	data jsonb not null,
	updated_at timestamptz not null default now(),
	primary key (collection, id)
)`

type documentRow struct {
	Collection string    `db:"collection"`
	ID         string    `db:"id"`
	Data       []byte    `db:"data"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// EnsureSchema creates the documents table if it is missing.
func EnsureSchema(ctx context.Context, pool Pool) error {
	if _, err := pool.Execx(ctx, sq.Expr(schema)); err != nil {
		return fmt.Errorf("store.EnsureSchema: %w", err)
	}
	return nil
}

func (s *store) ListAwardDocuments(ctx context.Context, opts ListAwardDocumentsOpts) ([]domain.AwardDocument, error) {
	query := builder().Select(documentColumns...).
		From(tableDocuments).
		Where(sq.Eq{"collection": opts.Collection}).
		OrderBy("id")

	var or sq.Or
	if opts.IDPrefix != nil {
		or = append(or, sq.Like{"id": prefixPattern(*opts.IDPrefix)})
	}
	if opts.YearMonth != nil {
		or = append(or, sq.Expr(`data->>'연월' = ?`, *opts.YearMonth))
	}
	if len(or) > 0 {
		query = query.Where(or)
	}

	rows, err := xpgx.Selectx[documentRow](ctx, s.pool, query)
	if err != nil {
		logger.Errorf(ctx, "ListAwardDocuments: %s", err.Error())
		return nil, fmt.Errorf("store.ListAwardDocuments: %w", wrapErr(err))
	}

	docs := make([]domain.AwardDocument, 0, len(rows))
	for _, row := range rows {
		var raw dto.AwardDocument
		if err := sonic.Unmarshal(row.Data, &raw); err != nil {
			logger.Warnf(ctx, "skip document %s/%s: %s", row.Collection, row.ID, err.Error())
			continue
		}
		docs = append(docs, raw.Normalize(row.ID))
	}

	return docs, nil
}

func (s *store) GetAwardDocument(ctx context.Context, collection, id string) (*domain.AwardDocument, error) {
	row, err := s.getRow(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetAwardDocument %s/%s: %w", collection, id, err)
	}

	var raw dto.AwardDocument
	if err := sonic.Unmarshal(row.Data, &raw); err != nil {
		return nil, fmt.Errorf("store.GetAwardDocument %s/%s: %w", collection, id, err)
	}

	doc := raw.Normalize(row.ID)
	return &doc, nil
}

func (s *store) PutAwardDocument(ctx context.Context, collection string, doc domain.AwardDocument) error {
	data, err := sonic.Marshal(dto.NewAwardDocument(doc))
	if err != nil {
		return fmt.Errorf("store.PutAwardDocument: %w", err)
	}

	if err := s.upsert(ctx, collection, doc.ID, data); err != nil {
		logger.Errorf(ctx, "PutAwardDocument %s/%s: %s", collection, doc.ID, err.Error())
		return fmt.Errorf("store.PutAwardDocument: %w", err)
	}
	return nil
}

func (s *store) GetVendor(ctx context.Context, collection, name string) (*domain.VendorProfile, error) {
	row, err := s.getRow(ctx, collection, name)
	if err != nil {
		return nil, fmt.Errorf("store.GetVendor %s/%s: %w", collection, name, err)
	}

	var raw dto.VendorProfile
	if err := sonic.Unmarshal(row.Data, &raw); err != nil {
		return nil, fmt.Errorf("store.GetVendor %s/%s: %w", collection, name, err)
	}

	v := raw.Normalize(row.ID)
	return &v, nil
}

func (s *store) PutVendor(ctx context.Context, collection string, vendor domain.VendorProfile) error {
	data, err := sonic.Marshal(dto.NewVendorProfile(vendor))
	if err != nil {
		return fmt.Errorf("store.PutVendor: %w", err)
	}

	if err := s.upsert(ctx, collection, vendor.Name, data); err != nil {
		return fmt.Errorf("store.PutVendor: %w", err)
	}
	return nil
}

func (s *store) ListVendors(ctx context.Context, collection string) ([]domain.VendorProfile, error) {
	query := builder().Select(documentColumns...).
		From(tableDocuments).
		Where(sq.Eq{"collection": collection}).
		OrderBy("id")

	rows, err := xpgx.Selectx[documentRow](ctx, s.pool, query)
	if err != nil {
		return nil, fmt.Errorf("store.ListVendors: %w", wrapErr(err))
	}

	vendors := make([]domain.VendorProfile, 0, len(rows))
	for _, row := range rows {
		var raw dto.VendorProfile
		if err := sonic.Unmarshal(row.Data, &raw); err != nil {
			logger.Warnf(ctx, "skip vendor %s/%s: %s", row.Collection, row.ID, err.Error())
			continue
		}
		vendors = append(vendors, raw.Normalize(row.ID))
	}
	return vendors, nil
}

func (s *store) getRow(ctx context.Context, collection, id string) (documentRow, error) {
	query := builder().Select(documentColumns...).
		From(tableDocuments).
		Where(sq.And{
			sq.Eq{"collection": collection},
			sq.Eq{"id": id},
		})

	row, err := xpgx.Getx[documentRow](ctx, s.pool, query)
	if err != nil {
		return documentRow{}, wrapErr(err)
	}
	return row, nil
}

func (s *store) upsert(ctx context.Context, collection, id string, data []byte) error {
	query := builder().Insert(tableDocuments).
		Columns("collection", "id", "data").
		Values(collection, id, data).
		Suffix(`
on conflict (collection, id)
do update
set
	data = excluded.data,
	updated_at = now()`)

	_, err := s.pool.Execx(ctx, query)
	return err
}
