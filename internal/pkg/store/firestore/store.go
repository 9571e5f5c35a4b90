// Package firestore reads and writes school and vendor documents in Cloud Firestore.
package firestore

import (
	gfs "cloud.google.com/go/firestore"
	"context"
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/domain/dto"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"sort"
)

const (
	yearMonthField = "연월"

	// prefixEnd sorts after every character used in document ids.
	prefixEnd = "\uf8ff"
)

type Store struct {
	client *gfs.Client
}

var _ store.Store = (*Store)(nil)

// Open creates a client for projectID. An empty credentialsFile uses the ambient
// application default credentials.
func Open(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gfs.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.Open: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) ListAwardDocuments(ctx context.Context, opts store.ListAwardDocumentsOpts) ([]domain.AwardDocument, error) {
	coll := s.client.Collection(opts.Collection)

	var queries []gfs.Query
	if opts.IDPrefix != nil {
		queries = append(queries, coll.
			Where(gfs.DocumentID, ">=", coll.Doc(*opts.IDPrefix)).
			Where(gfs.DocumentID, "<", coll.Doc(*opts.IDPrefix+prefixEnd)))
	}
	if opts.YearMonth != nil {
		queries = append(queries, coll.Where(yearMonthField, "==", *opts.YearMonth))
	}
	if len(queries) == 0 {
		queries = append(queries, coll.Query)
	}

	seen := make(map[string]struct{})
	var docs []domain.AwardDocument
	for _, q := range queries {
		snaps, err := q.Documents(ctx).GetAll()
		if err != nil {
			logger.Errorf(ctx, "ListAwardDocuments %s: %s", opts.Collection, err.Error())
			return nil, fmt.Errorf("firestore.ListAwardDocuments: %w", wrapErr(err))
		}

		for _, snap := range snaps {
			if _, ok := seen[snap.Ref.ID]; ok {
				continue
			}
			seen[snap.Ref.ID] = struct{}{}

			var raw dto.AwardDocument
			if err := snap.DataTo(&raw); err != nil {
				logger.Warnf(ctx, "skip document %s/%s: %s", opts.Collection, snap.Ref.ID, err.Error())
				continue
			}
			docs = append(docs, raw.Normalize(snap.Ref.ID))
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *Store) GetAwardDocument(ctx context.Context, collection, id string) (*domain.AwardDocument, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore.GetAwardDocument %s/%s: %w", collection, id, wrapErr(err))
	}

	var raw dto.AwardDocument
	if err := snap.DataTo(&raw); err != nil {
		return nil, fmt.Errorf("firestore.GetAwardDocument %s/%s: %w", collection, id, err)
	}

	doc := raw.Normalize(snap.Ref.ID)
	return &doc, nil
}

// PutAwardDocument replaces the whole document, items included.
func (s *Store) PutAwardDocument(ctx context.Context, collection string, doc domain.AwardDocument) error {
	if _, err := s.client.Collection(collection).Doc(doc.ID).Set(ctx, dto.NewAwardDocument(doc)); err != nil {
		logger.Errorf(ctx, "PutAwardDocument %s/%s: %s", collection, doc.ID, err.Error())
		return fmt.Errorf("firestore.PutAwardDocument: %w", err)
	}
	return nil
}

func (s *Store) GetVendor(ctx context.Context, collection, name string) (*domain.VendorProfile, error) {
	snap, err := s.client.Collection(collection).Doc(name).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore.GetVendor %s/%s: %w", collection, name, wrapErr(err))
	}

	var raw dto.VendorProfile
	if err := snap.DataTo(&raw); err != nil {
		return nil, fmt.Errorf("firestore.GetVendor %s/%s: %w", collection, name, err)
	}

	v := raw.Normalize(snap.Ref.ID)
	return &v, nil
}

func (s *Store) PutVendor(ctx context.Context, collection string, vendor domain.VendorProfile) error {
	if _, err := s.client.Collection(collection).Doc(vendor.Name).Set(ctx, dto.NewVendorProfile(vendor)); err != nil {
		return fmt.Errorf("firestore.PutVendor: %w", err)
	}
	return nil
}

func (s *Store) ListVendors(ctx context.Context, collection string) ([]domain.VendorProfile, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore.ListVendors: %w", wrapErr(err))
	}

	vendors := make([]domain.VendorProfile, 0, len(snaps))
	for _, snap := range snaps {
		var raw dto.VendorProfile
		if err := snap.DataTo(&raw); err != nil {
			logger.Warnf(ctx, "skip vendor %s/%s: %s", collection, snap.Ref.ID, err.Error())
			continue
		}
		vendors = append(vendors, raw.Normalize(snap.Ref.ID))
	}
	return vendors, nil
}

func wrapErr(err error) error {
	if status.Code(err) == codes.NotFound {
		return constants.ErrDBNotFound
	}
	return err
}
