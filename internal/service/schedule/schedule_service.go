package schedule

import (
	"context"
	"errors"
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/logger"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"github.com/joonho-lee-free/tkshcool/internal/schedule"
	"strings"
)

type Options struct {
	SchoolCollection string
	VendorCollection string
	Vendors          domain.VendorTable
	UnitSuffix       string
	SupplyPolicy     domain.SupplyPolicy
}

type Service struct {
	store store.Store
	opts  Options
}

func NewScheduleService(store store.Store, opts Options) *Service {
	return &Service{store: store, opts: opts}
}

// VendorTable is the shared priority and colour table.
func (s *Service) VendorTable() domain.VendorTable {
	return s.opts.Vendors
}

// LoadMonth fetches the month's documents by id prefix or year-month field.
func (s *Service) LoadMonth(ctx context.Context, ym domain.YearMonth) ([]domain.AwardDocument, error) {
	prefix, month := ym.DocIDPrefix(), ym.String()
	docs, err := s.store.ListAwardDocuments(ctx, store.ListAwardDocumentsOpts{
		Collection: s.opts.SchoolCollection,
		IDPrefix:   &prefix,
		YearMonth:  &month,
	})
	if err != nil {
		return nil, fmt.Errorf("schedule.LoadMonth %s: %w", month, err)
	}

	logger.Debugf(ctx, "loaded %d documents for %s", len(docs), month)
	return docs, nil
}

func (s *Service) flatten(ctx context.Context, ym domain.YearMonth) (schedule.ByDate, error) {
	docs, err := s.LoadMonth(ctx, ym)
	if err != nil {
		return nil, err
	}
	return schedule.Flatten(docs, ym, s.opts.SupplyPolicy), nil
}

func (s *Service) Calendar(ctx context.Context, ym domain.YearMonth, vendor string, mode domain.CalendarMode) (*domain.Calendar, error) {
	byDate, err := s.flatten(ctx, ym)
	if err != nil {
		return nil, err
	}

	cal := schedule.BuildCalendar(ym, byDate, vendor, schedule.ProjectOpts{
		Mode:       mode,
		UnitSuffix: s.opts.UnitSuffix,
		Vendors:    s.opts.Vendors,
	})
	return &cal, nil
}

// Vendors lists the filter choices for the month, "ALL" first.
func (s *Service) Vendors(ctx context.Context, ym domain.YearMonth) ([]string, error) {
	docs, err := s.LoadMonth(ctx, ym)
	if err != nil {
		return nil, err
	}
	return schedule.Vendors(docs, ym), nil
}

func (s *Service) ExportRows(ctx context.Context, ym domain.YearMonth, vendor string) ([]domain.ExportRow, error) {
	byDate, err := s.flatten(ctx, ym)
	if err != nil {
		return nil, err
	}
	return schedule.ExportRows(byDate, vendor, s.opts.Vendors), nil
}

func (s *Service) OrderSheet(ctx context.Context, ym domain.YearMonth, vendor string) (*domain.OrderSheet, error) {
	byDate, err := s.flatten(ctx, ym)
	if err != nil {
		return nil, err
	}

	sheet := schedule.BuildOrderSheet(ym, byDate, vendor)
	return &sheet, nil
}

// Invoice builds the school's invoice for date. The supplier profile is looked up by
// the document's vendor; a missing profile only leaves the supplier block with the
// vendor name.
func (s *Service) Invoice(ctx context.Context, ym domain.YearMonth, school, date string) (*domain.Invoice, error) {
	school = strings.TrimSpace(school)

	doc, err := s.schoolDocument(ctx, ym, school)
	if err != nil {
		return nil, err
	}

	var supplier domain.VendorProfile
	profile, err := s.store.GetVendor(ctx, s.opts.VendorCollection, doc.Vendor)
	switch {
	case err == nil:
		supplier = *profile
	case !errors.Is(err, constants.ErrDBNotFound):
		logger.Warnf(ctx, "invoice vendor profile %s: %s", doc.Vendor, err.Error())
	}

	inv := schedule.BuildInvoice(*doc, supplier, date, s.opts.SupplyPolicy)
	if len(inv.Lines) == 0 {
		return nil, fmt.Errorf("schedule.Invoice %s %s: %w", school, date, constants.ErrNoData)
	}
	return &inv, nil
}

// schoolDocument looks the document up by its conventional id and falls back to
// scanning the month for a document whose ordering party matches.
func (s *Service) schoolDocument(ctx context.Context, ym domain.YearMonth, school string) (*domain.AwardDocument, error) {
	doc, err := s.store.GetAwardDocument(ctx, s.opts.SchoolCollection, ym.DocID(school))
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, constants.ErrDBNotFound) {
		return nil, fmt.Errorf("schedule.Invoice: %w", err)
	}

	docs, err := s.LoadMonth(ctx, ym)
	if err != nil {
		return nil, fmt.Errorf("schedule.Invoice: %w", err)
	}
	for i := range docs {
		if docs[i].OrderingParty == school && schedule.InMonth(docs[i], ym) {
			return &docs[i], nil
		}
	}
	return nil, fmt.Errorf("schedule.Invoice %s: %w", school, constants.ErrNoData)
}
