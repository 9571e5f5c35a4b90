package inmem

import (
	"context"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

const seed = `{
  "schools": {
    "school": {
      "2506_가람초 ": {
        "발주처": "가람초 ",
        "납찰기업": "이가에프엔비",
        "사업자번호": "123-45-67890",
        "품목": [
          {"no": 1, "식품명": "쌀", "단가": 3500, "납품": {
            "2025-06-10": {"수량": 2, "공급가액": 7000},
            "2025-06-11": {"수량": 1, "단가": 3000, "금액": 2900}
          }}
        ]
      },
      "legacy": {"연월": "2025-06", "발주처": "하늘초", "낙찰기업": "Acme", "품목": []},
      "2507_가람초": {"발주처": "가람초", "낙찰기업": "이가에프엔비", "품목": []}
    }
  },
  "vendors": {
    "vendor": {
      "이가에프엔비": {"상호명": "(주)이가에프엔비", "대표자": "홍길동", "사업자등록번호": "111-11-11111"}
    }
  }
}`

func strPtr(s string) *string { return &s }

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.Load(strings.NewReader(seed)))
	return s
}

func TestLoad_Normalizes(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	doc, err := s.GetAwardDocument(ctx, "school", "2506_가람초")
	require.NoError(t, err)
	assert.Equal(t, "가람초", doc.OrderingParty)
	assert.Equal(t, "이가에프엔비", doc.Vendor)
	assert.Equal(t, "123-45-67890", doc.Business.RegistrationNo)

	require.Len(t, doc.Items, 1)
	it := doc.Items[0]
	assert.Equal(t, "1", it.No)

	first := it.Deliveries["2025-06-10"]
	assert.Equal(t, "2", first.Quantity.String())
	assert.Equal(t, "3500", first.UnitPrice.String())
	require.NotNil(t, first.SupplyAmount)
	assert.Equal(t, "7000", first.SupplyAmount.String())

	second := it.Deliveries["2025-06-11"]
	assert.Equal(t, "3000", second.UnitPrice.String())
	require.NotNil(t, second.SupplyAmount)
	assert.Equal(t, "2900", second.SupplyAmount.String())

	v, err := s.GetVendor(ctx, "vendor", "이가에프엔비")
	require.NoError(t, err)
	assert.Equal(t, "(주)이가에프엔비", v.Name)
	assert.Equal(t, "홍길동", v.Representative)
	assert.Equal(t, "111-11-11111", v.RegistrationNo)
}

func TestListAwardDocuments(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	tests := []struct {
		name string
		opts store.ListAwardDocumentsOpts
		want []string
	}{
		{name: "all", opts: store.ListAwardDocumentsOpts{Collection: "school"}, want: []string{"2506_가람초", "2507_가람초", "legacy"}},
		{name: "prefix", opts: store.ListAwardDocumentsOpts{Collection: "school", IDPrefix: strPtr("2506_")}, want: []string{"2506_가람초"}},
		{
			name: "prefix or month",
			opts: store.ListAwardDocumentsOpts{Collection: "school", IDPrefix: strPtr("2506_"), YearMonth: strPtr("2025-06")},
			want: []string{"2506_가람초", "legacy"},
		},
		{name: "other collection", opts: store.ListAwardDocumentsOpts{Collection: "nope"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := s.ListAwardDocuments(ctx, tt.opts)
			require.NoError(t, err)
			ids := make([]string, 0, len(docs))
			for _, d := range docs {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPutAndMiss(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetAwardDocument(ctx, "school", "2506_x")
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
	_, err = s.GetVendor(ctx, "vendor", "x")
	assert.ErrorIs(t, err, constants.ErrDBNotFound)

	require.NoError(t, s.PutAwardDocument(ctx, "school", domain.AwardDocument{ID: "2506_x", OrderingParty: "x"}))
	require.NoError(t, s.PutAwardDocument(ctx, "school", domain.AwardDocument{ID: "2506_x", OrderingParty: "y"}))
	doc, err := s.GetAwardDocument(ctx, "school", "2506_x")
	require.NoError(t, err)
	assert.Equal(t, "y", doc.OrderingParty)

	require.NoError(t, s.PutVendor(ctx, "vendor", domain.VendorProfile{Name: "b"}))
	require.NoError(t, s.PutVendor(ctx, "vendor", domain.VendorProfile{Name: "a"}))
	vendors, err := s.ListVendors(ctx, "vendor")
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, "a", vendors[0].Name)
}
