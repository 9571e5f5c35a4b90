package dto

import (
	"fmt"
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/shopspring/decimal"
	"strings"
)

// AwardDocument is the stored shape of a school document. Several generations of
// upload scripts wrote it, so most fields have an alternate spelling.
type AwardDocument struct {
	YearMonth      string      `firestore:"연월,omitempty" json:"연월,omitempty"`
	OrderingParty  string      `firestore:"발주처" json:"발주처"`
	Vendor         string      `firestore:"낙찰기업,omitempty" json:"낙찰기업,omitempty"`
	VendorAlt      string      `firestore:"납찰기업,omitempty" json:"납찰기업,omitempty"`
	RegistrationNo string      `firestore:"사업자등록번호,omitempty" json:"사업자등록번호,omitempty"`
	BusinessNo     string      `firestore:"사업자번호,omitempty" json:"사업자번호,omitempty"`
	Address        string      `firestore:"사업장주소,omitempty" json:"사업장주소,omitempty"`
	Phone          string      `firestore:"대표전화번호,omitempty" json:"대표전화번호,omitempty"`
	Representative string      `firestore:"대표,omitempty" json:"대표,omitempty"`
	Items          []ItemEntry `firestore:"품목" json:"품목"`
}

type ItemEntry struct {
	No            interface{}               `firestore:"no,omitempty" json:"no,omitempty"`
	OrderingParty string                    `firestore:"발주처,omitempty" json:"발주처,omitempty"`
	Name          string                    `firestore:"식품명" json:"식품명"`
	Spec          string                    `firestore:"규격,omitempty" json:"규격,omitempty"`
	Attributes    string                    `firestore:"속성정보,omitempty" json:"속성정보,omitempty"`
	Vendor        string                    `firestore:"낙찰기업,omitempty" json:"낙찰기업,omitempty"`
	UnitPrice     *float64                  `firestore:"단가,omitempty" json:"단가,omitempty"`
	TotalQuantity *float64                  `firestore:"총량,omitempty" json:"총량,omitempty"`
	Deliveries    map[string]DeliveryOnDate `firestore:"납품" json:"납품"`
}

type DeliveryOnDate struct {
	Quantity     *float64 `firestore:"수량,omitempty" json:"수량,omitempty"`
	UnitPrice    *float64 `firestore:"계약단가,omitempty" json:"계약단가,omitempty"`
	UnitPriceAlt *float64 `firestore:"단가,omitempty" json:"단가,omitempty"`
	SupplyAmount *float64 `firestore:"공급가액,omitempty" json:"공급가액,omitempty"`
	SupplyAmtAlt *float64 `firestore:"금액,omitempty" json:"금액,omitempty"`
}

// VendorProfile is the stored shape of a vendor document.
type VendorProfile struct {
	Name           string `firestore:"상호명" json:"상호명"`
	Representative string `firestore:"대표자,omitempty" json:"대표자,omitempty"`
	Phone          string `firestore:"대표전화번호,omitempty" json:"대표전화번호,omitempty"`
	BusinessNo     string `firestore:"사업자번호,omitempty" json:"사업자번호,omitempty"`
	RegistrationNo string `firestore:"사업자등록번호,omitempty" json:"사업자등록번호,omitempty"`
	Address        string `firestore:"주소,omitempty" json:"주소,omitempty"`
}

// Normalize resolves every alternate spelling once so nothing downstream has to.
func (d *AwardDocument) Normalize(id string) domain.AwardDocument {
	doc := domain.AwardDocument{
		ID:            strings.TrimSpace(id),
		YearMonth:     strings.TrimSpace(d.YearMonth),
		OrderingParty: strings.TrimSpace(d.OrderingParty),
		Vendor:        strings.TrimSpace(firstNonEmpty(d.Vendor, d.VendorAlt)),
		Business: domain.Business{
			RegistrationNo: firstNonEmpty(d.RegistrationNo, d.BusinessNo),
			Address:        d.Address,
			Phone:          d.Phone,
			Representative: d.Representative,
		},
		Items: make([]domain.ItemEntry, 0, len(d.Items)),
	}

	for _, it := range d.Items {
		if doc.OrderingParty == "" {
			doc.OrderingParty = strings.TrimSpace(it.OrderingParty)
		}
		doc.Items = append(doc.Items, it.normalize())
	}

	return doc
}

func (it *ItemEntry) normalize() domain.ItemEntry {
	entry := domain.ItemEntry{
		No:         noString(it.No),
		Name:       strings.TrimSpace(it.Name),
		Spec:       strings.TrimSpace(it.Spec),
		Attributes: strings.TrimSpace(it.Attributes),
		Vendor:     strings.TrimSpace(it.Vendor),
		UnitPrice:  decimalPtr(it.UnitPrice),
		Deliveries: make(map[string]domain.DeliveryOnDate, len(it.Deliveries)),
	}

	for date, del := range it.Deliveries {
		d := domain.DeliveryOnDate{
			Quantity:     decimalOrZero(del.Quantity),
			SupplyAmount: decimalPtr(firstNonNil(del.SupplyAmount, del.SupplyAmtAlt)),
		}
		if p := firstNonNil(del.UnitPrice, del.UnitPriceAlt, it.UnitPrice); p != nil {
			d.UnitPrice = decimal.NewFromFloat(*p)
		}
		entry.Deliveries[date] = d
	}

	return entry
}

// NewAwardDocument converts a domain document back into the stored shape.
func NewAwardDocument(doc domain.AwardDocument) *AwardDocument {
	d := &AwardDocument{
		YearMonth:      doc.YearMonth,
		OrderingParty:  doc.OrderingParty,
		Vendor:         doc.Vendor,
		RegistrationNo: doc.Business.RegistrationNo,
		Address:        doc.Business.Address,
		Phone:          doc.Business.Phone,
		Representative: doc.Business.Representative,
		Items:          make([]ItemEntry, 0, len(doc.Items)),
	}

	for _, it := range doc.Items {
		item := ItemEntry{
			Name:       it.Name,
			Spec:       it.Spec,
			Attributes: it.Attributes,
			Vendor:     it.Vendor,
			UnitPrice:  floatPtr(it.UnitPrice),
			Deliveries: make(map[string]DeliveryOnDate, len(it.Deliveries)),
		}
		if it.No != "" {
			item.No = it.No
		}

		total := decimal.Zero
		for date, del := range it.Deliveries {
			q, _ := del.Quantity.Float64()
			p, _ := del.UnitPrice.Float64()
			item.Deliveries[date] = DeliveryOnDate{
				Quantity:     &q,
				UnitPrice:    &p,
				SupplyAmount: floatPtr(del.SupplyAmount),
			}
			total = total.Add(del.Quantity)
		}
		item.TotalQuantity = floatPtr(&total)

		d.Items = append(d.Items, item)
	}

	return d
}

func (v *VendorProfile) Normalize(name string) domain.VendorProfile {
	return domain.VendorProfile{
		Name:           strings.TrimSpace(firstNonEmpty(v.Name, name)),
		Representative: v.Representative,
		Phone:          v.Phone,
		RegistrationNo: firstNonEmpty(v.BusinessNo, v.RegistrationNo),
		Address:        v.Address,
	}
}

func NewVendorProfile(v domain.VendorProfile) *VendorProfile {
	return &VendorProfile{
		Name:           v.Name,
		Representative: v.Representative,
		Phone:          v.Phone,
		BusinessNo:     v.RegistrationNo,
		Address:        v.Address,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstNonNil(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

func decimalOrZero(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

func noString(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(n)
	case float64:
		return decimal.NewFromFloat(n).String()
	case int64:
		return fmt.Sprint(n)
	default:
		return strings.TrimSpace(fmt.Sprint(n))
	}
}
