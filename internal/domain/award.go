package domain

import (
	"github.com/shopspring/decimal"
	"strings"
)

// AwardDocument is one ordering party's awarded deliveries for one month, already
// normalised from the stored shape.
type AwardDocument struct {
	ID            string      `json:"id"`
	YearMonth     string      `json:"year_month,omitempty"`
	OrderingParty string      `json:"ordering_party"`
	Vendor        string      `json:"vendor"`
	Business      Business    `json:"business"`
	Items         []ItemEntry `json:"items"`
}

// Business is the registration block printed on invoices.
type Business struct {
	RegistrationNo string `json:"registration_no,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Representative string `json:"representative,omitempty"`
}

// ItemEntry is one awarded item. An empty Vendor means the document's vendor.
type ItemEntry struct {
	No         string                    `json:"no,omitempty"`
	Name       string                    `json:"name"`
	Spec       string                    `json:"spec,omitempty"`
	Attributes string                    `json:"attributes,omitempty"`
	Vendor     string                    `json:"vendor,omitempty"`
	UnitPrice  *decimal.Decimal          `json:"unit_price,omitempty"`
	Deliveries map[string]DeliveryOnDate `json:"deliveries"`
}

// VendorOf returns the vendor that supplies it within doc.
func (doc AwardDocument) VendorOf(it ItemEntry) string {
	if it.Vendor != "" {
		return it.Vendor
	}
	return doc.Vendor
}

// Merge folds next into doc the way a re-upload does: next's header fields win when
// set, items are matched by vendor, number, name and spec, a matched item is
// replaced and the rest are appended. Every item keeps its own vendor.
func (doc AwardDocument) Merge(next AwardDocument) AwardDocument {
	res := AwardDocument{
		ID:            firstSet(next.ID, doc.ID),
		YearMonth:     firstSet(next.YearMonth, doc.YearMonth),
		OrderingParty: firstSet(next.OrderingParty, doc.OrderingParty),
		Vendor:        firstSet(next.Vendor, doc.Vendor),
		Business:      doc.Business,
		Items:         make([]ItemEntry, 0, len(doc.Items)+len(next.Items)),
	}
	if next.Business != (Business{}) {
		res.Business = next.Business
	}

	index := make(map[string]int, len(doc.Items)+len(next.Items))
	add := func(src AwardDocument, it ItemEntry) {
		it.Vendor = src.VendorOf(it)
		key := strings.Join([]string{it.Vendor, it.No, it.Name, it.Spec}, "\x00")
		if i, ok := index[key]; ok {
			res.Items[i] = it
			return
		}
		index[key] = len(res.Items)
		res.Items = append(res.Items, it)
	}
	for _, it := range doc.Items {
		add(doc, it)
	}
	for _, it := range next.Items {
		add(next, it)
	}
	return res
}

func firstSet(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// DeliveryOnDate is one item's delivery on one date. SupplyAmount is nil when the
// stored document carries no amount.
type DeliveryOnDate struct {
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	SupplyAmount *decimal.Decimal `json:"supply_amount,omitempty"`
}

// VendorProfile is the supplier block of an invoice.
type VendorProfile struct {
	Name           string `json:"name"`
	Representative string `json:"representative,omitempty"`
	Phone          string `json:"phone,omitempty"`
	RegistrationNo string `json:"registration_no,omitempty"`
	Address        string `json:"address,omitempty"`
}

// SupplyPolicy decides whether a stored supply amount is trusted.
type SupplyPolicy string

const (
	SupplyStored    SupplyPolicy = "stored"
	SupplyRecompute SupplyPolicy = "recompute"
)

// ParseSupplyPolicy defaults to SupplyStored for anything it does not recognise.
func ParseSupplyPolicy(s string) SupplyPolicy {
	if SupplyPolicy(s) == SupplyRecompute {
		return SupplyRecompute
	}
	return SupplyStored
}

// Amount returns the supply amount of d under the given policy. Computed amounts are
// rounded to whole won.
func (d DeliveryOnDate) Amount(policy SupplyPolicy) decimal.Decimal {
	if policy != SupplyRecompute && d.SupplyAmount != nil {
		return *d.SupplyAmount
	}
	return d.Quantity.Mul(d.UnitPrice).Round(0)
}
