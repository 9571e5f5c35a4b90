package schedule

import (
	"github.com/joonho-lee-free/tkshcool/internal/domain"
	"github.com/shopspring/decimal"
)

// InvoiceLines collects the items of doc delivered on date. Items are deduplicated
// by name and the first occurrence wins.
func InvoiceLines(doc domain.AwardDocument, date string, policy domain.SupplyPolicy) ([]domain.InvoiceLine, decimal.Decimal) {
	var (
		lines = make([]domain.InvoiceLine, 0, len(doc.Items))
		seen  = make(map[string]struct{}, len(doc.Items))
		total = decimal.Zero
	)

	for _, item := range doc.Items {
		del, ok := item.Deliveries[date]
		if !ok {
			continue
		}
		if _, dup := seen[item.Name]; dup {
			continue
		}
		seen[item.Name] = struct{}{}

		amount := del.Amount(policy)
		lines = append(lines, domain.InvoiceLine{
			Item:         item.Name,
			Spec:         item.Spec,
			Quantity:     del.Quantity,
			UnitPrice:    del.UnitPrice,
			SupplyAmount: amount,
		})
		total = total.Add(amount)
	}

	return lines, total
}

// BuildInvoice assembles the 거래명세표 of doc's ordering party for date.
func BuildInvoice(doc domain.AwardDocument, supplier domain.VendorProfile, date string, policy domain.SupplyPolicy) domain.Invoice {
	lines, total := InvoiceLines(doc, date, policy)
	if supplier.Name == "" {
		supplier.Name = doc.Vendor
	}

	return domain.Invoice{
		Date: date,
		Receiver: domain.Receiver{
			OrderingParty: doc.OrderingParty,
			Business:      doc.Business,
		},
		Supplier: supplier,
		Lines:    lines,
		Total:    total,
	}
}
