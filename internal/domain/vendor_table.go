package domain

import "strings"

// VendorTable holds the vendor ordering and display colours. Both the schedule
// ordering and the page styling read from the same table.
type VendorTable struct {
	Priority     []string          `json:"priority"`
	Colors       map[string]string `json:"colors"`
	DefaultColor string            `json:"default_color"`
}

// Rank is the vendor's position in the priority list, or -1 when it is not listed.
func (t VendorTable) Rank(vendor string) int {
	vendor = strings.TrimSpace(vendor)
	for i, v := range t.Priority {
		if strings.TrimSpace(v) == vendor {
			return i
		}
	}
	return -1
}

// Color is the vendor's display colour. Keys are also matched lower-cased since
// viper lower-cases map keys read from config files.
func (t VendorTable) Color(vendor string) string {
	vendor = strings.TrimSpace(vendor)
	if c, ok := t.Colors[vendor]; ok {
		return c
	}
	if c, ok := t.Colors[strings.ToLower(vendor)]; ok {
		return c
	}
	return t.DefaultColor
}
