// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing renders GetData business records for the console.
package listing

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/getdata-demo/pkg/types"
)

const (
	unknownCompany = "<Unknown>"
	noAddress      = "<No address provided>"
	osmURLFormat   = "https://www.openstreetmap.org/?mlat=%s&mlon=%s"
)

// FormatAddress joins the street line, the extra address line, the
// postcode/city line and the country into one comma-separated string.
// It returns "" when the record carries no address fields.
func FormatAddress(r types.Record) string {
	var parts []string

	street, hasStreet := r.Get("addressStreet")
	number, hasNumber := r.Get("addressHouseNumber")
	switch {
	case hasStreet && hasNumber:
		parts = append(parts, street+" "+number)
	case hasStreet:
		parts = append(parts, street)
	}

	if extra, ok := r.Get("addressExtra"); ok {
		parts = append(parts, extra)
	}

	var locality []string
	for _, key := range []string{"postCode", "city"} {
		if v, ok := r.Get(key); ok {
			locality = append(locality, v)
		}
	}
	if len(locality) > 0 {
		parts = append(parts, strings.Join(locality, " "))
	}

	if country, ok := r.First("countryName", "country"); ok {
		parts = append(parts, country)
	}

	return strings.Join(parts, ", ")
}

// ContactFields yields the phone, website and email lines present in r,
// in that order. Phone falls back to phoneOrMobile.
func ContactFields(r types.Record) iter.Seq[string] {
	return func(yield func(string) bool) {
		if phone, ok := r.First("phone", "phoneOrMobile"); ok {
			if !yield("Phone: " + phone) {
				return
			}
		}
		if website, ok := r.Get("website"); ok {
			if !yield("Website: " + website) {
				return
			}
		}
		if email, ok := r.Get("email"); ok {
			yield("Email: " + email)
		}
	}
}

// OpenStreetMapURL returns a map link for r, or "" unless both latitude and
// longitude are present.
func OpenStreetMapURL(r types.Record) string {
	lat, okLat := r.Get("latitude")
	lon, okLon := r.Get("longitude")
	if !okLat || !okLon {
		return ""
	}
	return fmt.Sprintf(osmURLFormat, lat, lon)
}

// Printer writes records as indented text blocks.
type Printer struct {
	w io.Writer

	// header is nil for plain output.
	header *lipgloss.Style
}

// NewPrinter returns a Printer writing to w. When styled is true, result
// headers are rendered bold for terminal output.
func NewPrinter(w io.Writer, styled bool) *Printer {
	p := &Printer{w: w}
	if styled {
		s := lipgloss.NewRenderer(w).NewStyle().Bold(true)
		p.header = &s
	}
	return p
}

// PrintResults writes one block per record, numbered from 1, each followed
// by a blank line.
func (p *Printer) PrintResults(records []types.Record) {
	for i, r := range records {
		p.printRecord(i+1, r)
	}
}

func (p *Printer) printRecord(n int, r types.Record) {
	heading := fmt.Sprintf("Result %d:", n)
	if p.header != nil {
		heading = p.header.Render(heading)
	}
	fmt.Fprintln(p.w, heading)

	if id, ok := r.Get("uniqueID"); ok {
		p.field("UniqueID", id)
	}

	company, ok := r.First("companyName", "businessName")
	if !ok {
		company = unknownCompany
	}
	p.field("Company", company)

	address := FormatAddress(r)
	if address == "" {
		address = noAddress
	}
	p.field("Address", address)

	for line := range ContactFields(r) {
		fmt.Fprintf(p.w, "  %s\n", line)
	}

	if osm := OpenStreetMapURL(r); osm != "" {
		lat, _ := r.Get("latitude")
		lon, _ := r.Get("longitude")
		p.field("Location", lat+", "+lon)
		p.field("OpenStreetMap", osm)
	}

	if activity, ok := r.First("internationalLabel01", "altInternationalLabel01"); ok {
		p.field("Activity", activity)
	}

	fmt.Fprintln(p.w)
}

func (p *Printer) field(label, value string) {
	fmt.Fprintf(p.w, "  %s: %s\n", label, value)
}
