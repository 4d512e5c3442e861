// Package property contains property resolution use cases.
package property

import (
	"regexp"
	"strings"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// trailingCityStateZip matches ", City, ST, 12345" style suffixes so
// addresses can be compared on the street line alone.
var trailingCityStateZip = regexp.MustCompile(`,\s*[A-Za-z\s]+,\s*[A-Z]{2},?\s*\d{5}.*$`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Street suffix and compass canonicalizations applied during address
// normalization. Longer forms collapse to the abbreviations the ledger uses.
var addressReplacements = []struct{ from, to string }{
	{" STREET", " ST"},
	{" ROAD", " RD"},
	{" AVENUE", " AVE"},
	{" DRIVE", " DR"},
	{" COURT", " CT"},
	{" PLACE", " PL"},
	{" LANE", " LN"},
	{" CIRCLE", " CIR"},
	{" WEST", " W"},
	{" EAST", " E"},
	{" NORTH", " N"},
	{" SOUTH", " S"},
}

// NormalizeAddress canonicalizes an address for containment comparison:
// trailing city/state/zip stripped, uppercased, whitespace collapsed,
// suffixes and compass words abbreviated.
func NormalizeAddress(addr string) string {
	s := trailingCityStateZip.ReplaceAllString(strings.TrimSpace(addr), "")
	s = strings.ToUpper(s)
	s = whitespaceRun.ReplaceAllString(s, " ")

	// Pad so edge tokens see the replacements that require surrounding spaces.
	s = " " + s + " "
	for _, r := range addressReplacements {
		s = strings.ReplaceAll(s, r.from+" ", r.to+" ")
	}
	return strings.TrimSpace(s)
}

// Resolver resolves free-form property references from source files to
// canonical properties. It works over an in-memory snapshot; a run loads
// properties once and resolves everything against that.
type Resolver struct {
	properties []*entity.Property
}

// NewResolver creates a Resolver over the given properties.
func NewResolver(properties []*entity.Property) *Resolver {
	return &Resolver{properties: properties}
}

// ResolveBuilding resolves a manager-side building name. Tried in order:
// exact name equality, street containment in the building name, canonical
// name containment in the building name. Returns nil when nothing matches.
func (r *Resolver) ResolveBuilding(buildingName string) *entity.Property {
	name := strings.ToLower(strings.TrimSpace(buildingName))
	if name == "" {
		return nil
	}

	for _, p := range r.properties {
		if strings.ToLower(strings.TrimSpace(p.Name)) == name {
			return p
		}
	}

	for _, p := range r.properties {
		street := strings.ToLower(strings.TrimSpace(p.Street))
		// Short street fragments like "4604" match too many buildings.
		if len(street) > 4 && strings.Contains(name, street) {
			return p
		}
	}

	for _, p := range r.properties {
		pn := strings.ToLower(strings.TrimSpace(p.Name))
		if pn != "" && strings.Contains(name, pn) {
			return p
		}
	}

	return nil
}

// ResolveAddress resolves a full street address via normalized containment
// in either direction against the property's name, display address and
// street line. Returns nil when nothing matches.
func (r *Resolver) ResolveAddress(addr string) *entity.Property {
	norm := NormalizeAddress(addr)
	if norm == "" {
		return nil
	}

	for _, p := range r.properties {
		for _, candidate := range []string{p.DisplayAddress, p.Name, p.Street} {
			cn := NormalizeAddress(candidate)
			if cn == "" {
				continue
			}
			if strings.Contains(norm, cn) || strings.Contains(cn, norm) {
				return p
			}
		}
	}

	return nil
}

// ResolveLoanNumber resolves a loan number by containment in either
// direction, since statements sometimes mask leading digits.
func (r *Resolver) ResolveLoanNumber(loan string) *entity.Property {
	loan = strings.TrimSpace(loan)
	if loan == "" {
		return nil
	}

	for _, p := range r.properties {
		recorded := strings.TrimSpace(p.LoanNumber)
		if recorded == "" {
			continue
		}
		if strings.Contains(loan, recorded) || strings.Contains(recorded, loan) {
			return p
		}
	}

	return nil
}

// ByName returns the property with the given canonical name, or nil.
func (r *Resolver) ByName(name string) *entity.Property {
	for _, p := range r.properties {
		if strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name)) {
			return p
		}
	}
	return nil
}
