package entity

import "time"

// Kind tells which landing page section an Entry belongs to.
type Kind string

const (
	KindIndustry Kind = "industry"
	KindPartner  Kind = "partner"
)

func (k Kind) Valid() bool {
	return k == KindIndustry || k == KindPartner
}

// Entry is a card shown in the industries or partners section. URL is the
// link of an industry or the website of a partner.
type Entry struct {
	ID          int64
	Kind        Kind
	Name        string
	Description string
	ImageURL    string
	URL         string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BlankEntry is what a new card form starts with.
func BlankEntry(kind Kind) Entry {
	return Entry{Kind: kind, Active: true}
}

// Option lists edited from the admin panel and offered in employee
// preferences.
const (
	OptionFunctions       = "functions"
	OptionCompetences     = "competences"
	OptionGeoAreas        = "geo_areas"
	OptionActivitySectors = "activity_sectors"
)

// OptionNames is the fixed order option lists are stored and shown in.
var OptionNames = []string{OptionFunctions, OptionCompetences, OptionGeoAreas, OptionActivitySectors}

// Options maps an option list name to its values. Every name in OptionNames
// is present once loaded.
type Options map[string][]string
