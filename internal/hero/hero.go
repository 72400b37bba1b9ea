// Package hero picks the seasonal landing page headline for a business.
package hero

import (
	"strings"
	"time"
)

// Version is the seasonal variant of the hero section
type Version string

const (
	VersionCold Version = "cold"
	VersionHot  Version = "hot"
)

// Content is the headline pair shown in the hero section
type Content struct {
	Version     Version `json:"version"`
	Headline    string  `json:"headline"`
	Subheadline string  `json:"subheadline"`
}

// Business types with tailored copy
const (
	BusinessHVAC        = "HVAC"
	BusinessPlumbing    = "Plumbing"
	BusinessElectrician = "Electrician"
)

// northernStates rotate between cold and hot seasons
var northernStates = map[string]bool{
	"AK": true, "CT": true, "IL": true, "IN": true, "IA": true, "ME": true,
	"MA": true, "MI": true, "MN": true, "NH": true, "NJ": true, "NY": true,
	"ND": true, "OH": true, "PA": true, "RI": true, "SD": true, "VT": true,
	"WI": true, "WY": true, "MT": true, "ID": true, "WA": true, "OR": true,
	"NE": true, "KS": true, "MO": true, "CO": true, "UT": true,
}

// IsNorthern reports whether the state code has a cold season
func IsNorthern(state string) bool {
	return northernStates[strings.ToUpper(strings.TrimSpace(state))]
}

// VersionFor returns cold for northern states from November through April,
// hot otherwise. Southern and unknown states are hot year round.
func VersionFor(state string, month time.Month) Version {
	if !IsNorthern(state) {
		return VersionHot
	}
	if month >= time.November || month <= time.April {
		return VersionCold
	}
	return VersionHot
}

// ContentFor returns the copy for a business type and season
func ContentFor(businessType string, v Version) Content {
	switch businessType {
	case BusinessHVAC:
		if v == VersionCold {
			return Content{Version: VersionCold, Headline: "Stay Warm This Winter", Subheadline: "Fast, Reliable HVAC Service"}
		}
		return Content{Version: VersionHot, Headline: "Keep Your Home Comfortable", Subheadline: "Fast, Reliable HVAC Service"}

	case BusinessPlumbing:
		if v == VersionCold {
			return Content{Version: VersionCold, Headline: "Plumbing Problems? We Fix Them Fast", Subheadline: "Burst Pipes, Leaks, and Emergency Repairs"}
		}
		return Content{Version: VersionHot, Headline: "Plumbing Problems? We Fix Them Fast", Subheadline: "Repairs, Installations, and Emergency Service"}

	case BusinessElectrician:
		return Content{Version: v, Headline: "Electrical Problems? We Fix Them Fast", Subheadline: "Repairs, Installations, and Emergency Service"}
	}

	return Content{Version: v, Headline: "Fast, Reliable Service", Subheadline: "Professional Service You Can Trust"}
}

// Complete resolves the season for state at now and returns its content
func Complete(businessType, state string, now time.Time) Content {
	return ContentFor(businessType, VersionFor(state, now.Month()))
}
