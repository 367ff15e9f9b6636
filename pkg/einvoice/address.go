package einvoice

import (
	"regexp"
	"strings"
)

// AddressPolicy controls how a malformed postal-code line is handled.
type AddressPolicy int

const (
	// AddressPolicyStrict rejects an address whose second line is not
	// "<5-digit postal code> <city>". Used for XML export, where a
	// document without a postal code is invalid anyway.
	AddressPolicyStrict AddressPolicy = iota
	// AddressPolicyLenient takes a non-matching second line verbatim as
	// the city and leaves the postal code empty. Used for the live
	// preview and PDF so a half-typed address never blocks rendering.
	AddressPolicyLenient
)

// AddressParts is the decomposition of a free-text postal address.
type AddressParts struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

// InvalidAddressError reports an address that cannot be decomposed.
type InvalidAddressError struct {
	Reason string
}

func (e *InvalidAddressError) Error() string {
	return "invalid address: " + e.Reason
}

var postalLineRe = regexp.MustCompile(`^(\d{5})\s+(.+)$`)

// ParseAddress splits a newline-delimited address into street, postal
// code, city and country. Line 1 is the street, line 2 carries postal
// code and city, an optional line 3 overrides the country (default DE).
func ParseAddress(raw string, policy AddressPolicy) (AddressParts, error) {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}

	if len(lines) < 2 {
		return AddressParts{}, &InvalidAddressError{Reason: "must include at least street and city"}
	}

	parts := AddressParts{
		Street:  lines[0],
		Country: "DE",
	}

	if m := postalLineRe.FindStringSubmatch(lines[1]); m != nil {
		parts.PostalCode = m[1]
		parts.City = m[2]
	} else {
		if policy == AddressPolicyStrict {
			return AddressParts{}, &InvalidAddressError{Reason: "must include a valid postal code and city"}
		}
		parts.City = lines[1]
	}

	if len(lines) >= 3 && !strings.EqualFold(lines[2], "germany") {
		parts.Country = lines[2]
	}

	return parts, nil
}
