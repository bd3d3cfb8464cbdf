package weather

import (
	"context"
	"strings"
)

// candidateCount is how many ranked candidates are requested from geocoding.
const candidateCount = 5

// Resolver turns a free-text city (and optional country code) into one
// geocoded Location.
type Resolver struct {
	client GeocodingClient
}

// NewResolver creates a Resolver backed by the given geocoding client.
func NewResolver(client GeocodingClient) *Resolver {
	return &Resolver{client: client}
}

// Resolve looks the city up and picks a candidate.
//
// With an empty countryCode the highest-ranked candidate wins. Otherwise the
// first candidate whose country code matches (case-insensitive) is returned,
// falling back to the highest-ranked one when nothing matches.
func (r *Resolver) Resolve(ctx context.Context, city, countryCode string) (Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Location{}, &ValidationError{Field: "city", Message: "Please provide a city name."}
	}
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))

	candidates, err := r.client.Search(ctx, city, candidateCount)
	if err != nil {
		return Location{}, err
	}
	if len(candidates) == 0 {
		return Location{}, &NotFoundError{City: city, CountryCode: countryCode}
	}

	return selectCandidate(candidates, countryCode), nil
}

func selectCandidate(candidates []Location, countryCode string) Location {
	if countryCode == "" {
		return candidates[0]
	}
	for _, c := range candidates {
		if strings.EqualFold(c.CountryCode, countryCode) {
			return c
		}
	}
	return candidates[0]
}
