package domain

import "context"

// CityRepository loads city datasets. Implementations return an error
// matching ErrCityNotFound when slug has no dataset.
type CityRepository interface {
	City(ctx context.Context, slug string) (CityData, error)
	Slugs(ctx context.Context) ([]string, error)
}
