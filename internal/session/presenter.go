// Package session holds the explicit state of one browsing session and the
// boundary at which the dataset is loaded.
package session

import (
	"context"

	"github.com/dotcommander/compfinder/internal/dataset"
)

// Presenter is notified exactly once about the outcome of the dataset load.
type Presenter interface {
	OnDatasetLoaded(ds *dataset.Dataset)
	OnDatasetLoadFailed(message string)
}

// Fetcher loads a dataset from a source. *dataset.Loader implements it.
type Fetcher interface {
	Load(ctx context.Context, source string) (*dataset.Dataset, error)
}

// Start loads source and returns a Controller over the result. On failure the
// presenter receives the human-readable message and the error is returned;
// no Controller exists until the dataset is available.
func Start(ctx context.Context, fetcher Fetcher, source string, p Presenter) (*Controller, error) {
	ds, err := fetcher.Load(ctx, source)
	if err != nil {
		if p != nil {
			p.OnDatasetLoadFailed(err.Error())
		}
		return nil, err
	}
	if p != nil {
		p.OnDatasetLoaded(ds)
	}
	return NewController(ds), nil
}
