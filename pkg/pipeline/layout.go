package pipeline

import "github.com/gduarte0/program2mass/pkg/massing"

// Arrange lays out the result's rooms as a massing model using the spacing,
// height and catalog from opts.
func Arrange(res *Result, opts Options) massing.Model {
	return massing.Arrange(res.Rooms, massing.Options{
		Spacing: opts.Spacing,
		Height:  opts.Height,
		Catalog: opts.Catalog,
	})
}
