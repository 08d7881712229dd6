// Package optimize refines dimensioned rooms so that more of them share
// identical wall lengths.
//
// Three strategies are provided:
//
//   - [MultiPass]: cluster the current wall lengths, then move each room
//     toward the cluster centers that maximize its connection value, over a
//     bounded number of passes with a tightening area tolerance.
//   - [ModuleSearch]: sweep a fixed set of grid modules, pick the one that
//     dimensions every room with the least total area error, and dimension
//     all rooms directly on it.
//   - [CommonDimensions]: a single non-greedy pass that snaps rooms onto the
//     most frequent wall lengths.
//
// # Ordering
//
// MultiPass is a greedy local search. Rooms are visited in slice order and
// an applied change is visible to every room visited after it in the same
// pass. The same input order always yields the same output; a different
// order may not.
//
// # Progress
//
// Like the layout searches elsewhere in this module, each optimizer takes
// an optional Progress callback. It is called synchronously once per pass
// or candidate and must not retain the slices it receives.
//
//	mp := optimize.NewMultiPass(solver, scorer)
//	mp.Progress = func(r optimize.PassReport) {
//	    log.Printf("pass %d: %d changed", r.Pass, r.Changed)
//	}
//	res := mp.Run(rooms)
package optimize
