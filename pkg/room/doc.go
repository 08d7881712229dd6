// Package room defines the vocabulary shared by every program2mass component:
// room types, ratio tables, aspect bounds, adjacency rules and the room
// records that flow through the dimensioning pipeline.
//
// # Room Types
//
// [Type] is a closed enumeration. Names are mapped onto it by
// [Catalog.Classify], which lower-cases the name and returns the first type
// (in [Types] order) whose keyword list contains a substring of it:
//
//	c := room.DefaultCatalog()
//	c.Classify("Master Bedroom") // room.Bedroom
//	c.Classify("Kitchenette")    // room.Kitchen
//	c.Classify("Gym")            // room.Default
//
// Matching is substring based, so "Bedside nook" classifies as a bedroom
// because it contains "bed".
//
// # Catalog
//
// A [Catalog] bundles one [Profile] per type: keywords, preferred ratios
// (most preferred first), inclusive aspect bounds, a rendering [Category]
// and an optional [Adjacency] rule. Catalogs are immutable once built;
// accessors return copies. Use [DefaultCatalog] for the stock tables or
// [NewCatalog] to build one from overrides (see package config).
//
// # Rooms
//
// A [Request] is the immutable input (name + area in m²). A [Room] is the
// dimensioned record the solver creates and the optimizers update. Its
// actual area is always derived from [Dimensions] and never stored.
package room
