// Package event provides the stevne type and the deterministic synthetic
// generator used when a range carries no real event data.
//
// Synthetic events are derived entirely from the range identifier, the
// range's position in the dataset and the local calendar day. The same
// inputs always produce byte-identical output, which keeps map development
// and the date filter exercisable without a live event source.
package event
