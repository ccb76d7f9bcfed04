// Package encoding implements the low-level payload codecs of Palmtree recordings:
// the tab-separated column names blob and runs of raw little-endian doubles.
//
// The package is internal; the section and recording packages are its only users.
package encoding
