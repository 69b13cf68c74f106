// Package model defines the data types shared across the crawler,
// ranking, reporting, and persistence layers.
//
// The types here are plain data carriers with no behavior beyond
// serialization helpers. Keeping them in a leaf package avoids import
// cycles between the crawler core and the report writers.
package model
