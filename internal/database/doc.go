// Package database provides SQLite-based persistence of crawl runs.
//
// Each completed run is stored with its seeds, visit count, and ranked
// word list so later runs against the same sites can be compared.
package database
