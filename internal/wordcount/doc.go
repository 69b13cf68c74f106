// Package wordcount ranks aggregated word counts.
//
// Ranking is a pure transform: it runs once, after the crawl has joined,
// on an immutable snapshot of the aggregated counts. It never touches
// shared state and needs no synchronization.
package wordcount
