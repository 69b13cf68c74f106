// Package crawler implements the concurrent word-frequency crawl.
//
// # Architecture
//
// The package is built around the Crawler type, which launches one
// recursive crawl task per seed URL and joins the whole task forest
// before assembling the result. Two concurrency-safe structures are
// shared by every in-flight task:
//
//   - VisitLedger: an append-only set of claimed URLs guaranteeing
//     at-most-once processing per URL across all branches
//   - CountAggregator: the running word totals, merged additively from
//     every processed page
//
// Design decision: We spawn one goroutine per crawl task and bound
// parallelism with a weighted semaphore held only around the blocking
// fetch, rather than using a fixed worker pool, because:
//  1. A task must suspend until all of its children finish (fork/join);
//     parking a pool worker on that join can deadlock a bounded pool
//  2. Goroutines are cheap enough that the fetch is the real resource
//  3. No lock or semaphore is ever held across the ledger/aggregator
//     critical sections, keeping them brief
//
// # Cutoffs
//
// Every task re-checks the remaining depth and the shared wall-clock
// deadline before doing any work, so a slow-growing link tree is pruned
// promptly everywhere rather than only at the root. A task that fails
// any check returns silently; pruning is never an error.
//
// # Page sources
//
// Fetching and parsing is behind the PageSource interface. HTTPSource
// is the production implementation (net/http plus an HTML parser); the
// crawl core treats any implementation as an opaque blocking call.
package crawler
