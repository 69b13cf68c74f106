// Package profile measures elapsed wall-clock time of designated
// operations and writes an aggregated, append-only report.
//
// Design decision: Interception is done with explicit decorators built
// per capability set (PageSource, WebCrawler) rather than runtime
// reflection. Go has no dynamic proxies; a compile-time decorator gives
// the same "callers unchanged" property with static type safety.
package profile
