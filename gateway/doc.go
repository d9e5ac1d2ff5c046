// Package gateway is the content gateway of the reading companion: the only
// component that calls the generative provider.
//
// # Overview
//
// The gateway sits in front of the provider the way a repository decorator
// sits in front of a database. Expensive, stable content is read through two
// cache tiers; everything else passes straight through.
//
// # Basic Usage
//
//	memory, _ := cache.NewMemoryCache(cache.DefaultConfig())
//	store := persistence.New(persistence.Config{Path: "bibliothek.db"})
//	gen, _ := provider.New(ctx, provider.Config{APIKey: key})
//
//	gw, err := gateway.New(gateway.Config{Memory: memory, Store: store, Generator: gen})
//	if err != nil {
//		return err
//	}
//	text, err := gw.Analysis(ctx, "Faust", "Goethe")
//
// # Cached vs Pass-through Operations
//
// ## Cached Operations
//
//   - Analysis, keyed analysis_<title>_<author>
//   - TableOfContents, keyed toc_<title>
//   - ChapterContent, keyed content_<workID>_<chapter>_<preference>_<focus|none>
//
// ## Pass-through Operations
//
// These are generated on every call and never cached:
//   - Chat, RecommendCategorized, Recommend, Search
//   - Quiz, StorySegment, Discover
//
// OfflineWorks lists works saved in the store and never calls the provider.
//
// # Caching Behavior
//
//  1. Derive the key with the cache.KeySerializer
//  2. Memory hit: return it, nothing else happens
//  3. Store hit: copy into memory and return it
//  4. Full miss: call the provider, decode and validate the answer
//  5. Write the value to memory and to the store, then return it
//
// A chapter served from the store or the provider also saves its work record,
// so the work shows up in OfflineWorks.
//
// Identical calls that overlap may both reach the provider; there is no
// in-flight coalescing. Both write the same key.
//
// # Error Handling
//
// Store failures are logged, counted through the Recorder and treated as a
// miss, so a broken disk degrades to provider-only operation. Provider
// failures, empty answers, malformed JSON and answers failing validation are
// returned as *RemoteGenerationError (matching ErrRemoteGeneration) and are
// never cached; the next call asks again. Without an API key provider-bound
// calls fail with ErrConfigurationMissing while cached content is still
// served. ChapterContent rejects a work without id, title or author before
// any tier is consulted.
//
// # Request IDs
//
// Attach an id with WithRequestID to correlate log lines; calls without one
// get a generated uuid.
package gateway
