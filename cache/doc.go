// Package cache provides the memory tier and cache key derivation used by the
// content gateway.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - MemoryCache: a bounded, TTL based, process-lifetime cache
//   - KeySerializer: builds stable, namespaced cache keys from operation arguments
//
// # Basic Usage
//
//	memory, err := cache.NewMemoryCache(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey(cache.NamespaceAnalysis, "Faust", "Goethe")
//	// key == "analysis_Faust_Goethe"
//
//	memory.Set(key, library.AnalysisText("..."))
//	text, err := cache.Get[library.AnalysisText](memory, key)
//
// # Expiry and Eviction
//
// Entries older than the TTL are treated as absent and removed when read; there
// is no background sweep. When the cache holds Capacity entries and a new key is
// set, the least-recently-inserted entry is evicted first. Setting an existing
// key counts as a new insertion.
//
// # Key Serialization Strategy
//
// Keys are the namespace followed by one segment per argument, joined with "_".
// Inside a segment "\" becomes "\\" and "_" becomes "\_", so two different
// argument tuples can never produce the same key. Arguments of type Optional
// serialize as "none" when empty.
//
// For tests, pass a TestClock in Config.Clock and advance it instead of sleeping.
package cache
