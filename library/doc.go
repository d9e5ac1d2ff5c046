// Package library holds the domain vocabulary shared by the cache, the
// persistent store and the content gateway: works, reading preferences and the
// payload variants produced by the generation provider.
//
// Each cached operation has its own payload type (AnalysisText,
// TableOfContents, ChapterContent) so the cache stays type safe per operation
// while the storage underneath remains a single JSON blob store.
package library
