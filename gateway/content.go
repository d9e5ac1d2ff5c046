package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-reading-cache/cache"
	"github.com/goliatone/go-reading-cache/library"
	"github.com/goliatone/go-reading-cache/provider"
)

// AnalysisKey returns the cache key of an analysis request.
func (g *Gateway) AnalysisKey(title, author string) string {
	return g.keys.SerializeKey(cache.NamespaceAnalysis, title, author)
}

// TableOfContentsKey returns the cache key of a table of contents request.
func (g *Gateway) TableOfContentsKey(title string) string {
	return g.keys.SerializeKey(cache.NamespaceTOC, title)
}

// ChapterKey returns the cache key of a chapter request. An empty preference
// is keyed as Chronological and surrounding whitespace of focus is ignored.
func (g *Gateway) ChapterKey(workID, chapter string, pref library.ReadingPreference, focus string) string {
	return g.keys.SerializeKey(cache.NamespaceContent, workID, chapter, normalizePreference(pref), cache.Optional(focus))
}

// Analysis returns a deep analysis of the work, generating it at most once
// while it stays cached.
func (g *Gateway) Analysis(ctx context.Context, title, author string) (library.AnalysisText, error) {
	key := g.AnalysisKey(title, author)

	text, _, err := readThrough(ctx, g, OpAnalysis, key, func(ctx context.Context) (library.AnalysisText, error) {
		text, err := g.generate(ctx, provider.Request{
			Op:     OpAnalysis,
			Prompt: analysisPrompt(title, author),
		})
		return library.AnalysisText(text), err
	})
	return text, err
}

// TableOfContents returns the chapter labels of the work. The returned slice
// is a copy and may be modified.
func (g *Gateway) TableOfContents(ctx context.Context, title string) (library.TableOfContents, error) {
	key := g.TableOfContentsKey(title)

	toc, _, err := readThrough(ctx, g, OpTableOfContents, key, func(ctx context.Context) (library.TableOfContents, error) {
		return generateJSON[library.TableOfContents](ctx, g, provider.Request{
			Op:     OpTableOfContents,
			Prompt: tableOfContentsPrompt(title),
			Schema: provider.TableOfContentsSchema(),
		})
	})
	if err != nil {
		return nil, err
	}
	return toc.Clone(), nil
}

// ChapterContent returns the text of one chapter. Whenever the content is
// served from the store or the provider the work record is saved so the work
// is listed offline.
func (g *Gateway) ChapterContent(ctx context.Context, work library.Work, chapter string, pref library.ReadingPreference, focus string) (library.ChapterContent, error) {
	ctx, _ = ensureRequestID(ctx)
	if err := work.Validate(); err != nil {
		return library.ChapterContent{}, fmt.Errorf("gateway: %s: invalid work: %w", OpChapterContent, err)
	}
	pref = normalizePreference(pref)
	focus = strings.TrimSpace(focus)
	key := g.ChapterKey(work.ID, chapter, pref, focus)

	content, tier, err := readThrough(ctx, g, OpChapterContent, key, func(ctx context.Context) (library.ChapterContent, error) {
		return generateJSON[library.ChapterContent](ctx, g, provider.Request{
			Op:     OpChapterContent,
			Prompt: chapterPrompt(work, chapter, pref, focus),
			Schema: provider.ChapterSchema(),
		})
	})
	if err != nil {
		return library.ChapterContent{}, err
	}

	if tier != TierMemory {
		if err := g.store.SaveWork(context.WithoutCancel(ctx), work); err != nil {
			g.log(ctx, OpChapterContent).WithError(err).WithField("work_id", work.ID).Warn("[CACHE] saving work failed")
			g.recorder.StorageFailure(OpChapterContent)
		}
	}
	return content, nil
}

func normalizePreference(pref library.ReadingPreference) library.ReadingPreference {
	if pref == "" {
		return library.Chronological
	}
	return pref
}
