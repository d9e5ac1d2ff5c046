package gateway

import (
	"context"

	"github.com/goliatone/go-reading-cache/library"
	"github.com/goliatone/go-reading-cache/provider"
)

// Chat answers message in a conversation about a work or a theme. history
// holds the earlier turns, oldest first.
func (g *Gateway) Chat(ctx context.Context, message string, history []library.ChatMessage, title string, kind library.ChatKind) (string, error) {
	return g.generate(ctx, provider.Request{
		Op:                OpChat,
		Prompt:            message,
		SystemInstruction: chatInstruction(title, kind),
		History:           history,
	})
}

// RecommendCategorized returns a selection of classic, contemporary and
// non-European works.
func (g *Gateway) RecommendCategorized(ctx context.Context) (library.CategorizedWorks, error) {
	return generateJSON[library.CategorizedWorks](ctx, g, provider.Request{
		Op:     OpRecommendCategorized,
		Prompt: categorizedPrompt,
		Schema: provider.CategorizedWorksSchema(),
	})
}

// Recommend returns works for intent. An empty intent asks for general
// recommendations.
func (g *Gateway) Recommend(ctx context.Context, intent string) ([]library.Work, error) {
	return generateJSON[[]library.Work](ctx, g, provider.Request{
		Op:     OpRecommend,
		Prompt: recommendPrompt(intent),
		Schema: provider.WorkListSchema(),
	})
}

// Search returns works matching query.
func (g *Gateway) Search(ctx context.Context, query string) ([]library.Work, error) {
	return generateJSON[[]library.Work](ctx, g, provider.Request{
		Op:     OpSearch,
		Prompt: searchPrompt(query),
		Schema: provider.WorkListSchema(),
	})
}

// Quiz generates multiple-choice questions about topic.
func (g *Gateway) Quiz(ctx context.Context, topic string, difficulty library.Difficulty, focus library.QuizFocus) ([]library.QuizQuestion, error) {
	if difficulty == "" {
		difficulty = library.Medium
	}
	if focus == "" {
		focus = library.FocusGeneral
	}
	return generateJSON[[]library.QuizQuestion](ctx, g, provider.Request{
		Op:     OpQuiz,
		Prompt: quizPrompt(topic, difficulty, focus),
		Schema: provider.QuizSchema(),
	})
}

// StorySegment continues an interactive retelling of title. storyContext
// carries the narrative so far; choice or deepDive, when set, steer the next
// segment, with deepDive taking precedence.
func (g *Gateway) StorySegment(ctx context.Context, title, storyContext, choice, deepDive string) (library.StorySegment, error) {
	return generateJSON[library.StorySegment](ctx, g, provider.Request{
		Op:                OpStorySegment,
		Prompt:            storyPrompt(title, storyContext, choice, deepDive),
		SystemInstruction: storyInstruction,
		Schema:            provider.StorySchema(),
	})
}

// Discover returns a short literary find, optionally related to contextWord.
func (g *Gateway) Discover(ctx context.Context, contextWord string) (library.DiscoveryFragment, error) {
	return generateJSON[library.DiscoveryFragment](ctx, g, provider.Request{
		Op:     OpDiscover,
		Prompt: discoveryPrompt(contextWord),
		Schema: provider.DiscoverySchema(),
	})
}

// OfflineWorks lists the works saved in the store. Unlike content lookups a
// storage failure is returned to the caller.
func (g *Gateway) OfflineWorks(ctx context.Context) ([]library.Work, error) {
	works, err := g.store.Works(ctx)
	if err != nil {
		g.log(ctx, OpOfflineWorks).WithError(err).Warn("[CACHE] listing works failed")
		g.recorder.StorageFailure(OpOfflineWorks)
		return nil, err
	}
	return works, nil
}
