package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-reading-cache/library"
	"github.com/goliatone/go-reading-cache/pkg/testsupport"
	"github.com/goliatone/go-reading-cache/provider"
)

const workListReply = `[
	{"id":"prozess","title":"Der Process","author":"Franz Kafka","year":"1925","description":"Josef K. wird verhaftet.","category":"German","isPublicDomain":true},
	{"id":"steppenwolf","title":"Der Steppenwolf","author":"Hermann Hesse","year":"1927","description":"Harry Haller.","category":"German","isPublicDomain":false}
]`

func TestPassThrough_NeverCached(t *testing.T) {
	store := newMockStore()
	gen := testsupport.StaticGenerator(map[string]string{
		OpSearch:    workListReply,
		OpRecommend: workListReply,
	})
	f := newFixture(t, store, gen)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		works, err := f.gateway.Search(ctx, "Kafka")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(works) != 2 || works[0].Author != "Franz Kafka" {
			t.Errorf("unexpected works %+v", works)
		}
		if _, err := f.gateway.Recommend(ctx, ""); err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
	}

	if gen.Calls(OpSearch) != 2 || gen.Calls(OpRecommend) != 2 {
		t.Errorf("expected every pass-through call to reach the provider, search=%d recommend=%d",
			gen.Calls(OpSearch), gen.Calls(OpRecommend))
	}
	if f.memory.Len() != 0 {
		t.Errorf("expected nothing in memory, len = %d", f.memory.Len())
	}
	if store.callCount("SaveContent") != 0 || store.callCount("GetContent") != 0 {
		t.Error("expected pass-through calls not to touch the store")
	}

	reqs := gen.Requests()
	if !strings.Contains(reqs[1].Prompt, "GENERAL") {
		t.Errorf("expected default intent in prompt, got %q", reqs[1].Prompt)
	}
}

func TestRecommendCategorized(t *testing.T) {
	reply := `{"classics":` + workListReply + `,"contemporary":[],"nonEuropean":[]}`
	gen := testsupport.StaticGenerator(map[string]string{OpRecommendCategorized: reply})
	f := newFixture(t, newMockStore(), gen)

	got, err := f.gateway.RecommendCategorized(context.Background())
	if err != nil {
		t.Fatalf("RecommendCategorized() error = %v", err)
	}
	if len(got.Classics) != 2 || len(got.Contemporary) != 0 {
		t.Errorf("unexpected selection %+v", got)
	}
}

func TestSearch_RejectsInvalidWorks(t *testing.T) {
	gen := testsupport.StaticGenerator(map[string]string{OpSearch: `[{"id":"","title":"Ohne Id","author":"Niemand"}]`})
	f := newFixture(t, newMockStore(), gen)

	_, err := f.gateway.Search(context.Background(), "x")
	if !errors.Is(err, ErrRemoteGeneration) {
		t.Fatalf("expected ErrRemoteGeneration, got %v", err)
	}
}

func TestQuiz(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr bool
	}{
		{
			name:  "valid questions",
			reply: `[{"question":"Wer ist Mephisto?","options":["Der Teufel","Ein Student"],"correctAnswerIndex":0,"explanation":"Er schließt den Pakt."}]`,
		},
		{
			name:    "answer index out of range",
			reply:   `[{"question":"Wer ist Mephisto?","options":["Der Teufel","Ein Student"],"correctAnswerIndex":2,"explanation":""}]`,
			wantErr: true,
		},
		{
			name:    "single option",
			reply:   `[{"question":"Wer?","options":["Faust"],"correctAnswerIndex":0,"explanation":""}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := testsupport.StaticGenerator(map[string]string{OpQuiz: tt.reply})
			f := newFixture(t, newMockStore(), gen)

			questions, err := f.gateway.Quiz(context.Background(), "Faust", "", "")
			if tt.wantErr {
				if !errors.Is(err, ErrRemoteGeneration) {
					t.Fatalf("expected ErrRemoteGeneration, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Quiz() error = %v", err)
			}
			if len(questions) != 1 || questions[0].Options[questions[0].CorrectAnswerIndex] != "Der Teufel" {
				t.Errorf("unexpected questions %+v", questions)
			}

			prompt := gen.Requests()[0].Prompt
			if !strings.Contains(prompt, string(library.Medium)) || !strings.Contains(prompt, string(library.FocusGeneral)) {
				t.Errorf("expected default difficulty and focus in prompt, got %q", prompt)
			}
		})
	}
}

func TestChat(t *testing.T) {
	gen := testsupport.StaticGenerator(map[string]string{OpChat: "Der Pudel ist Mephisto."})
	f := newFixture(t, newMockStore(), gen)

	history := []library.ChatMessage{
		{Role: library.RoleUser, Content: "Hallo"},
		{Role: library.RoleModel, Content: "Guten Tag"},
	}
	reply, err := f.gateway.Chat(context.Background(), "Wer ist der Pudel?", history, "Freiheit", library.ChatAboutTheme)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply != "Der Pudel ist Mephisto." {
		t.Errorf("unexpected reply %q", reply)
	}

	req := gen.Requests()[0]
	if len(req.History) != 2 || req.Prompt != "Wer ist der Pudel?" {
		t.Errorf("unexpected request %+v", req)
	}
	if !strings.Contains(req.SystemInstruction, `das philosophische Thema "Freiheit"`) {
		t.Errorf("unexpected system instruction %q", req.SystemInstruction)
	}
	if req.Schema != nil {
		t.Error("chat expects plain text")
	}
}

func TestStorySegment_PromptPrecedence(t *testing.T) {
	gen := testsupport.NewFakeGenerator(func(provider.Request) (string, error) {
		return `{"narrative":"Es war Nacht.","choices":["Weitergehen","Umkehren"]}`, nil
	})
	f := newFixture(t, newMockStore(), gen)
	ctx := context.Background()

	calls := []struct {
		choice, deepDive string
		want             string
	}{
		{"", "", `Lass uns "Faust" atmosphärisch nacherleben.`},
		{"Weitergehen", "", `Entscheidung: "Weitergehen".`},
		{"Weitergehen", "Gretchen", `Vertiefung: "Gretchen".`},
	}
	for _, c := range calls {
		segment, err := f.gateway.StorySegment(ctx, "Faust", "", c.choice, c.deepDive)
		if err != nil {
			t.Fatalf("StorySegment() error = %v", err)
		}
		if segment.Narrative != "Es war Nacht." || len(segment.Choices) != 2 {
			t.Errorf("unexpected segment %+v", segment)
		}
	}

	for i, req := range gen.Requests() {
		if req.Prompt != calls[i].want {
			t.Errorf("prompt %d = %q, want %q", i, req.Prompt, calls[i].want)
		}
		if req.SystemInstruction != storyInstruction {
			t.Errorf("unexpected system instruction %q", req.SystemInstruction)
		}
	}

	if _, err := f.gateway.StorySegment(ctx, "Faust", "Es war Nacht.", "Weitergehen", ""); err != nil {
		t.Fatalf("StorySegment() error = %v", err)
	}
	last := gen.Requests()[3].Prompt
	if !strings.HasPrefix(last, "Bisheriger Verlauf:\nEs war Nacht.") {
		t.Errorf("expected story context in prompt, got %q", last)
	}
}

func TestDiscover(t *testing.T) {
	gen := testsupport.StaticGenerator(map[string]string{
		OpDiscover: `{"text":"Wer immer strebend sich bemüht.","keywords":["Streben"],"sourceInfo":"Faust II"}`,
	})
	f := newFixture(t, newMockStore(), gen)
	ctx := context.Background()

	fragment, err := f.gateway.Discover(ctx, "")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if fragment.SourceInfo != "Faust II" || len(fragment.Keywords) != 1 {
		t.Errorf("unexpected fragment %+v", fragment)
	}

	if _, err := f.gateway.Discover(ctx, "Meer"); err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	reqs := gen.Requests()
	if reqs[0].Prompt == reqs[1].Prompt || !strings.Contains(reqs[1].Prompt, `"Meer"`) {
		t.Errorf("unexpected prompts %q / %q", reqs[0].Prompt, reqs[1].Prompt)
	}
}

func TestOfflineWorks_StorageFailure(t *testing.T) {
	store := newMockStore()
	store.fail = true
	f := newFixture(t, store, testsupport.StaticGenerator(nil))

	_, err := f.gateway.OfflineWorks(context.Background())
	if err == nil {
		t.Fatal("expected storage error")
	}
	if f.recorder.storage[OpOfflineWorks] != 1 {
		t.Error("expected storage failure to be recorded")
	}
}

func TestRequestIDContext(t *testing.T) {
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Error("expected no request id on a bare context")
	}

	ctx := WithRequestID(context.Background(), "abc")
	if id, ok := RequestIDFromContext(ctx); !ok || id != "abc" {
		t.Errorf("expected abc, got %q (%v)", id, ok)
	}

	if WithRequestID(ctx, "") != ctx {
		t.Error("expected empty id to leave ctx unchanged")
	}

	generated, id := ensureRequestID(context.Background())
	if got, ok := RequestIDFromContext(generated); !ok || got != id || id == "" {
		t.Errorf("expected generated id to be attached, got %q", got)
	}

	kept, id := ensureRequestID(ctx)
	if kept != ctx || id != "abc" {
		t.Error("expected existing id to be kept")
	}
}
