package library

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Work is a book or other literary work known to the reading companion.
// Works are persisted whenever chapter content is fetched for them so that
// they remain available offline.
type Work struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Year           string `json:"year"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	IsPublicDomain bool   `json:"isPublicDomain"`
}

// ReadingPreference selects how chapter content is rendered.
type ReadingPreference string

const (
	Chronological ReadingPreference = "CHRONOLOGICAL"
	Focused       ReadingPreference = "FOCUSED"
)

// ParseReadingPreference accepts the preference name in any case.
// An empty value maps to Chronological.
func ParseReadingPreference(s string) (ReadingPreference, error) {
	switch ReadingPreference(strings.ToUpper(strings.TrimSpace(s))) {
	case "", Chronological:
		return Chronological, nil
	case Focused:
		return Focused, nil
	default:
		return "", fmt.Errorf("unknown reading preference %q", s)
	}
}

// Difficulty of a generated quiz.
type Difficulty string

const (
	Easy   Difficulty = "EASY"
	Medium Difficulty = "MEDIUM"
	Hard   Difficulty = "HARD"
)

// QuizFocus narrows what a generated quiz asks about.
type QuizFocus string

const (
	FocusPlot      QuizFocus = "PLOT"
	FocusSymbolism QuizFocus = "SYMBOLISM"
	FocusGeneral   QuizFocus = "GENERAL"
)

// ChatKind tells the provider whether a conversation is about a work or a
// philosophical theme.
type ChatKind string

const (
	ChatAboutWork  ChatKind = "BOOK"
	ChatAboutTheme ChatKind = "THEME"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalysisText is the cached payload of a deep analysis request.
type AnalysisText string

// TableOfContents is the cached list of chapter labels of a work.
type TableOfContents []string

// Clone returns a copy that does not share backing storage with t.
func (t TableOfContents) Clone() TableOfContents {
	if t == nil {
		return nil
	}
	return slices.Clone(t)
}

// ChapterContent is the cached text of a single chapter.
type ChapterContent struct {
	Text       string `json:"text"`
	IsOriginal bool   `json:"isOriginal"`
}

// DiscoveryFragment is a short literary find returned by the discovery feature.
type DiscoveryFragment struct {
	Text        string   `json:"text"`
	Keywords    []string `json:"keywords"`
	ImagePrompt string   `json:"imagePrompt,omitempty"`
	SourceInfo  string   `json:"sourceInfo,omitempty"`
}

// StorySegment is one step of an interactive retelling.
type StorySegment struct {
	Narrative string   `json:"narrative"`
	Choices   []string `json:"choices"`
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// CategorizedWorks groups recommendations for the library overview.
type CategorizedWorks struct {
	Classics     []Work `json:"classics"`
	Contemporary []Work `json:"contemporary"`
	NonEuropean  []Work `json:"nonEuropean"`
}
