package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-reading-cache/library"
	"github.com/goliatone/go-reading-cache/paginate"
)

func (a *app) analysisCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analysis <title> <author>",
		Short: "Deep analysis of a work",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.container.Gateway().Analysis(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return a.print(cmd, map[string]string{"title": args[0], "author": args[1], "analysis": string(text)}, func(w io.Writer) {
				fmt.Fprintln(w, text)
			})
		},
	}
}

func (a *app) tocCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toc <title>",
		Short: "Table of contents of a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toc, err := a.container.Gateway().TableOfContents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, toc, func(w io.Writer) {
				for i, chapter := range toc {
					fmt.Fprintf(w, "%3d. %s\n", i+1, chapter)
				}
			})
		},
	}
}

type readResult struct {
	Work       library.Work `json:"work"`
	Chapter    string       `json:"chapter"`
	Page       int          `json:"page"`
	Pages      int          `json:"pages"`
	IsOriginal bool         `json:"isOriginal"`
	Text       string       `json:"text"`
}

func (a *app) readCommand() *cobra.Command {
	var (
		preference string
		focus      string
		page       int
		words      int
	)

	cmd := &cobra.Command{
		Use:   "read <work-id> <chapter>",
		Short: "Read one page of a chapter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pref, err := library.ParseReadingPreference(preference)
			if err != nil {
				return err
			}
			work, err := a.resolveWork(ctx, args[0])
			if err != nil {
				return err
			}

			content, err := a.container.Gateway().ChapterContent(ctx, work, args[1], pref, focus)
			if err != nil {
				return err
			}

			if words <= 0 {
				words = a.cfg.WordsPerPage
			}
			text, total := paginate.Page(content.Text, words, page-1)
			result := readResult{
				Work:       work,
				Chapter:    args[1],
				Page:       min(max(page, 1), total),
				Pages:      total,
				IsOriginal: content.IsOriginal,
				Text:       text,
			}

			return a.print(cmd, result, func(w io.Writer) {
				fmt.Fprintf(w, "%s, %s (Seite %d/%d)\n\n%s\n", work.Title, result.Chapter, result.Page, result.Pages, text)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&preference, "preference", string(library.Chronological), "CHRONOLOGICAL or FOCUSED")
	flags.StringVar(&focus, "focus", "", "what a FOCUSED reading concentrates on")
	flags.IntVar(&page, "page", 1, "page number, starting at 1")
	flags.IntVar(&words, "words", 0, "words per page (default from config)")
	return cmd
}

// resolveWork looks id up in the stored works, then in the starter catalog.
func (a *app) resolveWork(ctx context.Context, id string) (library.Work, error) {
	stored, err := a.container.Gateway().OfflineWorks(ctx)
	if err != nil {
		a.container.Logger().WithError(err).Warn("[STORE] stored works unavailable, using catalog")
	}
	if work, ok := library.FindWork(id, stored, library.StarterCatalog); ok {
		return work, nil
	}
	return library.Work{}, fmt.Errorf("unknown work %q, see 'bibliothek works --catalog'", id)
}

func (a *app) worksCommand() *cobra.Command {
	var catalog bool

	cmd := &cobra.Command{
		Use:   "works",
		Short: "List works available offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			works, err := a.container.Gateway().OfflineWorks(cmd.Context())
			if err != nil {
				return err
			}
			if catalog {
				for _, w := range library.StarterCatalog {
					if _, ok := library.FindWork(w.ID, works); !ok {
						works = append(works, w)
					}
				}
			}
			return a.print(cmd, works, func(w io.Writer) { printWorks(w, works) })
		},
	}

	cmd.Flags().BoolVar(&catalog, "catalog", false, "include the built-in starter catalog")
	return cmd
}

func (a *app) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search for works",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			works, err := a.container.Gateway().Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.print(cmd, works, func(w io.Writer) { printWorks(w, works) })
		},
	}
}

func (a *app) recommendCommand() *cobra.Command {
	var (
		intent      string
		categorized bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend works",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw := a.container.Gateway()
			if categorized {
				selection, err := gw.RecommendCategorized(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(cmd, selection, func(w io.Writer) {
					for _, group := range []struct {
						name  string
						works []library.Work
					}{
						{"Klassiker", selection.Classics},
						{"Gegenwart", selection.Contemporary},
						{"Weltliteratur", selection.NonEuropean},
					} {
						fmt.Fprintf(w, "%s\n", group.name)
						printWorks(w, group.works)
						fmt.Fprintln(w)
					}
				})
			}

			works, err := gw.Recommend(cmd.Context(), intent)
			if err != nil {
				return err
			}
			return a.print(cmd, works, func(w io.Writer) { printWorks(w, works) })
		},
	}

	cmd.Flags().StringVar(&intent, "intent", "", "area of interest, e.g. PHILOSOPHY")
	cmd.Flags().BoolVar(&categorized, "categorized", false, "group classics, contemporary and non-European works")
	return cmd
}

func (a *app) quizCommand() *cobra.Command {
	var difficulty, focus string

	cmd := &cobra.Command{
		Use:   "quiz <topic>",
		Short: "Generate a multiple-choice quiz",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := library.Difficulty(strings.ToUpper(strings.TrimSpace(difficulty)))
			f := library.QuizFocus(strings.ToUpper(strings.TrimSpace(focus)))
			err := validation.Errors{
				"difficulty": validation.Validate(d, validation.In(library.Easy, library.Medium, library.Hard)),
				"focus":      validation.Validate(f, validation.In(library.FocusPlot, library.FocusSymbolism, library.FocusGeneral)),
			}.Filter()
			if err != nil {
				return err
			}

			questions, err := a.container.Gateway().Quiz(cmd.Context(), strings.Join(args, " "), d, f)
			if err != nil {
				return err
			}
			return a.print(cmd, questions, func(w io.Writer) {
				for i, q := range questions {
					fmt.Fprintf(w, "%d. %s\n", i+1, q.Question)
					for j, option := range q.Options {
						marker := " "
						if j == q.CorrectAnswerIndex {
							marker = "*"
						}
						fmt.Fprintf(w, "   %s %c) %s\n", marker, 'a'+j, option)
					}
					if q.Explanation != "" {
						fmt.Fprintf(w, "   %s\n", q.Explanation)
					}
					fmt.Fprintln(w)
				}
			})
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "EASY, MEDIUM or HARD")
	cmd.Flags().StringVar(&focus, "focus", "", "PLOT, SYMBOLISM or GENERAL")
	return cmd
}

func (a *app) discoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover [word]",
		Short: "A short literary find",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var word string
			if len(args) == 1 {
				word = args[0]
			}
			fragment, err := a.container.Gateway().Discover(cmd.Context(), word)
			if err != nil {
				return err
			}
			return a.print(cmd, fragment, func(w io.Writer) {
				fmt.Fprintln(w, fragment.Text)
				if fragment.SourceInfo != "" {
					fmt.Fprintf(w, "\n  %s\n", fragment.SourceInfo)
				}
				if len(fragment.Keywords) > 0 {
					fmt.Fprintf(w, "  #%s\n", strings.Join(fragment.Keywords, " #"))
				}
			})
		},
	}
}

func (a *app) storyCommand() *cobra.Command {
	var storyContext, choice, deepDive string

	cmd := &cobra.Command{
		Use:   "story <title>",
		Short: "Continue an interactive retelling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segment, err := a.container.Gateway().StorySegment(cmd.Context(), args[0], storyContext, choice, deepDive)
			if err != nil {
				return err
			}
			return a.print(cmd, segment, func(w io.Writer) {
				fmt.Fprintln(w, segment.Narrative)
				for i, c := range segment.Choices {
					fmt.Fprintf(w, "  [%d] %s\n", i+1, c)
				}
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&storyContext, "context", "", "narrative so far")
	flags.StringVar(&choice, "choice", "", "the choice taken")
	flags.StringVar(&deepDive, "deep-dive", "", "a detail to explore, overrides --choice")
	return cmd
}

func (a *app) chatCommand() *cobra.Command {
	var theme bool

	cmd := &cobra.Command{
		Use:   "chat <title> <message>",
		Short: "Ask about a work or a philosophical theme",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := library.ChatAboutWork
			if theme {
				kind = library.ChatAboutTheme
			}
			reply, err := a.container.Gateway().Chat(cmd.Context(), strings.Join(args[1:], " "), nil, args[0], kind)
			if err != nil {
				return err
			}
			return a.print(cmd, map[string]string{"reply": reply}, func(w io.Writer) {
				fmt.Fprintln(w, reply)
			})
		},
	}

	cmd.Flags().BoolVar(&theme, "theme", false, "treat <title> as a philosophical theme")
	return cmd
}

func (a *app) clearCommand() *cobra.Command {
	var contentOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.container.Gateway().Clear(cmd.Context(), contentOnly); err != nil {
				return err
			}
			return a.print(cmd, map[string]bool{"cleared": true, "contentOnly": contentOnly}, func(w io.Writer) {
				if contentOnly {
					fmt.Fprintln(w, "cleared cached content, stored works kept")
					return
				}
				fmt.Fprintln(w, "cleared cached content and stored works")
			})
		},
	}

	cmd.Flags().BoolVar(&contentOnly, "content-only", false, "keep stored works")
	return cmd
}

func printWorks(w io.Writer, works []library.Work) {
	for _, work := range works {
		fmt.Fprintf(w, "%-14s %s, %s (%s)\n", work.ID, work.Title, work.Author, work.Year)
	}
}
