package gateway

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-reading-cache/library"
)

func analysisPrompt(title, author string) string {
	return fmt.Sprintf("Erstelle eine tiefschürfende Analyse zu %q von %s.", title, author)
}

func tableOfContentsPrompt(title string) string {
	return fmt.Sprintf("Inhaltsverzeichnis von %q.", title)
}

func chapterPrompt(work library.Work, chapter string, pref library.ReadingPreference, focus string) string {
	var b strings.Builder
	if work.IsPublicDomain {
		fmt.Fprintf(&b, "GIB DEN VOLLSTÄNDIGEN ORIGINALTEXT (VERBATIM) von %q aus %q von %s aus.\n", chapter, work.Title, work.Author)
		b.WriteString("WICHTIG: Das Werk ist gemeinfrei. Liefere den echten Text Wort für Wort.\n")
		b.WriteString("KEINE Zusammenfassungen. Gib nur den reinen literarischen Text zurück.")
	} else {
		fmt.Fprintf(&b, "Erstelle eine SEHR AUSFÜHRLICHE Nacherzählung von %q aus %q. Behalte den Stil des Autors bei.", chapter, work.Title)
	}
	if pref == library.Focused && focus != "" {
		fmt.Fprintf(&b, "\nLege den Schwerpunkt auf: %q.", focus)
	}
	return b.String()
}

func chatInstruction(title string, kind library.ChatKind) string {
	subject := fmt.Sprintf("das Werk %q", title)
	if kind == library.ChatAboutTheme {
		subject = fmt.Sprintf("das philosophische Thema %q", title)
	}
	return fmt.Sprintf("Deine Leserin möchte mit dir über %s sprechen. Sei charmant und klug.", subject)
}

const categorizedPrompt = "Erstelle eine literarische Auswahl für die Bibliothek."

func recommendPrompt(intent string) string {
	if intent == "" {
		intent = "GENERAL"
	}
	return fmt.Sprintf("Empfiehl 6 Bücher für den Bereich %s.", intent)
}

func searchPrompt(query string) string {
	return fmt.Sprintf("Suche nach: %q.", query)
}

func quizPrompt(topic string, difficulty library.Difficulty, focus library.QuizFocus) string {
	return fmt.Sprintf("Erstelle ein Quiz zu %q. Schwierigkeit: %s. Schwerpunkt: %s.", topic, difficulty, focus)
}

const storyInstruction = "Nimm die Leserin mit auf eine immersive Reise."

func storyPrompt(title, context, choice, deepDive string) string {
	var prompt string
	switch {
	case deepDive != "":
		prompt = fmt.Sprintf("Vertiefung: %q.", deepDive)
	case choice != "":
		prompt = fmt.Sprintf("Entscheidung: %q.", choice)
	default:
		prompt = fmt.Sprintf("Lass uns %q atmosphärisch nacherleben.", title)
	}
	if context != "" {
		prompt = fmt.Sprintf("Bisheriger Verlauf:\n%s\n\n%s", context, prompt)
	}
	return prompt
}

func discoveryPrompt(contextWord string) string {
	if contextWord == "" {
		return "Überrasche mit einem literarischen Fundstück."
	}
	return fmt.Sprintf("Interesse an: %q.", contextWord)
}
