package provider

import "google.golang.org/genai"

// Response shapes requested from the model. Each call returns a fresh schema.

func stringSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeString}
}

func stringListSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: stringSchema()}
}

// WorkSchema describes one library.Work.
func WorkSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":             stringSchema(),
			"title":          stringSchema(),
			"author":         stringSchema(),
			"year":           stringSchema(),
			"description":    stringSchema(),
			"category":       stringSchema(),
			"isPublicDomain": {Type: genai.TypeBoolean},
		},
		Required: []string{"id", "title", "author", "year", "description", "category", "isPublicDomain"},
	}
}

// WorkListSchema describes a list of works.
func WorkListSchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: WorkSchema()}
}

// CategorizedWorksSchema describes library.CategorizedWorks.
func CategorizedWorksSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"classics":     WorkListSchema(),
			"contemporary": WorkListSchema(),
			"nonEuropean":  WorkListSchema(),
		},
		Required: []string{"classics", "contemporary", "nonEuropean"},
	}
}

// TableOfContentsSchema describes a list of chapter labels.
func TableOfContentsSchema() *genai.Schema {
	return stringListSchema()
}

// ChapterSchema describes library.ChapterContent.
func ChapterSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":       stringSchema(),
			"isOriginal": {Type: genai.TypeBoolean},
		},
		Required: []string{"text", "isOriginal"},
	}
}

// QuizSchema describes a list of library.QuizQuestion.
func QuizSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question":           stringSchema(),
				"options":            stringListSchema(),
				"correctAnswerIndex": {Type: genai.TypeInteger},
				"explanation":        stringSchema(),
			},
			Required: []string{"question", "options", "correctAnswerIndex", "explanation"},
		},
	}
}

// StorySchema describes library.StorySegment.
func StorySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"narrative": stringSchema(),
			"choices":   stringListSchema(),
		},
		Required: []string{"narrative", "choices"},
	}
}

// DiscoverySchema describes library.DiscoveryFragment.
func DiscoverySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":        stringSchema(),
			"keywords":    stringListSchema(),
			"imagePrompt": stringSchema(),
			"sourceInfo":  stringSchema(),
		},
		Required: []string{"text", "keywords"},
	}
}
