package library

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the fields every stored or recommended work must carry.
func (w Work) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required),
		validation.Field(&w.Title, validation.Required),
		validation.Field(&w.Author, validation.Required),
	)
}

// Validate rejects chapter payloads without text.
func (c ChapterContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Text, validation.Required),
	)
}

// Validate rejects tables of contents that are empty or contain blank labels.
func (t TableOfContents) Validate() error {
	return validation.Validate([]string(t),
		validation.Required,
		validation.Each(validation.Required),
	)
}

// Validate checks that the question is answerable.
func (q QuizQuestion) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Question, validation.Required),
		validation.Field(&q.Options, validation.Required, validation.Length(2, 0)),
		validation.Field(&q.CorrectAnswerIndex, validation.Min(0), validation.Max(len(q.Options)-1)),
	)
}

// Validate requires narrative text; choices may be empty at the end of a story.
func (s StorySegment) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Narrative, validation.Required),
	)
}

// Validate requires text for a discovery fragment.
func (d DiscoveryFragment) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Text, validation.Required),
	)
}

// Validate checks every work in every category.
func (c CategorizedWorks) Validate() error {
	for _, group := range [][]Work{c.Classics, c.Contemporary, c.NonEuropean} {
		for _, w := range group {
			if err := w.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
