package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReadingPreference(t *testing.T) {
	tests := []struct {
		in      string
		want    ReadingPreference
		wantErr bool
	}{
		{in: "", want: Chronological},
		{in: "chronological", want: Chronological},
		{in: " FOCUSED ", want: Focused},
		{in: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReadingPreference(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, StarterCatalog[0].Validate())
	assert.Error(t, Work{Title: "No id"}.Validate())

	assert.NoError(t, ChapterContent{Text: "Habe nun, ach!"}.Validate())
	assert.Error(t, ChapterContent{IsOriginal: true}.Validate())

	assert.NoError(t, TableOfContents{"Zueignung", "Prolog im Himmel"}.Validate())
	assert.Error(t, TableOfContents{}.Validate())
	assert.Error(t, TableOfContents{"Zueignung", ""}.Validate())

	assert.NoError(t, QuizQuestion{Question: "Wer?", Options: []string{"a", "b"}, CorrectAnswerIndex: 1}.Validate())
	assert.Error(t, QuizQuestion{Question: "Wer?", Options: []string{"a", "b"}, CorrectAnswerIndex: 2}.Validate())
	assert.Error(t, QuizQuestion{Question: "Wer?", Options: []string{"a"}}.Validate())

	assert.Error(t, StorySegment{Choices: []string{"weiter"}}.Validate())
	assert.Error(t, DiscoveryFragment{Keywords: []string{"x"}}.Validate())

	assert.Error(t, CategorizedWorks{Classics: []Work{{ID: "x"}}}.Validate())
	assert.NoError(t, CategorizedWorks{Classics: StarterCatalog}.Validate())
}

func TestTableOfContentsClone(t *testing.T) {
	toc := TableOfContents{"I", "II"}
	clone := toc.Clone()
	clone[0] = "changed"
	assert.Equal(t, "I", toc[0])
	assert.Nil(t, TableOfContents(nil).Clone())
}

func TestFindWork(t *testing.T) {
	stored := []Work{{ID: "faust", Title: "Stored Faust", Author: "Goethe"}}

	w, ok := FindWork("FAUST", stored, StarterCatalog)
	require.True(t, ok)
	assert.Equal(t, "Stored Faust", w.Title)

	w, ok = FindWork("zarathustra", stored, StarterCatalog)
	require.True(t, ok)
	assert.Equal(t, "Friedrich Nietzsche", w.Author)

	_, ok = FindWork("unknown", stored, StarterCatalog)
	assert.False(t, ok)
}
