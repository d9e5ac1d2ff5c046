package library

import "strings"

// StarterCatalog is shown before anything has been fetched or stored.
var StarterCatalog = []Work{
	{
		ID:             "faust",
		Title:          "Faust. Eine Tragödie",
		Author:         "Johann Wolfgang von Goethe",
		Year:           "1808",
		Description:    "Das bedeutendste Werk der deutschen Literatur. Ein Gelehrter schließt einen Pakt mit dem Teufel.",
		Category:       "German",
		IsPublicDomain: true,
	},
	{
		ID:             "verwandlung",
		Title:          "Die Verwandlung",
		Author:         "Franz Kafka",
		Year:           "1915",
		Description:    "Gregor Samsa erwacht eines Morgens und findet sich zu einem ungeheuren Ungeziefer verwandelt.",
		Category:       "German",
		IsPublicDomain: true,
	},
	{
		ID:             "zarathustra",
		Title:          "Also sprach Zarathustra",
		Author:         "Friedrich Nietzsche",
		Year:           "1883",
		Description:    "Ein philosophisches Dichtwerk, das den Übermenschen und den Tod Gottes thematisiert.",
		Category:       "Philosophy",
		IsPublicDomain: true,
	},
}

// FindWork returns the first work whose id matches, searching the given
// collections in order.
func FindWork(id string, collections ...[]Work) (Work, bool) {
	id = strings.TrimSpace(id)
	for _, works := range collections {
		for _, w := range works {
			if strings.EqualFold(w.ID, id) {
				return w, true
			}
		}
	}
	return Work{}, false
}
