package persistence

import (
	"time"

	"github.com/goliatone/go-reading-cache/library"
	"github.com/uptrace/bun"
)

// SchemaVersion is stamped into PRAGMA user_version once both tables exist.
const SchemaVersion = 1

type workRecord struct {
	bun.BaseModel `bun:"table:works,alias:w"`

	ID             string    `bun:"id,pk"`
	Title          string    `bun:"title,notnull"`
	Author         string    `bun:"author,notnull"`
	Year           string    `bun:"year"`
	Description    string    `bun:"description"`
	Category       string    `bun:"category"`
	IsPublicDomain bool      `bun:"is_public_domain,notnull"`
	UpdatedAt      time.Time `bun:"updated_at,notnull"`
}

type contentRecord struct {
	bun.BaseModel `bun:"table:content,alias:c"`

	CacheKey  string    `bun:"cache_key,pk"`
	Payload   string    `bun:"payload,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func newWorkRecord(w library.Work, now time.Time) *workRecord {
	return &workRecord{
		ID:             w.ID,
		Title:          w.Title,
		Author:         w.Author,
		Year:           w.Year,
		Description:    w.Description,
		Category:       w.Category,
		IsPublicDomain: w.IsPublicDomain,
		UpdatedAt:      now,
	}
}

func (r workRecord) toWork() library.Work {
	return library.Work{
		ID:             r.ID,
		Title:          r.Title,
		Author:         r.Author,
		Year:           r.Year,
		Description:    r.Description,
		Category:       r.Category,
		IsPublicDomain: r.IsPublicDomain,
	}
}
