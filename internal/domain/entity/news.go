// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as News and NewsTranslation, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// TranslationStatus describes how far the automatic translation of a news
// item has progressed.
type TranslationStatus string

const (
	// TranslationPending means the derived translation has not been attempted yet.
	TranslationPending TranslationStatus = "pending"

	// TranslationPartial means a derivation was attempted but the translation
	// provider failed; only the authored translation is present.
	TranslationPartial TranslationStatus = "partial"

	// TranslationComplete means both language variants are present.
	TranslationComplete TranslationStatus = "complete"
)

// News represents a published news item. The textual content lives in the
// attached translations; the news row itself only carries language-independent
// fields.
type News struct {
	ID                int64
	ImagePath         string
	TranslationStatus TranslationStatus
	CreatedAt         time.Time
	Translations      []*NewsTranslation
}

// TranslationFor returns the attached translation in the given language,
// or nil if none is attached.
func (n *News) TranslationFor(language string) *NewsTranslation {
	for _, t := range n.Translations {
		if t.Language == language {
			return t
		}
	}
	return nil
}

// SetTranslation attaches a translation, replacing any attached one in the
// same language.
func (n *News) SetTranslation(t *NewsTranslation) {
	for i, existing := range n.Translations {
		if existing.Language == t.Language {
			n.Translations[i] = t
			return
		}
	}
	n.Translations = append(n.Translations, t)
}

// NewsTranslation is one language variant of a news item. A news item holds
// at most one translation per language.
type NewsTranslation struct {
	ID       int64
	NewsID   int64
	Language string
	Title    string
	Subtitle string // optional; empty means absent
	Body     string
}

// AdminUser is an administrator account allowed to manage news.
type AdminUser struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
}
