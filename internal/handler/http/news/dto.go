package news

import (
	"time"

	"newsportal/internal/domain/entity"
)

// TranslationDTO is the JSON shape of one language variant.
type TranslationDTO struct {
	Language string `json:"language"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body"`
}

// DTO is the JSON shape of a news item. Feed responses carry the one
// negotiated-language translation; the detail response carries all of them.
type DTO struct {
	ID                int64            `json:"id"`
	ImagePath         string           `json:"image_path,omitempty"`
	TranslationStatus string           `json:"translation_status"`
	CreatedAt         time.Time        `json:"created_at"`
	Translation       *TranslationDTO  `json:"translation,omitempty"`
	Translations      []TranslationDTO `json:"translations,omitempty"`
}

func translationDTO(t *entity.NewsTranslation) TranslationDTO {
	return TranslationDTO{
		Language: t.Language,
		Title:    t.Title,
		Subtitle: t.Subtitle,
		Body:     t.Body,
	}
}

// feedDTO renders a feed item with its single negotiated translation.
func feedDTO(n *entity.News, language string) DTO {
	out := DTO{
		ID:                n.ID,
		ImagePath:         n.ImagePath,
		TranslationStatus: string(n.TranslationStatus),
		CreatedAt:         n.CreatedAt,
	}
	if t := n.TranslationFor(language); t != nil {
		dto := translationDTO(t)
		out.Translation = &dto
	}
	return out
}

// detailDTO renders a full item with every stored translation.
func detailDTO(n *entity.News) DTO {
	out := DTO{
		ID:                n.ID,
		ImagePath:         n.ImagePath,
		TranslationStatus: string(n.TranslationStatus),
		CreatedAt:         n.CreatedAt,
	}
	for _, t := range n.Translations {
		out.Translations = append(out.Translations, translationDTO(t))
	}
	return out
}
