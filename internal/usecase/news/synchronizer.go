package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsportal/internal/domain/entity"
	"newsportal/internal/infra/translator"
	"newsportal/internal/observability/metrics"
	"newsportal/internal/repository"
)

// Synchronizer keeps the two language versions of a news item in step.
// Whenever a translation is authored or edited, it derives the
// complementary-language translation through the translation provider and
// tracks progress in the news item's translation status.
//
// Provider failures are tolerated: the authored content is already durable by
// the time translation runs, so the item is marked partial and picked up
// later by the reconciliation worker.
type Synchronizer struct {
	Repo       repository.NewsRepository
	Translator translator.Translator
}

// Create persists a news item with its authored translation, then derives
// the complementary-language translation. The news and translation IDs are
// assigned by the repository. Only a failure to persist the item itself
// fails the call: once the row is durable, translation trouble of any kind
// (provider down, derived row not saved) leaves the item in a non-complete
// status for the reconciliation worker to repair.
func (s *Synchronizer) Create(ctx context.Context, item *entity.News, authored *entity.NewsTranslation) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	item.TranslationStatus = entity.TranslationPending

	if err := s.Repo.Create(ctx, item, authored); err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	item.Translations = []*entity.NewsTranslation{authored}

	return s.sync(ctx, item, authored)
}

// Update persists an edited translation, upserting it on (news, language),
// and re-derives the complementary translation so both languages reflect the
// edit. Same failure semantics as Create: only the persist of the edit
// itself can fail the call.
func (s *Synchronizer) Update(ctx context.Context, item *entity.News, edited *entity.NewsTranslation) error {
	item.TranslationStatus = entity.TranslationPending

	if err := s.Repo.Update(ctx, item, edited); err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	item.SetTranslation(edited)

	return s.sync(ctx, item, edited)
}

// Ensure repairs a news item whose complementary translation is missing,
// deriving it from whichever translation exists. It is a no-op for items
// already marked complete and for items with no translations at all.
func (s *Synchronizer) Ensure(ctx context.Context, item *entity.News) error {
	if item.TranslationStatus == entity.TranslationComplete {
		return nil
	}

	for _, tr := range item.Translations {
		if item.TranslationFor(entity.PairLanguage(tr.Language)) == nil {
			return s.sync(ctx, item, tr)
		}
	}

	if len(item.Translations) == 0 {
		slog.Warn("news item has no translations to derive from",
			slog.Int64("news_id", item.ID))
		return nil
	}

	// Both languages are already present; only the status lags.
	return s.markComplete(ctx, item)
}

// sync derives the complementary-language translation from source and
// persists it together with the resulting status. It always returns nil:
// the source row is durable by the time sync runs, so any failure here
// (provider unavailable, derived row or status not saved) is logged and
// left for the reconciliation worker, which picks up every item whose
// stored status is not complete.
func (s *Synchronizer) sync(ctx context.Context, item *entity.News, source *entity.NewsTranslation) error {
	start := time.Now()
	derived, err := s.derive(ctx, source)
	metrics.RecordTranslationDuration(time.Since(start))
	metrics.RecordTranslationDerived(err == nil)
	if err != nil {
		slog.Warn("translation derivation failed",
			slog.Int64("news_id", item.ID),
			slog.String("source_language", source.Language),
			slog.String("error", err.Error()))

		item.TranslationStatus = entity.TranslationPartial
		if uerr := s.Repo.Update(ctx, item, source); uerr != nil {
			// The stored status stays pending; still repairable.
			slog.Error("failed to mark news partial",
				slog.Int64("news_id", item.ID),
				slog.String("error", uerr.Error()))
		}
		return nil
	}

	item.TranslationStatus = entity.TranslationComplete
	if err := s.Repo.Update(ctx, item, derived); err != nil {
		item.TranslationStatus = entity.TranslationPending
		slog.Error("failed to save derived translation",
			slog.Int64("news_id", item.ID),
			slog.String("derived_language", derived.Language),
			slog.String("error", err.Error()))
		return nil
	}
	item.SetTranslation(derived)

	slog.Info("translation synchronized",
		slog.Int64("news_id", item.ID),
		slog.String("source_language", source.Language),
		slog.String("derived_language", derived.Language))
	return nil
}

// derive translates title, subtitle and body into the paired language.
// An empty subtitle stays empty without a provider call.
func (s *Synchronizer) derive(ctx context.Context, source *entity.NewsTranslation) (*entity.NewsTranslation, error) {
	target := entity.PairLanguage(source.Language)

	title, err := s.Translator.Translate(ctx, source.Title, source.Language, target)
	if err != nil {
		return nil, fmt.Errorf("translate title: %w", err)
	}

	var subtitle string
	if source.Subtitle != "" {
		subtitle, err = s.Translator.Translate(ctx, source.Subtitle, source.Language, target)
		if err != nil {
			return nil, fmt.Errorf("translate subtitle: %w", err)
		}
	}

	body, err := s.Translator.Translate(ctx, source.Body, source.Language, target)
	if err != nil {
		return nil, fmt.Errorf("translate body: %w", err)
	}

	return &entity.NewsTranslation{
		NewsID:   source.NewsID,
		Language: target,
		Title:    title,
		Subtitle: subtitle,
		Body:     body,
	}, nil
}

func (s *Synchronizer) markComplete(ctx context.Context, item *entity.News) error {
	item.TranslationStatus = entity.TranslationComplete
	if err := s.Repo.Update(ctx, item, item.Translations[0]); err != nil {
		return fmt.Errorf("mark complete: %w", err)
	}
	return nil
}
