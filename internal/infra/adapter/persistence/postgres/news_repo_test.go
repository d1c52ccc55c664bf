package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"newsportal/internal/domain/entity"
	"newsportal/internal/infra/adapter/persistence/postgres"
)

var feedColumns = []string{
	"id", "image_path", "translation_status", "created_at",
	"t_id", "t_language", "t_title", "t_subtitle", "t_body",
}

func TestNewsRepo_ListPage(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	rows := sqlmock.NewRows(feedColumns).
		AddRow(2, "uploads/a.jpg", "complete", now,
			20, "ru", "Заголовок", "Подзаголовок", "Текст").
		AddRow(1, nil, "pending", now.Add(-time.Hour),
			nil, nil, nil, nil, nil)

	mock.ExpectQuery("FROM news").
		WithArgs("ru", 10, 0).
		WillReturnRows(rows)

	repo := postgres.NewNewsRepo(db)
	got, err := repo.ListPage(context.Background(), 0, 10, "ru")
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPage expected 2 items, got %d", len(got))
	}
	want := &entity.News{
		ID: 2, ImagePath: "uploads/a.jpg",
		TranslationStatus: entity.TranslationComplete, CreatedAt: now,
		Translations: []*entity.NewsTranslation{{
			ID: 20, NewsID: 2, Language: "ru",
			Title: "Заголовок", Subtitle: "Подзаголовок", Body: "Текст",
		}},
	}
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("ListPage mismatch (-want +got):\n%s", diff)
	}
	// Item without a translation in the requested language still comes back.
	if got[1].ID != 1 || len(got[1].Translations) != 0 {
		t.Fatalf("ListPage untranslated item: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_ListLatest(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(feedColumns).
		AddRow(1, nil, "complete", time.Now(),
			11, "en", "Title", nil, "Body")

	mock.ExpectQuery("FROM news").
		WithArgs("en", 3).
		WillReturnRows(rows)

	repo := postgres.NewNewsRepo(db)
	got, err := repo.ListLatest(context.Background(), 3, "en")
	if err != nil {
		t.Fatalf("ListLatest err=%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListLatest expected 1 item, got %d", len(got))
	}
	tr := got[0].TranslationFor("en")
	if tr == nil || tr.Title != "Title" || tr.Subtitle != "" {
		t.Fatalf("ListLatest translation: %+v", tr)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, image_path, translation_status, created_at")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "image_path", "translation_status", "created_at"}).
			AddRow(1, "uploads/a.jpg", "complete", now))
	mock.ExpectQuery("FROM news_translations").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "news_id", "language", "title", "subtitle", "body"}).
			AddRow(10, 1, "ru", "Заголовок", nil, "Текст").
			AddRow(11, 1, "en", "Title", nil, "Body"))

	repo := postgres.NewNewsRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	want := &entity.News{
		ID: 1, ImagePath: "uploads/a.jpg",
		TranslationStatus: entity.TranslationComplete, CreatedAt: now,
		Translations: []*entity.NewsTranslation{
			{ID: 10, NewsID: 1, Language: "ru", Title: "Заголовок", Body: "Текст"},
			{ID: 11, NewsID: 1, Language: "en", Title: "Title", Body: "Body"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Get mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM news").
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "image_path", "translation_status", "created_at"}))

	repo := postgres.NewNewsRepo(db)
	got, err := repo.Get(context.Background(), 999)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("Get expected nil for missing id, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Count(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM news")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	repo := postgres.NewNewsRepo(db)
	count, err := repo.Count(context.Background())
	if err != nil || count != 42 {
		t.Fatalf("Count err=%v count=%d", err, count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO news ")).
		WithArgs(sqlmock.AnyArg(), "pending", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO news_translations")).
		WithArgs(int64(5), "ru", "Заголовок", sqlmock.AnyArg(), "Текст").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(50))
	mock.ExpectCommit()

	news := &entity.News{TranslationStatus: entity.TranslationPending, CreatedAt: now}
	translation := &entity.NewsTranslation{Language: "ru", Title: "Заголовок", Body: "Текст"}

	repo := postgres.NewNewsRepo(db)
	if err := repo.Create(context.Background(), news, translation); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if news.ID != 5 || translation.ID != 50 || translation.NewsID != 5 {
		t.Fatalf("Create ids: news=%d translation=%d newsID=%d",
			news.ID, translation.ID, translation.NewsID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Create_TranslationFails(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO news ")).
		WithArgs(sqlmock.AnyArg(), "pending", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO news_translations")).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	news := &entity.News{TranslationStatus: entity.TranslationPending, CreatedAt: time.Now()}
	translation := &entity.NewsTranslation{Language: "ru", Title: "Заголовок", Body: "Текст"}

	repo := postgres.NewNewsRepo(db)
	if err := repo.Create(context.Background(), news, translation); err == nil {
		t.Fatal("Create should fail when the translation insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Update_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE news").
		WithArgs(int64(5), sqlmock.AnyArg(), "complete").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("ON CONFLICT").
		WithArgs(int64(5), "en", "Title", sqlmock.AnyArg(), "Body").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(51))
	mock.ExpectCommit()

	news := &entity.News{ID: 5, TranslationStatus: entity.TranslationComplete}
	translation := &entity.NewsTranslation{Language: "en", Title: "Title", Body: "Body"}

	repo := postgres.NewNewsRepo(db)
	if err := repo.Update(context.Background(), news, translation); err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if translation.ID != 51 || translation.NewsID != 5 {
		t.Fatalf("Update ids: translation=%d newsID=%d", translation.ID, translation.NewsID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DELETE FROM news").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := postgres.NewNewsRepo(db)
	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_Delete_NonExistent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DELETE FROM news").
		WithArgs(int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := postgres.NewNewsRepo(db)
	// Deleting a missing id affects no rows and succeeds.
	if err := repo.Delete(context.Background(), 999); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_ListIncomplete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	columns := []string{
		"id", "image_path", "translation_status", "created_at",
		"t_id", "t_news_id", "t_language", "t_title", "t_subtitle", "t_body",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(1, nil, "partial", now, 10, 1, "ru", "Заголовок", nil, "Текст").
		AddRow(2, nil, "pending", now, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery("translation_status <> 'complete'").
		WithArgs(100).
		WillReturnRows(rows)

	repo := postgres.NewNewsRepo(db)
	got, err := repo.ListIncomplete(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListIncomplete err=%v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListIncomplete expected 2 items, got %d", len(got))
	}
	if got[0].TranslationStatus != entity.TranslationPartial || len(got[0].Translations) != 1 {
		t.Fatalf("ListIncomplete partial item: %+v", got[0])
	}
	if got[1].TranslationStatus != entity.TranslationPending || len(got[1].Translations) != 0 {
		t.Fatalf("ListIncomplete pending item: %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestNewsRepo_ListIncomplete_GroupsRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	columns := []string{
		"id", "image_path", "translation_status", "created_at",
		"t_id", "t_news_id", "t_language", "t_title", "t_subtitle", "t_body",
	}
	// Two join rows for one news item collapse into one entity.
	rows := sqlmock.NewRows(columns).
		AddRow(1, nil, "partial", now, 10, 1, "ru", "Заголовок", nil, "Текст").
		AddRow(1, nil, "partial", now, 11, 1, "en", "Title", nil, "Body")

	mock.ExpectQuery("translation_status <> 'complete'").
		WithArgs(100).
		WillReturnRows(rows)

	repo := postgres.NewNewsRepo(db)
	got, err := repo.ListIncomplete(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListIncomplete err=%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListIncomplete expected 1 item, got %d", len(got))
	}
	if len(got[0].Translations) != 2 {
		t.Fatalf("ListIncomplete expected 2 translations, got %d", len(got[0].Translations))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
