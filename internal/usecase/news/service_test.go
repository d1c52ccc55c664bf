package news_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"newsportal/internal/common/pagination"
	"newsportal/internal/domain/entity"
	newsUC "newsportal/internal/usecase/news"
)

// fakeImages records saved and removed image paths.
type fakeImages struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeImages) Save(_ context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := fmt.Sprintf("stored-%d-%s", len(f.saved), filename)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeImages) Remove(_ context.Context, path string) error {
	f.removed = append(f.removed, path)
	return nil
}

func newService(repo *stubRepo, tr *fakeTranslator, images *fakeImages) *newsUC.Service {
	return &newsUC.Service{
		Repo:   repo,
		Sync:   &newsUC.Synchronizer{Repo: repo, Translator: tr},
		Images: images,
	}
}

func upload() *newsUC.ImageUpload {
	return &newsUC.ImageUpload{
		Filename:    "cover.jpg",
		ContentType: "image/jpeg",
		Size:        3,
		Reader:      strings.NewReader("img"),
	}
}

func TestService_Create(t *testing.T) {
	repo := newStub()
	images := &fakeImages{}
	svc := newService(repo, &fakeTranslator{}, images)

	id, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "RU",
		Title:    "Привет мир",
		Body:     "Текст новости",
		Image:    upload(),
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if id == 0 {
		t.Fatal("Create returned zero id")
	}
	if len(images.saved) != 1 {
		t.Fatalf("expected 1 stored image, got %d", len(images.saved))
	}

	stored := repo.data[id]
	if stored.ImagePath != images.saved[0] {
		t.Fatalf("image path %q not persisted", images.saved[0])
	}
	// Language is normalized before validation and persistence.
	if stored.Translations[0].Language != "ru" {
		t.Fatalf("language=%q, want ru", stored.Translations[0].Language)
	}
}

func TestService_Create_ValidationFailsBeforeStorage(t *testing.T) {
	images := &fakeImages{}
	svc := newService(newStub(), &fakeTranslator{}, images)

	_, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "ru",
		Title:    "English title for a russian item",
		Body:     "Также английский body",
		Image:    upload(),
	})
	var verr *entity.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(images.saved) != 0 {
		t.Fatal("invalid input must not reach the image store")
	}
}

func TestService_Create_ImageRequired(t *testing.T) {
	svc := newService(newStub(), &fakeTranslator{}, &fakeImages{})

	_, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "ru", Title: "Привет", Body: "Текст",
	})
	if !errors.Is(err, newsUC.ErrImageRequired) {
		t.Fatalf("expected ErrImageRequired, got %v", err)
	}
}

func TestService_Create_ImageRemovedOnPersistFailure(t *testing.T) {
	repo := newStub()
	repo.createErr = errors.New("db down")
	images := &fakeImages{}
	svc := newService(repo, &fakeTranslator{}, images)

	_, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "ru", Title: "Привет", Body: "Текст", Image: upload(),
	})
	if err == nil {
		t.Fatal("Create should fail when persistence fails")
	}
	if len(images.removed) != 1 {
		t.Fatal("orphaned image was not cleaned up")
	}
}

func TestService_Create_ImageKeptWhenDerivedSaveFails(t *testing.T) {
	repo := newStub()
	repo.updateErr = errors.New("db down")
	images := &fakeImages{}
	svc := newService(repo, &fakeTranslator{}, images)

	id, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "ru", Title: "Привет", Body: "Текст", Image: upload(),
	})
	if err != nil {
		t.Fatalf("the item is durable, Create must not fail: %v", err)
	}

	stored := repo.data[id]
	if stored == nil {
		t.Fatal("item was not stored")
	}
	if stored.ImagePath != images.saved[0] {
		t.Fatalf("stored image path %q, want %q", stored.ImagePath, images.saved[0])
	}
	if len(images.removed) != 0 {
		t.Fatalf("image referenced by a stored item was removed: %v", images.removed)
	}
}

func TestService_Update_NewImageKeptWhenDerivedSaveFails(t *testing.T) {
	repo := newStub()
	images := &fakeImages{}
	svc := newService(repo, &fakeTranslator{}, images)

	id, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "ru", Title: "Привет", Body: "Текст", Image: upload(),
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	// The edit persists, then saving the re-derived translation fails.
	repo.updateErr = errors.New("db down")
	repo.updateOKBudget = 1

	err = svc.Update(context.Background(), newsUC.UpdateInput{
		ID: id, Language: "ru", Title: "Обновлено", Body: "Текст", Image: upload(),
	})
	if err != nil {
		t.Fatalf("the edit is durable, Update must not fail: %v", err)
	}

	stored := repo.data[id]
	if stored.ImagePath != images.saved[1] {
		t.Fatalf("stored image path %q, want the replacement %q", stored.ImagePath, images.saved[1])
	}
	// The old image is unreferenced now and the new one must survive.
	if len(images.removed) != 1 || images.removed[0] != images.saved[0] {
		t.Fatalf("removed=%v, want only the old image %q", images.removed, images.saved[0])
	}
}

func TestService_Get(t *testing.T) {
	repo := newStub()
	svc := newService(repo, &fakeTranslator{}, &fakeImages{})

	id, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "ru", Title: "Привет", Body: "Текст", Image: upload(),
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	item, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if len(item.Translations) != 2 {
		t.Fatalf("expected both translations, got %d", len(item.Translations))
	}
}

func TestService_Get_Errors(t *testing.T) {
	svc := newService(newStub(), &fakeTranslator{}, &fakeImages{})

	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, newsUC.ErrInvalidNewsID) {
		t.Fatalf("expected ErrInvalidNewsID, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, newsUC.ErrNewsNotFound) {
		t.Fatalf("expected ErrNewsNotFound, got %v", err)
	}
}

func TestService_Update(t *testing.T) {
	repo := newStub()
	images := &fakeImages{}
	svc := newService(repo, &fakeTranslator{}, images)

	id, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "ru", Title: "Привет", Body: "Текст", Image: upload(),
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	firstImage := images.saved[0]

	err = svc.Update(context.Background(), newsUC.UpdateInput{
		ID: id, Language: "ru", Title: "Обновлено", Body: "Новый текст",
		Image: upload(),
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}

	stored := repo.data[id]
	if stored.TranslationFor("ru").Title != "Обновлено" {
		t.Fatalf("edited title not persisted: %+v", stored.TranslationFor("ru"))
	}
	if stored.ImagePath == firstImage {
		t.Fatal("image was not replaced")
	}
	if len(images.removed) != 1 || images.removed[0] != firstImage {
		t.Fatalf("old image not removed: %v", images.removed)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newService(newStub(), &fakeTranslator{}, &fakeImages{})

	err := svc.Update(context.Background(), newsUC.UpdateInput{
		ID: 42, Language: "ru", Title: "Привет", Body: "Текст",
	})
	if !errors.Is(err, newsUC.ErrNewsNotFound) {
		t.Fatalf("expected ErrNewsNotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := newStub()
	images := &fakeImages{}
	svc := newService(repo, &fakeTranslator{}, images)

	id, err := svc.Create(context.Background(), newsUC.CreateInput{
		Language: "ru", Title: "Привет", Body: "Текст", Image: upload(),
	})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if _, ok := repo.data[id]; ok {
		t.Fatal("item still present after Delete")
	}
	if len(images.removed) != 1 {
		t.Fatal("stored image not removed with the item")
	}

	// Deleting again is a no-op.
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("repeat Delete err=%v", err)
	}
	if err := svc.Delete(context.Background(), -1); !errors.Is(err, newsUC.ErrInvalidNewsID) {
		t.Fatalf("expected ErrInvalidNewsID, got %v", err)
	}
}

func TestService_ListPage_Metadata(t *testing.T) {
	repo := newStub()
	svc := newService(repo, &fakeTranslator{}, &fakeImages{})

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), newsUC.CreateInput{
			Language: "ru", Title: "Привет", Body: "Текст", Image: upload(),
		})
		if err != nil {
			t.Fatalf("Create err=%v", err)
		}
	}

	result, err := svc.ListPage(context.Background(), pagination.Params{Page: 1, Limit: 2}, "ru")
	if err != nil {
		t.Fatalf("ListPage err=%v", err)
	}
	if result.Pagination.Total != 3 || result.Pagination.TotalPages != 2 {
		t.Fatalf("metadata: %+v", result.Pagination)
	}
}

func TestService_Latest(t *testing.T) {
	repo := newStub()
	svc := newService(repo, &fakeTranslator{}, &fakeImages{})

	if _, err := svc.Latest(context.Background(), 5, "ru"); err != nil {
		t.Fatalf("Latest err=%v", err)
	}
	repo.listErr = errors.New("db down")
	if _, err := svc.Latest(context.Background(), 5, "ru"); err == nil {
		t.Fatal("Latest should propagate repository errors")
	}
}
