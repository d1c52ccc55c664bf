package news

import (
	"errors"
	"net/http"

	"newsportal/internal/domain/entity"
	"newsportal/internal/handler/http/respond"
	"newsportal/internal/infra/imagestore"
	newsUC "newsportal/internal/usecase/news"
)

// Multipart forms buffer up to this much in memory before spilling to disk.
const maxMultipartMemory = 8 << 20

type CreateHandler struct{ Svc *newsUC.Service }

// ServeHTTP publishes a news item from a multipart form: title, subtitle,
// body, language, and the image file. Responds 201 with the new ID.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid multipart form"))
		return
	}

	in := newsUC.CreateInput{
		Language: r.FormValue("language"),
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		Body:     r.FormValue("body"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		in.Image = &newsUC.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      file,
		}
	case errors.Is(err, http.ErrMissingFile):
		// Left nil; the service answers with ErrImageRequired.
	default:
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid image upload"))
		return
	}

	id, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		respond.SafeError(w, writeErrorCode(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// writeErrorCode maps service errors of the mutating endpoints to statuses.
func writeErrorCode(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, newsUC.ErrImageRequired),
		errors.Is(err, newsUC.ErrInvalidNewsID),
		errors.Is(err, imagestore.ErrUnsupportedImageType):
		return http.StatusBadRequest
	case errors.Is(err, newsUC.ErrNewsNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
