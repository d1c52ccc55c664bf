package news

import (
	"errors"
	"net/http"

	"newsportal/internal/handler/http/pathutil"
	"newsportal/internal/handler/http/respond"
	newsUC "newsportal/internal/usecase/news"
)

type UpdateHandler struct{ Svc *newsUC.Service }

// ServeHTTP applies an edit from a multipart form. The image is optional;
// when present it replaces the stored one.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/news/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid multipart form"))
		return
	}

	in := newsUC.UpdateInput{
		ID:       id,
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
		// Keep the stored image.
	default:
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid image upload"))
		return
	}

	if err := h.Svc.Update(r.Context(), in); err != nil {
		respond.SafeError(w, writeErrorCode(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
