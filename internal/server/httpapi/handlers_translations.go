package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ysolovyov/knorozov/internal/common"
)

type languageRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type languageUpdateRequest struct {
	Name string `json:"name"`
}

type pageRequest struct {
	Name string `json:"name"`
}

type entryRequest struct {
	Key string `json:"key"`
}

type translationRequest struct {
	Text string `json:"text"`
}

type translationResponse struct {
	Translation string `json:"translation"`
}

func (h *Handlers) listLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.translations.ListLanguages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, languages)
}

func (h *Handlers) getLanguage(w http.ResponseWriter, r *http.Request) {
	language, err := h.translations.GetLanguage(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "Language doesn't exist.")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, language)
}

func (h *Handlers) createLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.translations.CreateLanguage(r.Context(), currentUser(r), req.Code, req.Name); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Language already exists.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "Language was added!")
}

func (h *Handlers) updateLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.translations.UpdateLanguage(r.Context(), currentUser(r), chi.URLParam(r, "code"), req.Name); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "Language doesn't exist.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "Language was updated!")
}

func (h *Handlers) deleteLanguage(w http.ResponseWriter, r *http.Request) {
	if err := h.translations.DeleteLanguage(r.Context(), currentUser(r), chi.URLParam(r, "code")); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "Language doesn't exist.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "Language was removed!")
}

func (h *Handlers) listPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.translations.ListPages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (h *Handlers) getPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.translations.GetPage(r.Context(), chi.URLParam(r, "page_name"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "Translation page doesn't exist.")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) createPage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.translations.CreatePage(r.Context(), currentUser(r), req.Name); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Translation page already exists.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "Translation page was added!")
}

func (h *Handlers) deletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.translations.DeletePage(r.Context(), currentUser(r), chi.URLParam(r, "page_name")); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "Translation page doesn't exists.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "Translation page was deleted!")
}

func (h *Handlers) createEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.translations.CreateEntry(r.Context(), currentUser(r), chi.URLParam(r, "page_name"), req.Key); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "Translation entry already exists.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "Translation entry was added!")
}

func (h *Handlers) deleteEntry(w http.ResponseWriter, r *http.Request) {
	err := h.translations.DeleteEntry(r.Context(), currentUser(r), chi.URLParam(r, "page_name"), chi.URLParam(r, "entry_key"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "Translation entry doesn't exist.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "Translation entry was deleted!")
}

func (h *Handlers) getTranslation(w http.ResponseWriter, r *http.Request) {
	text, err := h.translations.GetTranslation(r.Context(),
		chi.URLParam(r, "page_name"), chi.URLParam(r, "entry_key"), chi.URLParam(r, "lang"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "Translation entry doesn't exist.")
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, translationResponse{Translation: text})
}

func (h *Handlers) setTranslation(w http.ResponseWriter, r *http.Request) {
	var req translationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.translations.SetTranslation(r.Context(), currentUser(r),
		chi.URLParam(r, "page_name"), chi.URLParam(r, "entry_key"), chi.URLParam(r, "lang"), req.Text)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			writeDetail(w, http.StatusForbidden, "You have no rights for this language.")
			return
		}
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "Translation entry doesn't exist.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "Translation entry lang was set!")
}
