package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/domain/model/auth"
	"github.com/hireme-dev/hireme/pkg/service/media"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/errutil"
	"github.com/hireme-dev/hireme/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.Wrap(model.ErrValidation, "Invalid id", goerr.V(model.ContentIDKey, raw))
	}
	return id, nil
}

func changePasswordHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	type request struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		err := authUC.ChangePassword(r.Context(), auth.AdminFromContext(r.Context()), req.CurrentPassword, req.NewPassword)
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidCredentials) {
				errutil.WriteError(r.Context(), w, http.StatusBadRequest, "Current password is incorrect")
				return
			}
			handleError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
	}
}

func getSettingsHandler(contentUC *usecase.ContentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := contentUC.Settings(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, settings.Values())
	}
}

func putSettingsHandler(contentUC *usecase.ContentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if err := decodeJSON(w, r, &body); err != nil {
			handleError(w, r, err)
			return
		}

		values, err := settingsValues(body)
		if err != nil {
			handleError(w, r, goerr.Wrap(model.ErrValidation, "Invalid setting value", goerr.V("cause", err.Error())))
			return
		}

		if _, err := contentUC.UpdateSettings(r.Context(), values); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Settings updated"})
	}
}

func getPersonalOverviewHandler(contentUC *usecase.ContentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := contentUC.PersonalOverview(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, newPersonalOverviewJSON(v))
	}
}

func putPersonalOverviewHandler(contentUC *usecase.ContentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req personalOverviewJSON
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}
		if _, err := contentUC.PutPersonalOverview(r.Context(), req.toModel()); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Personal overview updated"})
	}
}

func getContactInfoHandler(contentUC *usecase.ContentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := contentUC.ContactInfo(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, newContactInfoJSON(v))
	}
}

func putContactInfoHandler(contentUC *usecase.ContentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactInfoJSON
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}
		if _, err := contentUC.PutContactInfo(r.Context(), req.toModel()); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Contact info updated"})
	}
}

// collectionRoutes serves list, create, update and delete for one content collection.
type collectionRoutes[T, D any] struct {
	col    *usecase.Collection[T]
	noun   string
	encode func(*T) D
	decode func(D, int64) *T
	idOf   func(*T) int64
}

func experienceRoutes(col *usecase.Collection[model.Experience]) collectionRoutes[model.Experience, experienceJSON] {
	return collectionRoutes[model.Experience, experienceJSON]{
		col:    col,
		noun:   "Experience",
		encode: newExperienceJSON,
		decode: experienceJSON.toModel,
		idOf:   func(x *model.Experience) int64 { return x.ID },
	}
}

func testimonialRoutes(col *usecase.Collection[model.Testimonial]) collectionRoutes[model.Testimonial, testimonialJSON] {
	return collectionRoutes[model.Testimonial, testimonialJSON]{
		col:    col,
		noun:   "Testimonial",
		encode: newTestimonialJSON,
		decode: testimonialJSON.toModel,
		idOf:   func(x *model.Testimonial) int64 { return x.ID },
	}
}

func skillRoutes(col *usecase.Collection[model.SkillCategory]) collectionRoutes[model.SkillCategory, skillJSON] {
	return collectionRoutes[model.SkillCategory, skillJSON]{
		col:    col,
		noun:   "Skill category",
		encode: newSkillJSON,
		decode: skillJSON.toModel,
		idOf:   func(x *model.SkillCategory) int64 { return x.ID },
	}
}

func hobbyRoutes(col *usecase.Collection[model.Hobby]) collectionRoutes[model.Hobby, hobbyJSON] {
	return collectionRoutes[model.Hobby, hobbyJSON]{
		col:    col,
		noun:   "Hobby",
		encode: newHobbyJSON,
		decode: hobbyJSON.toModel,
		idOf:   func(x *model.Hobby) int64 { return x.ID },
	}
}

func (c collectionRoutes[T, D]) mount(r chi.Router, path string) {
	r.Get(path, c.list)
	r.Post(path, c.create)
	r.Put(path+"/{id}", c.update)
	r.Delete(path+"/{id}", c.delete)
}

func (c collectionRoutes[T, D]) list(w http.ResponseWriter, r *http.Request) {
	entries, err := c.col.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, convertAll(entries, c.encode))
}

func (c collectionRoutes[T, D]) create(w http.ResponseWriter, r *http.Request) {
	var req D
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := c.col.Create(r.Context(), c.decode(req, 0))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, createdResponse{ID: c.idOf(created), Message: c.noun + " added"})
}

func (c collectionRoutes[T, D]) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req D
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if _, err := c.col.Update(r.Context(), c.decode(req, id)); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: c.noun + " updated"})
}

func (c collectionRoutes[T, D]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := c.col.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: c.noun + " deleted"})
}

func listSubmissionsHandler(submissionUC *usecase.SubmissionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread"))

		subs, err := submissionUC.List(r.Context(), unreadOnly)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, convertAll(subs, newSubmissionJSON))
	}
}

func markSubmissionReadHandler(submissionUC *usecase.SubmissionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleError(w, r, err)
			return
		}
		if err := submissionUC.MarkRead(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Marked as read"})
	}
}

func deleteSubmissionHandler(submissionUC *usecase.SubmissionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			handleError(w, r, err)
			return
		}
		if err := submissionUC.Delete(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Submission deleted"})
	}
}

func googleAuthURLHandler(linkUC *usecase.AccountLinkUseCase) http.HandlerFunc {
	type response struct {
		URL string `json:"url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		u, err := linkUC.AuthURL(r.Context(), auth.AdminFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, response{URL: u})
	}
}

func googleStatusHandler(linkUC *usecase.AccountLinkUseCase) http.HandlerFunc {
	type response struct {
		Configured bool    `json:"configured"`
		Connected  bool    `json:"connected"`
		Email      *string `json:"email"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status, err := linkUC.Status(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, response{
			Configured: status.Configured,
			Connected:  status.Connected,
			Email:      nullable(status.Email),
		})
	}
}

func googleDisconnectHandler(linkUC *usecase.AccountLinkUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := linkUC.Unlink(r.Context()); err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, messageResponse{Message: "Google account disconnected"})
	}
}

func mediaUploadHandler(mediaUC *usecase.MediaUseCase) http.HandlerFunc {
	type response struct {
		URL string `json:"url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !mediaUC.Enabled() {
			handleError(w, r, goerr.Wrap(usecase.ErrMediaUnavailable, "upload rejected"))
			return
		}

		// Multipart framing adds a little on top of the file itself.
		r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+64<<10)
		file, header, err := r.FormFile("file")
		if err != nil {
			handleError(w, r, goerr.Wrap(model.ErrValidation, "A file up to 10MB is required", goerr.V("cause", err.Error())))
			return
		}
		defer safe.Close(r.Context(), file)

		contentType := header.Header.Get("Content-Type")
		u, err := mediaUC.Upload(r.Context(), header.Filename, contentType, file)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, response{URL: u})
	}
}
