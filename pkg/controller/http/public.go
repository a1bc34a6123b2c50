package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/errutil"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// maxJSONBodyBytes bounds JSON request bodies.
const maxJSONBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return goerr.Wrap(model.ErrValidation, "Invalid request body", goerr.V("cause", err.Error()))
	}
	return nil
}

type siteDataResponse struct {
	Settings         map[string]string    `json:"settings"`
	PersonalOverview personalOverviewJSON `json:"personalOverview"`
	Experience       []experienceJSON     `json:"experience"`
	Testimonials     []testimonialJSON    `json:"testimonials"`
	Skills           []skillJSON          `json:"skills"`
	Hobbies          []hobbyJSON          `json:"hobbies"`
	ContactInfo      contactInfoJSON      `json:"contactInfo"`
}

func siteDataHandler(contentUC *usecase.ContentUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := contentUC.SiteData(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, siteDataResponse{
			Settings:         data.Settings.Values(),
			PersonalOverview: newPersonalOverviewJSON(data.PersonalOverview),
			Experience:       convertAll(data.Experience, newExperienceJSON),
			Testimonials:     convertAll(data.Testimonials, newTestimonialJSON),
			Skills:           convertAll(data.Skills, newSkillJSON),
			Hobbies:          convertAll(data.Hobbies, newHobbyJSON),
			ContactInfo:      newContactInfoJSON(data.ContactInfo),
		})
	}
}

func convertAll[T, D any](src []*T, conv func(*T) D) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = conv(v)
	}
	return out
}

func contactHandler(submissionUC *usecase.SubmissionUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		result, err := submissionUC.Submit(r.Context(), req.toModel())
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, newContactResponse(result.Outcome))
	}
}

func loginHandler(authUC *usecase.AuthUseCase) http.HandlerFunc {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	type response struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(w, r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		token, admin, err := authUC.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, response{Token: token, Username: admin.Username})
	}
}

// googleCallbackHandler finishes the consent flow and sends the browser back
// to the admin page with the result in the query string.
func googleCallbackHandler(linkUC *usecase.AccountLinkUseCase, adminURL string) http.HandlerFunc {
	redirect := func(w http.ResponseWriter, r *http.Request, params url.Values) {
		http.Redirect(w, r, withQuery(adminURL, params), http.StatusFound)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()

		if denied := q.Get("error"); denied != "" {
			logging.From(ctx).Warn("google consent was not granted", "error", denied)
			redirect(w, r, url.Values{"google": {"error"}, "reason": {denied}})
			return
		}

		if err := linkUC.HandleCallback(ctx, q.Get("code"), q.Get("state")); err != nil {
			reason := "exchange_failed"
			switch {
			case errors.Is(err, usecase.ErrInvalidState):
				reason = "invalid_state"
			case errors.Is(err, usecase.ErrNoRefreshToken):
				reason = "no_refresh_token"
			case errors.Is(err, model.ErrValidation):
				reason = "missing_code"
			case errors.Is(err, usecase.ErrGoogleUnavailable):
				reason = "not_configured"
			}
			errutil.Handle(ctx, err, "google callback failed")
			redirect(w, r, url.Values{"google": {"error"}, "reason": {reason}})
			return
		}

		redirect(w, r, url.Values{"google": {"connected"}})
	}
}

func withQuery(base string, params url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + params.Encode()
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return u.String()
}
