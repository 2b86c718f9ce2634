package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/TherealJvJ/TelMoz-2.0/internal/handlerutils"
	"github.com/TherealJvJ/TelMoz-2.0/internal/middlewares"
	"github.com/TherealJvJ/TelMoz-2.0/internal/servererrors"
	"github.com/TherealJvJ/TelMoz-2.0/internal/validate"
	"github.com/go-chi/chi"

	"github.com/TherealJvJ/TelMoz-2.0/internal/features/session"
)

type servicer interface {
	login(ctx context.Context, req *LoginRequest) (*session.Session, error)
	logout(ctx context.Context, sessionToken string) error
	createAdmin(ctx context.Context, req *CreateAdminRequest) error
	requestPasswordReset(ctx context.Context, req *ForgotPasswordRequest) (string, error)
	resetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(adminService servicer, middleware middleware) *handler {
	return &handler{
		service:    adminService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/admin/login",
		handlerutils.MakeHandler(
			h.loginHandler,
		),
	)

	router.Post(
		"/admin/logout",
		handlerutils.MakeHandler(
			h.logoutHandler,
		),
	)

	router.Post(
		"/admin/forgot-password",
		handlerutils.MakeHandler(
			h.forgotPasswordHandler,
		),
	)

	router.Post(
		"/admin/reset-password/{token}",
		handlerutils.MakeHandler(
			h.resetPasswordHandler,
		),
	)

	// protected routes
	router.Post(
		"/admin/admins",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createAdminHandler,
			),
		),
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload := &LoginRequest{
		Username: handlerutils.FormValue(r, "username"),
		Password: r.PostFormValue("password"),
	}

	if fieldErrs := validate.StructFields(payload); fieldErrs != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrs,
		)
	}

	newSession, err := h.service.login(r.Context(), payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrInvalidCredentials) {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)
		}

		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    newSession.Token,
		Path:     "/",
		Expires:  newSession.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"login successful",
		LoginResponse{Username: payload.Username},
	)
}

func (h *handler) logoutHandler(w http.ResponseWriter, r *http.Request) error {
	sessionCookie, err := r.Cookie(middlewares.SessionCookieName)
	if err == nil && sessionCookie.Value != "" {
		if err := h.service.logout(r.Context(), sessionCookie.Value); err != nil {
			return err
		}
	}

	// expire the cookie regardless so a half-broken client ends up
	// logged out either way
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"logout successful",
		nil,
	)
}

func (h *handler) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload := &ForgotPasswordRequest{
		Email: handlerutils.FormValue(r, "email"),
	}

	if fieldErrs := validate.StructFields(payload); fieldErrs != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrs,
		)
	}

	token, err := h.service.requestPasswordReset(r.Context(), payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrEmailNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrEmailNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"password reset link generated",
		ForgotPasswordResponse{
			ResetURL: "/api/v1/admin/reset-password/" + token,
		},
	)
}

func (h *handler) resetPasswordHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload := &ResetPasswordRequest{
		Token:           chi.URLParam(r, "token"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if fieldErrs := validate.StructFields(payload); fieldErrs != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrs,
		)
	}

	if err := h.service.resetPassword(r.Context(), payload); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidResetToken):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidResetToken.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrExpiredResetToken):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrExpiredResetToken.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrPasswordMismatch),
			errors.Is(err, servererrors.ErrPasswordTooShort):
			return servererrors.New(
				http.StatusUnprocessableEntity,
				err.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"password changed",
		nil,
	)
}

func (h *handler) createAdminHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	payload := &CreateAdminRequest{
		Username:        handlerutils.FormValue(r, "username"),
		Email:           handlerutils.FormValue(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if fieldErrs := validate.StructFields(payload); fieldErrs != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrs,
		)
	}

	if err := h.service.createAdmin(r.Context(), payload); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrUsernameTaken):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrUsernameTaken.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrEmailTaken):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrEmailTaken.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrPasswordMismatch),
			errors.Is(err, servererrors.ErrPasswordTooShort):
			return servererrors.New(
				http.StatusUnprocessableEntity,
				err.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"admin created",
		nil,
	)
}
