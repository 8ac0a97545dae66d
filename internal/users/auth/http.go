// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tdnguyen/apologia/internal/platform/constants"
	"github.com/tdnguyen/apologia/internal/platform/middleware"
	requestutil "github.com/tdnguyen/apologia/internal/platform/request"
	"github.com/tdnguyen/apologia/internal/platform/respond"
	"github.com/tdnguyen/apologia/internal/platform/sec"
)

type Handler struct {
	service *Service
	secure  bool
}

// NewHandler creates the auth HTTP surface. secure controls the Secure flag
// on the refresh cookie and is disabled only in local development.
func NewHandler(service *Service, secure bool) *Handler {
	return &Handler{service: service, secure: secure}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Post("/change-password", handler.changePassword)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(sec.CapUsersManage))
		r.Get("/accounts", handler.listAccounts)
		r.Post("/accounts", handler.createAccount)
	})

	return router
}

// # Request Payloads

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type createAccountRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	DisplayName string   `json:"display_name"`
	Role        string   `json:"role"`
	Overrides   []string `json:"capability_overrides"`
}

type sessionResponse struct {
	TokenPair *TokenPair `json:"token"`
	Account   *Account   `json:"user"`
}

// # Handlers

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, account, err := handler.service.Login(request.Context(),
		input.Login, input.Password, request.UserAgent(), request.RemoteAddr)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, pair.RefreshToken)
	respond.OK(writer, sessionResponse{TokenPair: pair, Account: account})
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := handler.refreshTokenFromCookie(request)

	pair, account, err := handler.service.Refresh(request.Context(),
		refreshToken, request.UserAgent(), request.RemoteAddr)
	if err != nil {
		handler.clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, pair.RefreshToken)
	respond.OK(writer, sessionResponse{TokenPair: pair, Account: account})
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Logout(request.Context(), handler.refreshTokenFromCookie(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearRefreshCookie(writer)
	respond.NoContent(writer)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.GetAccount(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	accounts, err := handler.service.ListAccounts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, accounts)
}

func (handler *Handler) createAccount(writer http.ResponseWriter, request *http.Request) {
	var input createAccountRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account := &Account{
		Username:    input.Username,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Role:        sec.UserRole(input.Role),
		Overrides:   input.Overrides,
	}

	if err := handler.service.CreateAccount(request.Context(), account, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, account)
}

// # Cookie Plumbing

func (handler *Handler) refreshTokenFromCookie(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    token,
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   int(RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   handler.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (handler *Handler) clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
