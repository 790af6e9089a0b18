package portal

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/freelancetrack/invoice-server/internal/api/schema"
	"github.com/freelancetrack/invoice-server/internal/random"
	"github.com/freelancetrack/invoice-server/internal/user"
)

var (
	errNoLoginFlow = &schema.Error{
		Message: "No login flow was initiated.",
		Code:    "NO_LOGIN_FLOW",
	}
	errInvalidLoginState = &schema.Error{
		Message: "The login flow state is invalid or does not match.",
		Code:    "INVALID_LOGIN_STATE",
	}
	errInvalidLoginCode = &schema.Error{
		Message: "The login code is invalid (expired?).",
		Code:    "INVALID_LOGIN_CODE",
	}
)

var (
	cookieNameToken = "session_token"

	stateLength         = 16
	nonceLength         = 16
	cookieNameState     = "login_state"
	cookieLifetimeState = int(time.Hour.Seconds())
)

type oidcLoginFlowState struct {
	ID         string `json:"id"`
	Nonce      string `json:"nonce"`
	Afterwards string `json:"afterwards"`
}

// EndpointOIDCLoginFlow handles the 'GET /v1/auth/oidc/login_flow' endpoint
func (service *Service) EndpointOIDCLoginFlow(writer http.ResponseWriter, request *http.Request) {
	afterwards := request.URL.Query().Get("afterwards")
	if afterwards == "" {
		afterwards = "/"
	}

	// Create and set the login flow state cookie
	state := oidcLoginFlowState{
		ID:         random.String(stateLength, random.CharsetAlphanumeric),
		Nonce:      random.String(nonceLength, random.CharsetAlphanumeric),
		Afterwards: afterwards,
	}
	stateJSON, err := json.Marshal(state)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameState,
		Value:    base64.StdEncoding.EncodeToString(stateJSON),
		MaxAge:   cookieLifetimeState,
		Secure:   service.Config.IsSecure(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// Redirect the user to the authentication endpoint of the OIDC provider
	http.Redirect(writer, request, service.oidcOAuth2Config.AuthCodeURL(state.ID, oidc.Nonce(state.Nonce)), http.StatusFound)
}

// EndpointOIDCLoginCallback handles the 'GET /v1/auth/oidc/callback' endpoint.
// It exchanges the authorization code, verifies the ID token, upserts the user and
// issues a server-side session whose token is handed out via a cookie.
func (service *Service) EndpointOIDCLoginCallback(writer http.ResponseWriter, request *http.Request) {
	// Extract and validate the state cookie
	stateCookie, err := request.Cookie(cookieNameState)
	if err != nil {
		service.writer.WriteError(writer, http.StatusBadRequest, errNoLoginFlow)
		return
	}
	stateJSON, err := base64.StdEncoding.DecodeString(stateCookie.Value)
	if err != nil {
		service.writer.WriteError(writer, http.StatusBadRequest, errInvalidLoginState)
		return
	}
	state := new(oidcLoginFlowState)
	if err := json.Unmarshal(stateJSON, state); err != nil {
		service.writer.WriteError(writer, http.StatusBadRequest, errInvalidLoginState)
		return
	}
	if request.URL.Query().Get("state") != state.ID {
		service.writer.WriteError(writer, http.StatusBadRequest, errInvalidLoginState)
		return
	}
	unsetCookie(writer, cookieNameState)

	// Retrieve the OAuth2 access token and extract and verify the ID token + nonce
	oauth2Token, err := service.oidcOAuth2Config.Exchange(request.Context(), request.URL.Query().Get("code"))
	if err != nil {
		service.writer.WriteError(writer, http.StatusForbidden, errInvalidLoginCode)
		return
	}
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		service.writer.WriteInternalError(writer, errors.New("no 'id_token' field in OAuth2 access token; most likely an OIDC provider error"))
		return
	}
	idToken, err := service.oidcIDTokenVerifier.Verify(request.Context(), rawIDToken)
	if err != nil {
		service.writer.WriteInternalError(writer, errors.New("received invalid ID token; most likely an OIDC provider error"))
		return
	}
	if idToken.Nonce != state.Nonce {
		service.writer.WriteError(writer, http.StatusForbidden, errInvalidLoginCode)
		return
	}

	// Extract the profile claims and upsert the user
	claims := struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{}
	if err := idToken.Claims(&claims); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if _, err := service.Storage.Users().Upsert(request.Context(), &user.Upsert{
		ID:          idToken.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
	}); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	// Create the server-side session and hand out its token
	expires := time.Now().Add(service.Config.SessionLifetime).Unix()
	rawToken, err := service.Sessions.Create(request.Context(), idToken.Subject, expires)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	http.SetCookie(writer, &http.Cookie{
		Name:     cookieNameToken,
		Value:    rawToken,
		MaxAge:   int(service.Config.SessionLifetime.Seconds()),
		Secure:   service.Config.IsSecure(),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	// Redirect the user to the URL specified on login flow initiation
	http.Redirect(writer, request, state.Afterwards, http.StatusFound)
}

// EndpointLogout handles the 'POST /v1/auth/logout' endpoint
func (service *Service) EndpointLogout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(cookieNameToken)
	if err == nil {
		if err := service.Sessions.TerminateByRawToken(request.Context(), cookie.Value); err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
	}
	unsetCookie(writer, cookieNameToken)
	writer.WriteHeader(http.StatusNoContent)
}

func unsetCookie(writer http.ResponseWriter, name string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Second),
		HttpOnly: true,
	})
}
