package portal

import (
	"context"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/freelancetrack/invoice-server/internal/api/portal/session"
	"github.com/freelancetrack/invoice-server/internal/api/schema"
	"github.com/freelancetrack/invoice-server/internal/config"
	"github.com/freelancetrack/invoice-server/internal/storage"
	"github.com/freelancetrack/invoice-server/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Service represents the portal API service serving the invoice endpoints and the
// embedded browser client
type Service struct {
	server *http.Server

	Config *config.Config

	Storage storage.Driver

	Sessions session.Storage

	oidcOAuth2Config    *oauth2.Config
	oidcProvider        *oidc.Provider
	oidcIDTokenVerifier *oidc.IDTokenVerifier

	writer *schema.Writer
}

// Startup starts up the portal API
func (service *Service) Startup() error {
	// Create the OIDC provider & ID token verifier
	oidcProvider, err := oidc.NewProvider(context.Background(), service.Config.OIDCProviderURL)
	if err != nil {
		return err
	}
	service.oidcProvider = oidcProvider
	service.oidcIDTokenVerifier = oidcProvider.Verifier(&oidc.Config{
		ClientID: service.Config.OIDCClientID,
	})

	// Create the OAuth2 config
	service.oidcOAuth2Config = &oauth2.Config{
		ClientID:     service.Config.OIDCClientID,
		ClientSecret: service.Config.OIDCClientSecret,
		Endpoint:     oidcProvider.Endpoint(),
		RedirectURL:  service.Config.BaseAddress + "/v1/auth/oidc/callback",
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}

	// Start up the server
	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: service.router(),
	}
	service.server = server
	return server.ListenAndServe()
}

// router assembles the chi router with all middlewares and endpoint handlers
func (service *Service) router() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the portal API experienced an unexpected error")
		},
	}

	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(service.middlewareRecover)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.AllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteError(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteError(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the OIDC authentication endpoints
	router.Get("/v1/auth/oidc/login_flow", service.EndpointOIDCLoginFlow)
	router.Get("/v1/auth/oidc/callback", service.EndpointOIDCLoginCallback)
	router.Post("/v1/auth/logout", service.EndpointLogout)

	// Register the invoice controller endpoints
	router.Get("/v1/invoices", withMiddlewares(service.EndpointListInvoices, service.MiddlewareVerifySession, service.MiddlewareFetchUser))
	router.Post("/v1/invoices", withMiddlewares(service.EndpointCreateInvoice, service.MiddlewareVerifySession, service.MiddlewareFetchUser))
	router.Patch("/v1/invoices/{id}", withMiddlewares(service.EndpointUpdateInvoice, service.MiddlewareVerifySession, service.MiddlewareFetchUser))
	router.Delete("/v1/invoices/{id}", withMiddlewares(service.EndpointDeleteInvoice, service.MiddlewareVerifySession, service.MiddlewareFetchUser))

	// Register the user controller endpoints
	router.Get("/v1/me", withMiddlewares(service.EndpointGetSelfUser, service.MiddlewareVerifySession, service.MiddlewareFetchUser))
	router.Delete("/v1/me", withMiddlewares(service.EndpointDeleteSelfUser, service.MiddlewareVerifySession, service.MiddlewareFetchUser))

	// Serve the embedded browser client
	router.Get("/", web.ServeIndex)
	router.Handle("/assets/*", http.StripPrefix("/assets/", web.AssetHandler()))

	return router
}

// Shutdown shuts down the portal API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

func withMiddlewares(end http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	final := end
	for i := len(middlewares); i > 0; i-- {
		final = middlewares[i-1](final)
	}
	return final
}
