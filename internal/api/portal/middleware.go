package portal

import (
	"context"
	"fmt"
	"net/http"

	"github.com/freelancetrack/invoice-server/internal/api/schema"
	"github.com/freelancetrack/invoice-server/internal/user"
)

var (
	contextValueUserID = "user_id"
	contextValueUser   = "user"
)

// middlewareRecover catches panics raised by any downstream handler and converts them
// into a generic internal error response. No request may crash the process or leave the
// response unsent.
func (service *Service) middlewareRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		defer func() {
			if val := recover(); val != nil {
				service.writer.WriteInternalError(writer, fmt.Errorf("recovered panic: %v", val))
			}
		}()
		next.ServeHTTP(writer, request)
	})
}

// MiddlewareVerifySession makes sure that the requesting client has provided a valid,
// non-expired session cookie. Additionally, it injects the session's user ID into the
// request context.
func (service *Service) MiddlewareVerifySession(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		cookie, err := request.Cookie(cookieNameToken)
		if err != nil {
			service.writer.WriteError(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		ses, err := service.Sessions.GetByRawToken(request.Context(), cookie.Value)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if ses == nil || ses.Expired() {
			unsetCookie(writer, cookieNameToken)
			service.writer.WriteError(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		request = request.WithContext(context.WithValue(request.Context(), contextValueUserID, ses.UserID))
		next(writer, request)
	}
}

// MiddlewareFetchUser resolves the session's user ID into the full user object and
// injects it into the request context. A session pointing to a user that no longer
// exists counts as unauthenticated.
func (service *Service) MiddlewareFetchUser(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID := request.Context().Value(contextValueUserID).(string)

		obj, err := service.Storage.Users().GetByID(request.Context(), userID)
		if err != nil {
			service.writer.WriteInternalError(writer, err)
			return
		}
		if obj == nil {
			unsetCookie(writer, cookieNameToken)
			service.writer.WriteError(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		request = request.WithContext(context.WithValue(request.Context(), contextValueUser, obj))
		next(writer, request)
	}
}

func requestUser(request *http.Request) *user.User {
	return request.Context().Value(contextValueUser).(*user.User)
}
