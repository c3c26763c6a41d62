package http

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const contextKeyCSRFToken = "csrf_token"

// CSRFMiddleware protects the HTML forms. JSON API routes are read-only
// and pass through unchecked.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}

		if !secure {
			// gorilla/csrf assumes https and checks the Referer otherwise.
			c.Request = csrf.PlaintextHTTPRequest(c.Request)
		}

		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Set(contextKeyCSRFToken, csrf.Token(r))
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, c.Request)

		// Rejected requests never reach the inner handler.
		if _, ok := c.Get(contextKeyCSRFToken); !ok {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"message":"CSRF token invalid or missing"}`))
}

// csrfField renders the hidden form input for the request's token, or
// nothing when CSRF protection is off.
func csrfField(c *gin.Context) template.HTML {
	token := c.GetString(contextKeyCSRFToken)
	if token == "" {
		return ""
	}
	return template.HTML(`<input type="hidden" name="gorilla.csrf.Token" value="` + template.HTMLEscapeString(token) + `">`)
}
