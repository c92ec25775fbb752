package twitch

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

const TwitchAuthorizeUrl = "https://id.twitch.tv/oauth2/authorize"

// AuthorizationTimeout bounds how long we wait for the user to respond in the browser
const AuthorizationTimeout = 5 * time.Minute

// ErrAuthorizationTimedOut is returned if the user never completes authorization
var ErrAuthorizationTimedOut = errors.New("timed out waiting for user authorization")

// openURL is swapped out in tests
var openURL = browser.OpenURL

// AuthorizationCode is the code returned to us from the Twitch API after the user
// grants access to our app in the browser
// See: https://dev.twitch.tv/docs/authentication/getting-tokens-oauth/#authorization-code-grant-flow
type AuthorizationCode struct {
	Value  string
	Scopes []string
}

// PromptForCodeGrant spins up a small HTTP server on http://localhost:<port>, then
// opens a browser window that will send the user to Twitch, request that they grant
// access to the app with the given client ID and the requested scopes, then redirects
// them back to that server so that we can capture and parse the access code.
func PromptForCodeGrant(ctx context.Context, clientId string, scopes []string, port uint16, logger *zap.Logger) (*AuthorizationCode, error) {
	callbackUrl := fmt.Sprintf("http://localhost:%d/auth", port)
	csrfToken, err := generateCsrfToken()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, AuthorizationTimeout)
	defer cancel()

	results := make(chan codeGrantResult, 1)
	server := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: newCodeGrantHandler(csrfToken, scopes, results),
	}
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	defer server.Shutdown(context.Background())

	authorizeUrl := buildAuthorizeUrl(clientId, callbackUrl, scopes, csrfToken)
	logger.Info("opening web browser for Twitch authorization", zap.String("url", authorizeUrl))
	if err := openURL(authorizeUrl); err != nil {
		logger.Warn("failed to open web browser; visit the URL manually", zap.Error(err))
	}

	select {
	case result := <-results:
		return result.code, result.err
	case err := <-serverErr:
		return nil, fmt.Errorf("failed to run authorization callback server: %w", err)
	case <-ctx.Done():
		return nil, ErrAuthorizationTimedOut
	}
}

// buildAuthorizeUrl prepares a URL to a Twitch OAuth page that will request that the
// user authorize our app to access their account with the given scopes, then redirect
// them back to the callback URL
func buildAuthorizeUrl(clientId string, callbackUrl string, scopes []string, csrfToken string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", clientId)
	q.Set("redirect_uri", callbackUrl)
	q.Set("scope", strings.Join(scopes, " "))
	q.Set("state", csrfToken)
	return TwitchAuthorizeUrl + "?" + q.Encode()
}

type codeGrantResult struct {
	code *AuthorizationCode
	err  error
}

// newCodeGrantHandler handles GET /auth, reporting the first code grant (or failure)
// it receives
func newCodeGrantHandler(csrfToken string, scopes []string, results chan<- codeGrantResult) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/auth" {
			http.Error(res, "path not supported", http.StatusNotFound)
			return
		}
		if req.Method != http.MethodGet {
			http.Error(res, "method not supported", http.StatusMethodNotAllowed)
			return
		}

		code, err := parseCodeGrant(req, csrfToken, scopes)
		if err != nil {
			servePage(res, http.StatusBadRequest, "Authentication Failed", err.Error())
		} else {
			servePage(res, http.StatusOK, "Authentication OK", "A Twitch user access token has been granted.")
		}
		select {
		case results <- codeGrantResult{code: code, err: err}:
		default:
		}
	})
}

// generateCsrfToken returns a cryptographically random hex string
func generateCsrfToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// parseCodeGrant examines our request URL and verifies that we've been given a valid
// code grant, parsing and returning the relevant data that was encoded in the URL
func parseCodeGrant(req *http.Request, csrfToken string, desiredScopes []string) (*AuthorizationCode, error) {
	query := req.URL.Query()

	// Twitch reports a denied request as an error rather than a code
	if reason := query.Get("error"); reason != "" {
		return nil, fmt.Errorf("authorization was denied: %s", query.Get("error_description"))
	}

	// Verify that Twitch echoed our CSRF token back to us
	state := query.Get("state")
	if state == "" {
		return nil, fmt.Errorf("'state' value not found in URL query params")
	}
	if state != csrfToken {
		return nil, fmt.Errorf("CSRF token verification failed")
	}

	// Verify that the code grant includes all requested scopes
	scopes := strings.Fields(query.Get("scope"))
	if len(scopes) == 0 {
		return nil, fmt.Errorf("'scope' value not found in URL query params")
	}
	for _, desiredScope := range desiredScopes {
		if !slices.Contains(scopes, desiredScope) {
			return nil, fmt.Errorf("required scope '%s' was not granted", desiredScope)
		}
	}

	code := query.Get("code")
	if code == "" {
		return nil, fmt.Errorf("'code' value not found in URL query params")
	}
	return &AuthorizationCode{
		Value:  code,
		Scopes: scopes,
	}, nil
}

// servePage renders a simple HTML page so the user has some feedback and doesn't just
// get redirected to the void after granting access via twitch.tv
func servePage(res http.ResponseWriter, statusCode int, title string, message string) {
	pageTemplate := successPageTemplate
	if statusCode >= 300 {
		pageTemplate = errorPageTemplate
	}
	res.Header().Set("Content-Type", "text/html; charset=utf-8")
	res.WriteHeader(statusCode)
	fmt.Fprintf(res, pageTemplate, title, title, message)
}

const successPageTemplate = `<!DOCTYPE html>
<html>
  <head>
    <title>%s</title>
  </head>
  <body>
    <h1>%s</h1>
    <p>%s</p>
    <p>This page will close automatically.</p>
    <script>
      setTimeout(window.close, 0)
    </script>
  </body>
</html>
`

const errorPageTemplate = `<!DOCTYPE html>
<html>
  <head>
    <title>%s</title>
  </head>
  <body>
    <h1>%s</h1>
    <p>%s</p>
    <p>You may now close this window.</p>
  </body>
</html>
`
