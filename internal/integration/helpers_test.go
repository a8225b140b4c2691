package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Fields whose values are nondeterministic (timestamps, generated tokens and
// references) are excluded from response comparison at any nesting depth.
var keysToIgnore = map[string]struct{}{
	"timestamp":            {},
	"requestId":            {},
	"createdAt":            {},
	"updatedAt":            {},
	"startTime":            {},
	"expiresAt":            {},
	"paymentDate":          {},
	"cancellationDeadline": {},
	"holdToken":            {},
	"bookingReference":     {},
	"transactionId":        {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(script))
	require.NoError(t, err)
}

// authenticatedUserCookies registers the test user if needed and logs in
// through the real handlers, returning the session cookies for later requests.
func (app *TestApp) authenticatedUserCookies(t testing.TB) []*http.Cookie {
	t.Helper()

	return app.loginAs(t, TestUserEmail, TestUserPassword)
}

func (app *TestApp) adminUserCookies(t testing.TB) []*http.Cookie {
	t.Helper()

	app.registerUser(t, TestAdminEmail, TestAdminPassword)

	_, err := app.DB.Exec(context.Background(),
		"UPDATE users SET is_admin = TRUE WHERE email = $1", TestAdminEmail)
	require.NoError(t, err)

	return app.login(t, TestAdminEmail, TestAdminPassword)
}

func (app *TestApp) loginAs(t testing.TB, email, password string) []*http.Cookie {
	t.Helper()

	app.registerUser(t, email, password)

	return app.login(t, email, password)
}

func (app *TestApp) registerUser(t testing.TB, email, password string) {
	t.Helper()

	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)
	req, err := prepareRequest(http.MethodPost, "/users", strings.NewReader(body), nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	// a repeated registration across scenarios is fine, the user already exists
	require.Contains(t, []int{http.StatusCreated, http.StatusBadRequest}, rec.Code)
}

func (app *TestApp) login(t testing.TB, email, password string) []*http.Cookie {
	t.Helper()

	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)
	req, err := prepareRequest(http.MethodPost, "/sessions", strings.NewReader(body), nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	return rec.Result().Cookies()
}
