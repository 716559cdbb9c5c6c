package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/users",
		`{"firstName":"Joe","lastName":"Smith","emailAddress":"joe@smith.com","password":"joepassword"}`, "")

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
	require.Empty(t, w.Body.String())
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErrors []string
	}{
		{
			name: "all fields missing",
			body: `{}`,
			wantErrors: []string{
				"A firstName is required",
				"A lastName is required",
				"A emailAddress is required",
				"A password is required",
			},
		},
		{
			name: "empty fields",
			body: `{"firstName":"","lastName":"","emailAddress":"joe@smith.com","password":"joepassword"}`,
			wantErrors: []string{
				"Please provide a firstName",
				"Please provide a lastName",
			},
		},
		{
			name: "mixed missing and empty",
			body: `{"firstName":"Joe","lastName":"","password":"joepassword"}`,
			wantErrors: []string{
				"Please provide a lastName",
				"A emailAddress is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			w := ts.do(http.MethodPost, "/api/users", tt.body, "")

			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Errors []string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tt.wantErrors, resp.Errors)
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "joe@smith.com", "joepassword")

	w := ts.do(http.MethodPost, "/api/users",
		`{"firstName":"Joey","lastName":"Smith","emailAddress":"joe@smith.com","password":"otherpassword"}`, "")

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []string{"emailAddress must be unique"}, resp.Errors)
}

func TestGetCurrentUser(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t, "joe@smith.com", "joepassword")

	w := ts.do(http.MethodGet, "/api/users", "", basicAuth("joe@smith.com", "joepassword"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Joe", resp["firstName"])
	require.Equal(t, "Smith", resp["lastName"])
	require.Equal(t, "joe@smith.com", resp["emailAddress"])
	require.Equal(t, user.PasswordHash, resp["password"])
}

func TestGetCurrentUser_Unauthorized(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no credentials", header: ""},
		{name: "wrong password", header: basicAuth("joe@smith.com", "wrongpassword")},
		{name: "unknown email", header: basicAuth("nobody@example.com", "joepassword")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.seedUser(t, "joe@smith.com", "joepassword")

			w := ts.do(http.MethodGet, "/api/users", "", tt.header)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.JSONEq(t, `{"message":"Access Denied"}`, w.Body.String())
		})
	}
}
