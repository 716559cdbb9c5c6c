package auth

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"
)

func basicHeader(credential string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credential))
}

func TestParseBasicAuth(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		wantErr      error
		wantEmail    string
		wantPassword string
	}{
		{
			name:         "valid credential",
			header:       basicHeader("joe@smith.com:joepassword"),
			wantEmail:    "joe@smith.com",
			wantPassword: "joepassword",
		},
		{
			name:         "empty password",
			header:       basicHeader("joe@smith.com:"),
			wantEmail:    "joe@smith.com",
			wantPassword: "",
		},
		{
			name:         "password containing colon",
			header:       basicHeader("joe@smith.com:pass:word"),
			wantEmail:    "joe@smith.com",
			wantPassword: "pass:word",
		},
		{
			name:         "lowercase scheme",
			header:       "basic " + base64.StdEncoding.EncodeToString([]byte("joe@smith.com:joepassword")),
			wantEmail:    "joe@smith.com",
			wantPassword: "joepassword",
		},
		{
			name:    "missing header",
			header:  "",
			wantErr: ErrMissingAuthorization,
		},
		{
			name:    "wrong scheme",
			header:  "Bearer sometoken",
			wantErr: ErrMalformedAuthorization,
		},
		{
			name:    "invalid base64",
			header:  "Basic not-base64!!!",
			wantErr: ErrMalformedAuthorization,
		},
		{
			name:    "no colon separator",
			header:  basicHeader("joe@smith.com"),
			wantErr: ErrMalformedAuthorization,
		},
		{
			name:    "empty email",
			header:  basicHeader(":joepassword"),
			wantErr: ErrMalformedAuthorization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/users", nil)
			if tt.header != "" {
				r.Header.Set(AuthorizationHeader, tt.header)
			}

			creds, err := ParseBasicAuth(r)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if creds.EmailAddress != tt.wantEmail {
				t.Errorf("expected email %q, got %q", tt.wantEmail, creds.EmailAddress)
			}
			if creds.Password != tt.wantPassword {
				t.Errorf("expected password %q, got %q", tt.wantPassword, creds.Password)
			}
		})
	}
}
