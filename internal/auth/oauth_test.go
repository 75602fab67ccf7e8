package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"
)

func TestGetAuthURL(t *testing.T) {
	p := &OAuthProvider{
		Name: "google",
		Config: &oauth2.Config{
			ClientID:    "client-test",
			RedirectURL: "https://portail.test/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL: "https://accounts.example.com/auth",
			},
			Scopes: []string{"email", "profile"},
		},
	}

	url := p.GetAuthURL("state-abc")

	assert.Contains(t, url, "https://accounts.example.com/auth")
	assert.Contains(t, url, "client_id=client-test")
	assert.Contains(t, url, "state=state-abc")
	assert.Contains(t, url, "access_type=offline")
}
