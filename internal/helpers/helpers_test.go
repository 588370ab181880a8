package helpers

import (
	"context"
	"errors"
	"testing"

	"github.com/denmor86/ya-bankist/internal/models"
	"github.com/go-chi/jwtauth/v5"
)

func TestGetSessionID(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("secret"), nil)

	testCases := []struct {
		TestName      string
		Claims        map[string]interface{}
		Expected      string
		ExpectedError error
	}{
		{TestName: "Success. Session id claim #1", Claims: map[string]interface{}{"sid": "abc"}, Expected: "abc"},
		{TestName: "Error. No session id claim #2", Claims: map[string]interface{}{"username": "js"}, ExpectedError: ErrUndefinedSessionID},
		{TestName: "Error. Session id is not a string #3", Claims: map[string]interface{}{"sid": 42}, ExpectedError: ErrUndefinedSessionID},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			token, _, err := ja.Encode(tc.Claims)
			if err != nil {
				t.Fatalf("Expected token, got: '%v'", err)
			}
			ctx := jwtauth.NewContext(context.Background(), token, nil)

			sid, err := GetSessionID(ctx)
			if !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
			if sid != tc.Expected {
				t.Errorf("Expected: '%s', got: '%s'", tc.Expected, sid)
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	if _, err := GetSession(context.Background()); !errors.Is(err, ErrUndefinedSession) {
		t.Errorf("Expected error: '%v', got: '%v'", ErrUndefinedSession, err)
	}

	session := models.Session{ID: "abc", Username: "js", State: models.SessionLoggedIn}
	got, err := GetSession(WithSession(context.Background(), session))
	if err != nil || got != session {
		t.Errorf("Expected: '%+v', got: '%+v' '%v'", session, got, err)
	}
}
