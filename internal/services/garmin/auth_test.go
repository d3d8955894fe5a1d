package garmin_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"fitsync/internal/services/garmin"
)

func TestAuthenticatorNoStrategies(t *testing.T) {
	auth := garmin.NewAuthenticator(nil)
	if _, _, err := auth.Authenticate(context.Background()); !errors.Is(err, garmin.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestAuthenticatorFirstSuccessWins(t *testing.T) {
	var credentialCalled bool
	auth := garmin.NewAuthenticator(nil,
		garmin.Strategy{
			Name: "session token",
			Authenticate: func(ctx context.Context) (garmin.Session, error) {
				return garmin.Session{Token: "reused"}, nil
			},
		},
		garmin.Strategy{
			Name: "email/password",
			Authenticate: func(ctx context.Context) (garmin.Session, error) {
				credentialCalled = true
				return garmin.Session{Token: "fresh"}, nil
			},
		},
	)

	session, name, err := auth.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if session.Token != "reused" || name != "session token" {
		t.Fatalf("got %q via %q, want reused via session token", session.Token, name)
	}
	if credentialCalled {
		t.Fatal("credential strategy ran despite earlier success")
	}
}

func TestAuthenticatorFallsBackInOrder(t *testing.T) {
	auth := garmin.NewAuthenticator(nil,
		garmin.Strategy{
			Name: "session token",
			Authenticate: func(ctx context.Context) (garmin.Session, error) {
				return garmin.Session{}, errors.New("expired")
			},
		},
		garmin.Strategy{
			Name: "email/password",
			Authenticate: func(ctx context.Context) (garmin.Session, error) {
				return garmin.Session{Token: "fresh"}, nil
			},
		},
	)

	session, name, err := auth.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if session.Token != "fresh" || name != "email/password" {
		t.Fatalf("got %q via %q, want fresh via email/password", session.Token, name)
	}
}

func TestAuthenticatorAllStrategiesFail(t *testing.T) {
	failing := garmin.Strategy{
		Name: "session token",
		Authenticate: func(ctx context.Context) (garmin.Session, error) {
			return garmin.Session{}, errors.New("expired")
		},
	}
	auth := garmin.NewAuthenticator(nil, failing, failing)
	if _, _, err := auth.Authenticate(context.Background()); !errors.Is(err, garmin.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestSessionStrategyInstallsSessionOnClient(t *testing.T) {
	var sawAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client, err := garmin.New(server.URL, server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	strategy := garmin.SessionStrategy(client, `{"token":"blob-token"}`)
	if _, err := strategy.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}

	if _, err := client.ActivitiesByDate(context.Background(), "2026-03-14"); err != nil {
		t.Fatalf("ActivitiesByDate returned error: %v", err)
	}
	if sawAuth != "Bearer blob-token" {
		t.Fatalf("Authorization = %q", sawAuth)
	}
}

func TestSessionStrategyRejectsBadBlob(t *testing.T) {
	client, err := garmin.New("https://api.example.com", "https://sso.example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for _, blob := range []string{"", "not json", `{"token":""}`} {
		strategy := garmin.SessionStrategy(client, blob)
		if _, err := strategy.Authenticate(context.Background()); !errors.Is(err, garmin.ErrAuthenticationFailed) {
			t.Fatalf("blob %q: expected ErrAuthenticationFailed, got %v", blob, err)
		}
	}
}

func TestStoredSessionStrategy(t *testing.T) {
	client, err := garmin.New("https://api.example.com", "https://sso.example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	store := garmin.NewFileTokenStore(filepath.Join(t.TempDir(), "session.json"))
	strategy := garmin.StoredSessionStrategy(client, store)
	if _, err := strategy.Authenticate(context.Background()); !errors.Is(err, garmin.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed with empty store, got %v", err)
	}

	if err := store.Save(garmin.Session{Token: "stored"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	session, err := strategy.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if session.Token != "stored" {
		t.Fatalf("token = %q", session.Token)
	}
}
