package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// Strategy is one named way to obtain an authenticated session. Strategies
// are tried in order; the first success wins.
type Strategy struct {
	Name         string
	Authenticate func(ctx context.Context) (Session, error)
}

// SessionStrategy reuses a session blob supplied via environment or config.
func SessionStrategy(client *Client, blob string) Strategy {
	return Strategy{
		Name: "session token",
		Authenticate: func(ctx context.Context) (Session, error) {
			session, err := ParseSession(blob)
			if err != nil {
				return Session{}, err
			}
			if err := client.Resume(session); err != nil {
				return Session{}, err
			}
			return session, nil
		},
	}
}

// StoredSessionStrategy reuses the session blob persisted by a previous
// `session login`.
func StoredSessionStrategy(client *Client, store TokenStore) Strategy {
	return Strategy{
		Name: "stored session",
		Authenticate: func(ctx context.Context) (Session, error) {
			session, err := store.Load()
			if err != nil {
				return Session{}, err
			}
			if session.Token == "" {
				return Session{}, fmt.Errorf("%w: no stored session", ErrAuthenticationFailed)
			}
			if err := client.Resume(session); err != nil {
				return Session{}, err
			}
			return session, nil
		},
	}
}

// CredentialStrategy performs an email/password login.
func CredentialStrategy(client *Client, email, password string) Strategy {
	return Strategy{
		Name: "email/password",
		Authenticate: func(ctx context.Context) (Session, error) {
			return client.Login(ctx, email, password)
		},
	}
}

// Authenticator walks an ordered strategy list until one yields a session.
type Authenticator struct {
	strategies []Strategy
	log        *slog.Logger
}

// NewAuthenticator builds an Authenticator over the provided strategies.
func NewAuthenticator(log *slog.Logger, strategies ...Strategy) *Authenticator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Authenticator{strategies: strategies, log: log}
}

// Authenticate tries each strategy in order and returns the first session
// established, along with the name of the strategy that produced it.
func (a *Authenticator) Authenticate(ctx context.Context) (Session, string, error) {
	if len(a.strategies) == 0 {
		return Session{}, "", fmt.Errorf("%w: no credentials configured (set GARMIN_SESSION or GARMIN_EMAIL/GARMIN_PASSWORD)",
			ErrAuthenticationFailed)
	}

	var failures []string
	for _, strategy := range a.strategies {
		session, err := strategy.Authenticate(ctx)
		if err == nil {
			a.log.Info("authenticated with garmin connect", "strategy", strategy.Name)
			return session, strategy.Name, nil
		}
		a.log.Warn("auth strategy failed", "strategy", strategy.Name, "error", err)
		failures = append(failures, fmt.Sprintf("%s: %v", strategy.Name, err))
	}

	return Session{}, "", fmt.Errorf("%w: all strategies exhausted (%s)",
		ErrAuthenticationFailed, strings.Join(failures, "; "))
}

// ParseSession decodes a session blob. The blob is treated as opaque JSON;
// only the token field is required.
func ParseSession(blob string) (Session, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return Session{}, fmt.Errorf("%w: empty session blob", ErrAuthenticationFailed)
	}
	var session Session
	if err := json.Unmarshal([]byte(blob), &session); err != nil {
		return Session{}, fmt.Errorf("%w: decode session blob: %v", ErrAuthenticationFailed, err)
	}
	if session.Token == "" {
		return Session{}, fmt.Errorf("%w: session blob carries no token", ErrAuthenticationFailed)
	}
	return session, nil
}
