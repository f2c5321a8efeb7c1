package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

var ErrAuthFailed = errors.New("auth failed")

// Profile is the identity extracted from a verified Google ID token.
type Profile struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

// StateStore persists single-use OAuth state tokens across the redirect.
type StateStore interface {
	Save(ctx context.Context, state string) error
	Consume(ctx context.Context, state string) (bool, error)
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Google performs the OAuth code flow against Google and verifies the
// returned ID token through OIDC discovery.
type Google struct {
	cfg      *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

func NewGoogle(ctx context.Context, gc GoogleConfig) (*Google, error) {
	p, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("new oidc provider: %w", err)
	}

	return &Google{
		cfg: &oauth2.Config{
			ClientID:     gc.ClientID,
			ClientSecret: gc.ClientSecret,
			RedirectURL:  gc.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			Endpoint:     endpoints.Google,
		},
		verifier: p.Verifier(&oidc.Config{ClientID: gc.ClientID}),
	}, nil
}

// LoginURL returns the consent-screen URL carrying the given state.
func (g *Google) LoginURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// Exchange trades the callback code for tokens and returns the verified
// identity claims.
func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return Profile{}, ErrAuthFailed
		}
		return Profile{}, fmt.Errorf("code exchange: %w", err)
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return Profile{}, ErrAuthFailed
	}

	idt, err := g.verifier.Verify(ctx, rawID)
	if err != nil {
		return Profile{}, fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Sub      string `json:"sub"`
		Email    string `json:"email"`
		Verified bool   `json:"email_verified"`
		Name     string `json:"name"`
	}
	if err := idt.Claims(&claims); err != nil {
		return Profile{}, fmt.Errorf("decode claims: %w", err)
	}

	return Profile{
		Sub:           claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.Verified,
		Name:          claims.Name,
	}, nil
}

// RandState returns a URL-safe random state token.
func RandState(size int) string {
	b := make([]byte, size)
	// rand.Read never returns an error
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
