package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/scy"
)

// ErrNoToken is returned when no bot token could be resolved.
var ErrNoToken = errors.New("discord: bot token is required")

// Token resolves the bot token: an inline token wins, otherwise the token is
// loaded from a scy secret resource at URL decrypted with key
// (e.g. blowfish://default).
func Token(ctx context.Context, token, URL, key string) (string, error) {
	if token != "" {
		return token, nil
	}
	if URL == "" {
		return "", ErrNoToken
	}
	secret, err := scy.New().Load(ctx, scy.NewResource(nil, URL, key))
	if err != nil {
		return "", fmt.Errorf("failed to load discord token from %s: %w", URL, err)
	}
	if secret.String() == "" {
		return "", ErrNoToken
	}
	return secret.String(), nil
}
