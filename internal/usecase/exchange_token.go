package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edan-ais/Hubbalicious-Siren/internal/bridge"
	"github.com/edan-ais/Hubbalicious-Siren/internal/clover"
)

// ExchangeToken runs the OAuth authorization-code exchange and stores the
// resulting credential. A later exchange with a fresh code overwrites it.
type ExchangeToken struct {
	creds  *bridge.CredentialStore
	client *clover.Client
}

func NewExchangeToken(creds *bridge.CredentialStore, client *clover.Client) *ExchangeToken {
	return &ExchangeToken{creds: creds, client: client}
}

func (uc *ExchangeToken) Execute(ctx context.Context, code, merchantID string) error {
	if strings.TrimSpace(code) == "" {
		return ErrMissingCode
	}

	token, err := uc.client.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}

	uc.creds.Set(bridge.Credential{AccessToken: token, MerchantID: merchantID})
	slog.Info("oauth exchange complete", "merchant_id", merchantID)

	return nil
}
