package main

import (
	"fmt"
	"time"

	"casedesk-backend/config"
	"casedesk-backend/service"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type tokenInfo struct {
	Type      string    `yaml:"type"`
	Subject   string    `yaml:"subject"`
	Issuer    string    `yaml:"issuer"`
	ID        string    `yaml:"id"`
	IssuedAt  time.Time `yaml:"issued_at"`
	ExpiresAt time.Time `yaml:"expires_at"`
	Expired   bool      `yaml:"expired"`
}

func tokenCmd(envFiles *[]string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a token against APP_SECRET_KEY and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFiles...)
			if err != nil {
				return err
			}
			issuer := service.NewTokenIssuer(cfg.SecretKey, cfg.AppName, cfg.AccessTTL(), cfg.RefreshTTL(), nil)
			info, err := inspectToken(issuer, args[0], time.Now())
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(info)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return cmd
}

func inspectToken(issuer *service.TokenIssuer, token string, now time.Time) (*tokenInfo, error) {
	claims, err := issuer.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	info := &tokenInfo{
		Type:    string(claims.Type),
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
		ID:      claims.ID,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time.UTC()
		info.Expired = !now.Before(claims.ExpiresAt.Time)
	}
	return info, nil
}
