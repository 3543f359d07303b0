// Package repository persists local CLI state in SQLite.
package repository

import (
	"context"

	"github.com/taebin/travelsay/internal/domain"
)

// CredentialRepo stores one bearer token per backend base URL.
type CredentialRepo interface {
	Get(ctx context.Context, server string) (*domain.Credential, error)
	Save(ctx context.Context, c *domain.Credential) error
	Delete(ctx context.Context, server string) error
}

// SettingsRepo is a small key/value store for CLI preferences.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
