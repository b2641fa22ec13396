// internal/adapters/db/credential_source.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/agestock/agestock-be/internal/core/ports"
)

// credentialSource reads the image CDN refresh credential from the
// cdn_credentials table, a read-only collaborator maintained outside this
// service. The most recently updated row wins.
type credentialSource struct {
	db     *Database
	logger *slog.Logger
}

// NewCredentialSource creates a credential source backed by the database
func NewCredentialSource(db *Database, logger *slog.Logger) ports.CredentialSource {
	return &credentialSource{
		db:     db,
		logger: logger.With(slog.String("repository", "credentials")),
	}
}

func (r *credentialSource) LatestRefreshToken(ctx context.Context) (string, error) {
	query := `SELECT refresh_token FROM cdn_credentials ORDER BY updated_at DESC LIMIT 1`

	var token string
	err := r.db.QueryRow(ctx, query).Scan(&token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ports.ErrNoCredential
		}
		return "", fmt.Errorf("failed to read refresh credential: %w", err)
	}
	if token == "" {
		return "", ports.ErrNoCredential
	}
	return token, nil
}
