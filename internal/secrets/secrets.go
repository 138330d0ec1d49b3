package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	intake_errors "form-intake/pkg/errors"
	"form-intake/pkg/logger"

	"go.uber.org/zap"
)

// Store is one tier of secret lookup.
type Store interface {
	Lookup(ctx context.Context, name string) (string, error)
}

var errNotSet = errors.New("secret not set")

// EnvName maps a secret name to its environment variable: "postgres-connection-string"
// becomes "POSTGRES_CONNECTION_STRING".
func EnvName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// EnvStore reads secrets from the process environment.
type EnvStore struct{}

func (EnvStore) Lookup(_ context.Context, name string) (string, error) {
	value, ok := os.LookupEnv(EnvName(name))
	if !ok || value == "" {
		return "", fmt.Errorf("%s: %w", EnvName(name), errNotSet)
	}
	return value, nil
}

// Resolver asks the primary store first and falls back on any failure.
// Either tier may be nil.
type Resolver struct {
	primary  Store
	fallback Store
	logger   *logger.Logger
}

func NewResolver(primary, fallback Store, l *logger.Logger) *Resolver {
	if l == nil {
		l = logger.NewNop()
	}
	return &Resolver{primary: primary, fallback: fallback, logger: l}
}

// Get never fails; an unresolved secret comes back empty.
func (r *Resolver) Get(ctx context.Context, name string) string {
	if r.primary != nil {
		value, err := r.primary.Lookup(ctx, name)
		if err == nil && value != "" {
			return value
		}
		if err == nil {
			err = errNotSet
		}
		r.logger.Error(ctx, "failed to retrieve secret, falling back", zap.String("secret", name), zap.Error(err))
	}
	if r.fallback != nil {
		if value, err := r.fallback.Lookup(ctx, name); err == nil {
			return value
		}
	}
	return ""
}

// Require resolves every name and reports the first one that stayed empty.
func (r *Resolver) Require(ctx context.Context, names ...string) (map[string]string, error) {
	values := make(map[string]string, len(names))
	for _, name := range names {
		value := r.Get(ctx, name)
		if value == "" {
			return nil, fmt.Errorf("%w: %s", intake_errors.ErrSecretMissing, name)
		}
		values[name] = value
	}
	return values, nil
}
