package secrets

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerAPI is the slice of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerStore reads string secrets from AWS Secrets Manager.
// Prefix is prepended to every name, e.g. "prod/".
type SecretsManagerStore struct {
	api    SecretsManagerAPI
	prefix string
}

func NewSecretsManagerStore(api SecretsManagerAPI, prefix string) *SecretsManagerStore {
	return &SecretsManagerStore{api: api, prefix: prefix}
}

func NewSecretsManagerStoreFromRegion(ctx context.Context, region, prefix string) (*SecretsManagerStore, error) {
	if region == "" {
		return nil, errors.New("secrets manager region is required")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewSecretsManagerStore(secretsmanager.NewFromConfig(awsCfg), prefix), nil
}

func (s *SecretsManagerStore) Lookup(ctx context.Context, name string) (string, error) {
	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.prefix + name),
	})
	if err != nil {
		return "", err
	}
	if out.SecretString == nil {
		return "", errNotSet
	}
	return aws.ToString(out.SecretString), nil
}
