package secrets

import (
	"context"
	"errors"
	"os"
	"testing"

	intake_errors "form-intake/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[string]string

func (m mapStore) Lookup(_ context.Context, name string) (string, error) {
	if v, ok := m[name]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

type failingStore struct{ calls int }

func (f *failingStore) Lookup(context.Context, string) (string, error) {
	f.calls++
	return "", errors.New("permission denied")
}

type fakeSecretsManager struct {
	requested []string
	values    map[string]string
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	id := aws.ToString(in.SecretId)
	f.requested = append(f.requested, id)
	v, ok := f.values[id]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "STORAGE_CONNECTION_STRING", EnvName("storage-connection-string"))
	assert.Equal(t, "PLAIN", EnvName("plain"))
}

func TestResolverPrefersPrimary(t *testing.T) {
	t.Setenv("POSTGRES_CONNECTION_STRING", "from-env")
	r := NewResolver(mapStore{"postgres-connection-string": "from-vault"}, EnvStore{}, nil)

	assert.Equal(t, "from-vault", r.Get(context.Background(), "postgres-connection-string"))
}

func TestResolverFallsBackToEnvironment(t *testing.T) {
	t.Setenv("SERVICEBUS_CONNECTION_STRING", "redis://localhost:6379")
	primary := &failingStore{}
	r := NewResolver(primary, EnvStore{}, nil)

	assert.Equal(t, "redis://localhost:6379", r.Get(context.Background(), "servicebus-connection-string"))
	assert.Equal(t, 1, primary.calls)
}

func TestResolverEmptyPrimaryValueFallsBack(t *testing.T) {
	t.Setenv("STORAGE_CONNECTION_STRING", "Provider=s3;Region=us-east-1")
	r := NewResolver(mapStore{"storage-connection-string": ""}, EnvStore{}, nil)

	assert.Equal(t, "Provider=s3;Region=us-east-1", r.Get(context.Background(), "storage-connection-string"))
}

func TestResolverUnresolvedIsEmpty(t *testing.T) {
	t.Setenv("MISSING_SECRET", "")
	os.Unsetenv("MISSING_SECRET")
	r := NewResolver(&failingStore{}, EnvStore{}, nil)

	assert.Equal(t, "", r.Get(context.Background(), "missing-secret"))
	assert.Equal(t, "", NewResolver(nil, nil, nil).Get(context.Background(), "missing-secret"))
}

func TestRequire(t *testing.T) {
	r := NewResolver(mapStore{"a": "1", "b": "2"}, nil, nil)

	values, err := r.Require(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, values)

	_, err = r.Require(context.Background(), "a", "c")
	assert.ErrorIs(t, err, intake_errors.ErrSecretMissing)
	assert.Contains(t, err.Error(), "c")
}

func TestSecretsManagerStoreAppliesPrefix(t *testing.T) {
	api := &fakeSecretsManager{values: map[string]string{"prod/storage-connection-string": "Provider=s3;Region=eu-west-1"}}
	store := NewSecretsManagerStore(api, "prod/")

	value, err := store.Lookup(context.Background(), "storage-connection-string")
	require.NoError(t, err)
	assert.Equal(t, "Provider=s3;Region=eu-west-1", value)

	_, err = store.Lookup(context.Background(), "postgres-connection-string")
	assert.Error(t, err)
	assert.Equal(t, []string{"prod/storage-connection-string", "prod/postgres-connection-string"}, api.requested)
}

func TestSecretsManagerStoreRequiresRegion(t *testing.T) {
	_, err := NewSecretsManagerStoreFromRegion(context.Background(), "", "")
	assert.Error(t, err)
}
