package secrets

import (
	"context"
	"os"
	"strings"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
)

// Store resolves a named credential.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
}

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type SecretsManagerStore struct {
	client SecretsManagerAPI
}

func NewSecretsManagerStore(client SecretsManagerAPI) *SecretsManagerStore {
	return &SecretsManagerStore{client: client}
}

func (s *SecretsManagerStore) Get(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", errors.Wrapf(err, "get secret %s", name)
	}

	value := aws.ToString(out.SecretString)
	if value == "" {
		return "", errors.Errorf("secret %s has no string value", name)
	}
	return value, nil
}

// EnvStore reads secrets from environment variables for local runs.
// "youtube-summary/youtube-api-key" is looked up as YOUTUBE_SUMMARY_YOUTUBE_API_KEY.
type EnvStore struct{}

func (EnvStore) Get(_ context.Context, name string) (string, error) {
	key := EnvKey(name)
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", errors.Errorf("secret %s not set (env %s)", name, key)
	}
	return value, nil
}

func EnvKey(name string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, name)
}
