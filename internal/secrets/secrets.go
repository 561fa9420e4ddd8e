// Package secrets resolves database credentials from AWS Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var ErrEmptySecret = errors.New("secret has no string value")

// Client is the slice of the Secrets Manager API this package needs.
type Client interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Credentials is the username/password pair stored in the secret.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// String keeps the password out of logs.
func (c Credentials) String() string {
	return c.Username + ":***"
}

// NewClient builds a Secrets Manager client using the default AWS credential chain.
func NewClient(ctx context.Context, region string) (*secretsmanager.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// Fetch reads the secret once. Callers keep the result for the life of the process.
func Fetch(ctx context.Context, c Client, name string) (Credentials, error) {
	out, err := c.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("get secret %q: %w", name, err)
	}

	raw := aws.ToString(out.SecretString)
	if raw == "" {
		return Credentials{}, fmt.Errorf("secret %q: %w", name, ErrEmptySecret)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode secret %q: %w", name, err)
	}
	if creds.Username == "" {
		return Credentials{}, fmt.Errorf("secret %q: username is empty", name)
	}
	return creds, nil
}
