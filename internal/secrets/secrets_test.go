package secrets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/omikuji-web/internal/secrets"
)

type mockClient struct {
	value  *string
	err    error
	lastID string
}

func (m *mockClient) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	m.lastID = aws.ToString(in.SecretId)
	if m.err != nil {
		return nil, m.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: m.value}, nil
}

func TestFetchDecodesCredentials(t *testing.T) {
	c := &mockClient{value: aws.String(`{"username":"app","password":"s3cret"}`)}

	creds, err := secrets.Fetch(context.Background(), c, "fortune-telling-app-credentials")
	require.NoError(t, err)

	assert.Equal(t, "fortune-telling-app-credentials", c.lastID)
	assert.Equal(t, "app", creds.Username)
	assert.Equal(t, "s3cret", creds.Password)
	assert.NotContains(t, creds.String(), "s3cret")
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *mockClient
	}{
		{"api failure", &mockClient{err: errors.New("AccessDenied")}},
		{"no string", &mockClient{}},
		{"bad json", &mockClient{value: aws.String("not-json")}},
		{"no username", &mockClient{value: aws.String(`{"password":"x"}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := secrets.Fetch(context.Background(), tt.client, "name")
			assert.Error(t, err)
		})
	}
}

func TestFetchEmptySecretSentinel(t *testing.T) {
	_, err := secrets.Fetch(context.Background(), &mockClient{value: aws.String("")}, "name")
	assert.ErrorIs(t, err, secrets.ErrEmptySecret)
}
