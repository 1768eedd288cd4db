package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentialsFrom(t *testing.T) {
	creds, err := ParseCredentialsFrom(map[string]string{
		"CLOUDINARY_CLOUD_NAME": "studio",
		"CLOUDINARY_API_KEY":    "key",
		"CLOUDINARY_API_SECRET": "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, Credentials{CloudName: "studio", APIKey: "key", APISecret: "secret"}, creds)
	assert.True(t, creds.Complete())
	assert.Empty(t, creds.Missing())
}

func TestMissing(t *testing.T) {
	creds, err := ParseCredentialsFrom(map[string]string{
		"CLOUDINARY_CLOUD_NAME": "studio",
		"CLOUDINARY_API_KEY":    "  ",
	})
	require.NoError(t, err)
	assert.False(t, creds.Complete())
	assert.Equal(t, []string{"CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET"}, creds.Missing())
}
