package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestAccount(t *testing.T) {
	assert.Equal(t, "jobscout:ai:gemini", Account(" Gemini "))
}

func TestAPIKeyLifecycle(t *testing.T) {
	keyring.MockInit()

	_, err := GetAPIKey("openai")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SetAPIKey("openai", "  sk-test  "))

	got, err := GetAPIKey("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", got)

	_, err = GetAPIKey("gemini")
	assert.ErrorIs(t, err, ErrNotFound, "keys are per provider")

	require.NoError(t, DeleteAPIKey("openai"))
	_, err = GetAPIKey("openai")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, DeleteAPIKey("openai"), ErrNotFound)
}

func TestRejectsEmptyInput(t *testing.T) {
	keyring.MockInit()

	assert.Error(t, SetAPIKey("", "k"))
	assert.Error(t, SetAPIKey("gemini", "   "))
	_, err := GetAPIKey("")
	assert.Error(t, err)
	assert.Error(t, DeleteAPIKey(""))
}
