package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	user := &User{
		FirstName: "Dana",
		LastName:  "Whitfield",
		Email:     "dana@example.com",
		Password:  "correct horse battery",
	}

	require.NoError(t, user.BeforeSave(nil))

	assert.NotEmpty(t, user.ID, "ID should be stamped")
	assert.Empty(t, user.Password, "plaintext should be cleared")
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	assert.True(t, user.CheckPassword("correct horse battery"))
	assert.False(t, user.CheckPassword("wrong password"))
}

func TestUser_BeforeSave_KeepsExistingHash(t *testing.T) {
	user := &User{Email: "dana@example.com", Password: "first password"}
	require.NoError(t, user.BeforeSave(nil))
	firstHash := user.PasswordHash

	// No new plaintext set, hash must survive a later save.
	require.NoError(t, user.BeforeSave(nil))
	assert.Equal(t, firstHash, user.PasswordHash)
}

func TestUser_JSONNeverContainsCredentials(t *testing.T) {
	user := &User{
		FirstName: "Dana",
		LastName:  "Whitfield",
		Email:     "dana@example.com",
		Password:  "supersecret",
	}
	require.NoError(t, user.BeforeSave(nil))

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "supersecret")
	assert.NotContains(t, string(data), user.PasswordHash)
	assert.NotContains(t, string(data), "passwordHash")
}
