package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := rootCommand()

	for _, name := range []string{"serve", "migrate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
		assert.NotNil(t, sub.RunE)
	}
	assert.NotNil(t, cmd.RunE)
}

func TestMigrateCommand_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cmd := rootCommand()
	cmd.SetArgs([]string{"migrate"})
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestMigrateCommand_SQLite(t *testing.T) {
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", t.TempDir()+"/users.db")
	t.Setenv("LOG_LEVEL", "error")

	cmd := rootCommand()
	cmd.SetArgs([]string{"migrate"})
	assert.NoError(t, cmd.Execute())
}
