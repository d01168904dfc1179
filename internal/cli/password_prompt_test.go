package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptPasswordReadsPipedLine(t *testing.T) {
	var out bytes.Buffer

	password, err := promptPassword(strings.NewReader("s3cret pass\r\nignored\n"), &out, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret pass", password)
	assert.Equal(t, "Password: ", out.String())
}

func TestPromptPasswordAcceptsMissingTrailingNewline(t *testing.T) {
	password, err := promptPassword(strings.NewReader("hunter2"), &bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", password)
}

func TestPromptPasswordRejectsEmptyInput(t *testing.T) {
	_, err := promptPassword(strings.NewReader("\n"), &bytes.Buffer{}, "")
	assert.ErrorIs(t, err, errEmptyPassword)

	_, err = promptPassword(strings.NewReader(""), &bytes.Buffer{}, "")
	assert.ErrorIs(t, err, errEmptyPassword)
}

func TestPromptPasswordReadsRegularFileAsPipedInput(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "password")
	require.NoError(t, err)
	_, err = file.WriteString("from-file\n")
	require.NoError(t, err)
	_, err = file.Seek(0, 0)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	var out bytes.Buffer
	password, err := promptPassword(file, &out, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "from-file", password)
	assert.Equal(t, "Password: ", out.String())
}
