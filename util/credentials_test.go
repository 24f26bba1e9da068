package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEarthdataCredentials_Success(t *testing.T) {
	// Mock
	data := []byte(`# EARTHDATA login
http-user=someuser

http-passwd = s3cret
`)

	// Tested code
	creds, err := ParseEarthdataCredentials(data)

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "someuser", creds.User)
	assert.Equal(t, "s3cret", creds.Password)
}

func TestParseEarthdataCredentials_Errors(t *testing.T) {
	// Mock
	missingPasswd := []byte("http-user=someuser\n")
	malformed := []byte("http-user someuser\n")
	empty := []byte("")

	// Tested code
	_, missingPasswdErr := ParseEarthdataCredentials(missingPasswd)
	_, malformedErr := ParseEarthdataCredentials(malformed)
	_, emptyErr := ParseEarthdataCredentials(empty)

	// Asserts
	assert.NotNil(t, missingPasswdErr)
	assert.NotNil(t, malformedErr)
	assert.NotNil(t, emptyErr)
}

func TestReadEarthdataCredentials(t *testing.T) {
	// Mock
	path := filepath.Join(t.TempDir(), "credentials.conf")
	assert.Nil(t, os.WriteFile(path, []byte("http-user=someuser\nhttp-passwd=s3cret\n"), 0o600))

	// Tested code
	creds, err := ReadEarthdataCredentials(path)
	_, missingErr := ReadEarthdataCredentials(filepath.Join(t.TempDir(), "nope.conf"))

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, "someuser", creds.User)
	assert.NotNil(t, missingErr)
}
