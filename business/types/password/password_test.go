package password_test

import (
	"strings"
	"testing"

	"github.com/jcpaschoal/kangaroute/business/types/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	p, err := password.Parse("secret123")
	require.NoError(t, err)
	assert.Equal(t, "secret123", p.String())

	_, err = password.Parse("")
	assert.Error(t, err)

	_, err = password.Parse(strings.Repeat("x", 73))
	assert.Error(t, err)

	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "[MASKED]", string(text))
}
