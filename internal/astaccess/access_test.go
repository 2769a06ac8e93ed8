package astaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDeterministically(t *testing.T) {
	assert.Equal(t, "hello", TruncateDeterministically("hello", 10))
	assert.Equal(t, "hel…", TruncateDeterministically("hello", 3))
	assert.Equal(t, "", TruncateDeterministically("", 5))
}

func TestTruncateDeterministicallyIsRuneSafe(t *testing.T) {
	s := "日本語テスト"
	got := TruncateDeterministically(s, 3)
	assert.Equal(t, "日本語…", got)
}
