package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_RejectsInvalidURI(t *testing.T) {
	conn, err := New("localhost:5672")
	require.Error(t, err)
	require.Nil(t, conn)
}
