package nop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_New(t *testing.T) {
	service := New()
	assert.Equal(t, "nop", service.Name())

	body, err := service.New(context.Background(), nil)
	assert.NoError(t, err)
	assert.NoError(t, body(context.Background()))

	// terminates immediately even under a cancelled context
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, body(ctx))
}
