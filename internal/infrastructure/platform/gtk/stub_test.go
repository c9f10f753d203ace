//go:build !webkit_cgo

package gtk_test

import (
	"context"
	"testing"

	"github.com/bnema/nativewindow/internal/infrastructure/platform/gtk"
	"github.com/stretchr/testify/assert"
)

func TestStubFactory(t *testing.T) {
	assert.False(t, gtk.Available())

	p, err := gtk.Factory()(context.Background(), nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, gtk.ErrUnavailable)
}
