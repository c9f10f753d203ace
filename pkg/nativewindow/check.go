package nativewindow

import (
	"context"
	"fmt"

	"github.com/bnema/nativewindow/internal/application/usecase"
	"github.com/bnema/nativewindow/internal/infrastructure/deps"
	"github.com/bnema/nativewindow/internal/infrastructure/platform/gtk"
)

// RuntimeStatus reports whether a backend can run on this host.
type RuntimeStatus = usecase.CheckRuntimeOutput

// CheckRuntime reports the availability of backend. For the GTK backend the
// installed GTK4 and WebKitGTK versions are probed with pkg-config, looking
// under prefix first when it is set.
func CheckRuntime(ctx context.Context, backend, prefix string) (*RuntimeStatus, error) {
	switch backend {
	case "":
		backend = BackendHeadless
	case BackendHeadless, BackendGTK:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	uc := usecase.NewCheckRuntimeUseCase(deps.NewPkgConfigProbe())
	return uc.Execute(ctx, usecase.CheckRuntimeInput{
		Platform: backend,
		Compiled: backend != BackendGTK || gtk.Available(),
		Prefix:   prefix,
	})
}
