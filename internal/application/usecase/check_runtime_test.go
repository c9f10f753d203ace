package usecase_test

import (
	"testing"

	"github.com/bnema/nativewindow/internal/application/port"
	portmocks "github.com/bnema/nativewindow/internal/application/port/mocks"
	"github.com/bnema/nativewindow/internal/application/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckRuntimeUseCase_HeadlessNeedsNoProbe(t *testing.T) {
	probe := portmocks.NewMockRuntimeVersionProbe(t)
	uc := usecase.NewCheckRuntimeUseCase(probe)

	out, err := uc.Execute(testContext(), usecase.CheckRuntimeInput{Platform: "headless"})
	require.NoError(t, err)
	assert.True(t, out.Available)
	assert.Empty(t, out.Checks)
}

func TestCheckRuntimeUseCase_GTK(t *testing.T) {
	tests := []struct {
		name      string
		compiled  bool
		gtk       string
		webkit    string
		webkitErr error
		want      bool
	}{
		{name: "all present", compiled: true, gtk: "4.16.2\n", webkit: "2.46.0", want: true},
		{name: "not compiled in", compiled: false, gtk: "4.16.2", webkit: "2.46.0", want: false},
		{name: "old webkit", compiled: true, gtk: "4.16.2", webkit: "2.40.1", want: false},
		{name: "unparsable version", compiled: true, gtk: "devel", webkit: "2.46.0", want: false},
		{
			name:      "missing webkit",
			compiled:  true,
			gtk:       "4.16.2",
			webkitErr: &port.PkgConfigError{Kind: port.PkgConfigErrorKindPackageMissing, Package: "webkitgtk-6.0", Err: port.ErrPkgConfigPackageMissing},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			probe := portmocks.NewMockRuntimeVersionProbe(t)
			probe.EXPECT().PkgConfigModVersion(mock.Anything, "gtk4", "/opt/webkit").Return(tt.gtk, nil)
			probe.EXPECT().PkgConfigModVersion(mock.Anything, "webkitgtk-6.0", "/opt/webkit").Return(tt.webkit, tt.webkitErr)

			uc := usecase.NewCheckRuntimeUseCase(probe)
			out, err := uc.Execute(ctx, usecase.CheckRuntimeInput{Platform: "gtk", Compiled: tt.compiled, Prefix: "/opt/webkit"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Available)
			require.Len(t, out.Checks, 2)
			assert.Equal(t, usecase.RuntimeDependencyGTK4, out.Checks[0].ID)
			if tt.webkitErr != nil {
				assert.False(t, out.Checks[1].Installed)
				assert.Contains(t, out.Checks[1].Error, "package_missing")
			}
		})
	}
}
