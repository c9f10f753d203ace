package usecase

import (
	"context"
	"strings"

	"github.com/bnema/nativewindow/internal/application/port"
	"github.com/bnema/nativewindow/internal/logging"
)

const (
	defaultMinGTK4Version      = "4.14"
	defaultMinWebKitGTKVersion = "2.44"
)

type RuntimeDependencyID string

const (
	RuntimeDependencyGTK4      RuntimeDependencyID = "gtk4"
	RuntimeDependencyWebKitGTK RuntimeDependencyID = "webkitgtk-6.0"
)

// RuntimeDependencyStatus contains the result of checking a runtime dependency.
type RuntimeDependencyStatus struct {
	ID            RuntimeDependencyID
	PkgConfigName string
	DisplayName   string

	Installed bool
	Version   string

	RequiredVersion  string
	MeetsRequirement bool

	Error string
}

// CheckRuntimeUseCase reports whether a platform backend can run on this host.
type CheckRuntimeUseCase struct {
	probe port.RuntimeVersionProbe
}

// NewCheckRuntimeUseCase creates a new use case.
func NewCheckRuntimeUseCase(probe port.RuntimeVersionProbe) *CheckRuntimeUseCase {
	return &CheckRuntimeUseCase{probe: probe}
}

// CheckRuntimeInput selects the backend to check.
type CheckRuntimeInput struct {
	// Platform is the backend name, "gtk" or "headless".
	Platform string
	// Compiled reports whether the backend was built into the binary.
	Compiled bool
	// Prefix optionally points to a custom runtime prefix (e.g. /opt/webkitgtk).
	Prefix string

	MinGTK4Version      string
	MinWebKitGTKVersion string
}

// CheckRuntimeOutput contains the result of the runtime check.
type CheckRuntimeOutput struct {
	Platform  string
	Available bool
	Checks    []RuntimeDependencyStatus
}

// Execute checks the libraries the selected backend links against. The
// headless backend has none and is always available.
func (uc *CheckRuntimeUseCase) Execute(ctx context.Context, input CheckRuntimeInput) (*CheckRuntimeOutput, error) {
	log := logging.FromContext(ctx).With().Str("component", "runtime-check").Logger()

	out := &CheckRuntimeOutput{Platform: input.Platform}
	if input.Platform != "gtk" {
		out.Available = true
		return out, nil
	}

	minGTK := input.MinGTK4Version
	if minGTK == "" {
		minGTK = defaultMinGTK4Version
	}
	minWebKit := input.MinWebKitGTKVersion
	if minWebKit == "" {
		minWebKit = defaultMinWebKitGTKVersion
	}

	out.Checks = []RuntimeDependencyStatus{
		{
			ID:              RuntimeDependencyGTK4,
			PkgConfigName:   "gtk4",
			DisplayName:     "GTK4",
			RequiredVersion: minGTK,
		},
		{
			ID:              RuntimeDependencyWebKitGTK,
			PkgConfigName:   "webkitgtk-6.0",
			DisplayName:     "WebKitGTK 6.0",
			RequiredVersion: minWebKit,
		},
	}

	allOK := input.Compiled
	for i := range out.Checks {
		status := &out.Checks[i]

		version, err := uc.probe.PkgConfigModVersion(ctx, status.PkgConfigName, input.Prefix)
		if err != nil {
			status.Error = err.Error()
			allOK = false
			continue
		}

		status.Installed = true
		status.Version = strings.TrimSpace(version)

		cmp, ok := compareVersion(status.Version, status.RequiredVersion)
		if !ok {
			status.Error = "could not parse version"
			allOK = false
			continue
		}

		status.MeetsRequirement = cmp >= 0
		if !status.MeetsRequirement {
			allOK = false
		}
	}

	out.Available = allOK
	log.Debug().
		Bool("available", allOK).
		Bool("compiled", input.Compiled).
		Str("prefix", input.Prefix).
		Msg("runtime check complete")
	return out, nil
}

// compareVersion compares two dotted version strings.
// Returns 1 if a > b, 0 if a == b, -1 if a < b. ok is false if either cannot be parsed.
func compareVersion(a, b string) (cmp int, ok bool) {
	av, ok := parseVersionPrefix(a)
	if !ok {
		return 0, false
	}
	bv, ok := parseVersionPrefix(b)
	if !ok {
		return 0, false
	}

	for i := range max(len(av), len(bv)) {
		x, y := 0, 0
		if i < len(av) {
			x = av[i]
		}
		if i < len(bv) {
			y = bv[i]
		}
		switch {
		case x > y:
			return 1, true
		case x < y:
			return -1, true
		}
	}
	return 0, true
}

// parseVersionPrefix parses a dotted numeric prefix such as 2.44.1, stopping
// at the first other character.
func parseVersionPrefix(s string) ([]int, bool) {
	var parts []int
	cur := 0
	inNum := false

loop:
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			inNum = true
			cur = cur*10 + int(c-'0')
		case c == '.':
			if !inNum {
				return nil, false
			}
			parts = append(parts, cur)
			cur = 0
			inNum = false
		default:
			break loop
		}
	}

	if inNum {
		parts = append(parts, cur)
	}
	if len(parts) == 0 {
		return nil, false
	}
	return parts, true
}
