// Package deps probes the native libraries behind the GTK platform.
package deps

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bnema/nativewindow/internal/application/port"
)

// PkgConfigProbe uses pkg-config to query module versions.
type PkgConfigProbe struct{}

var _ port.RuntimeVersionProbe = (*PkgConfigProbe)(nil)

func NewPkgConfigProbe() *PkgConfigProbe {
	return &PkgConfigProbe{}
}

func (p *PkgConfigProbe) PkgConfigModVersion(ctx context.Context, pkgName, prefix string) (string, error) {
	pc, err := exec.LookPath("pkg-config")
	if err != nil {
		return "", &port.PkgConfigError{
			Kind:    port.PkgConfigErrorKindCommandMissing,
			Package: pkgName,
			Err:     port.ErrPkgConfigMissing,
		}
	}

	cmd := exec.CommandContext(ctx, pc, "--modversion", pkgName)
	cmd.Env = CommandEnvWithPrefix(prefix)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", &port.PkgConfigError{
			Kind:    port.PkgConfigErrorKindPackageMissing,
			Package: pkgName,
			Output:  strings.TrimSpace(string(out)),
			Err:     port.ErrPkgConfigPackageMissing,
		}
	}

	return string(out), nil
}

// CommandEnvWithPrefix returns the current environment with the pkg-config
// directories under prefix prepended to PKG_CONFIG_PATH.
func CommandEnvWithPrefix(prefix string) []string {
	base := os.Environ()
	if strings.TrimSpace(prefix) == "" {
		return base
	}

	prefix = filepath.Clean(prefix)
	dirs := []string{
		filepath.Join(prefix, "lib", "pkgconfig"),
		filepath.Join(prefix, "lib64", "pkgconfig"),
		filepath.Join(prefix, "share", "pkgconfig"),
		filepath.Join(prefix, "lib", "x86_64-linux-gnu", "pkgconfig"),
	}

	out := make([]string, 0, len(base)+1)
	existing := ""
	for _, kv := range base {
		if v, ok := strings.CutPrefix(kv, "PKG_CONFIG_PATH="); ok {
			existing = v
			continue
		}
		out = append(out, kv)
	}
	return append(out, "PKG_CONFIG_PATH="+prependPathList(existing, dirs...))
}

func prependPathList(existing string, values ...string) string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values)+4)

	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, v := range values {
		add(v)
	}
	if existing != "" {
		for _, v := range strings.Split(existing, ":") {
			add(v)
		}
	}

	return strings.Join(out, ":")
}
