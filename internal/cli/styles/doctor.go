package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type DoctorRenderer struct {
	theme *Theme
}

func NewDoctorRenderer(theme *Theme) *DoctorRenderer {
	return &DoctorRenderer{theme: theme}
}

type DoctorReport struct {
	Platform  string
	Compiled  bool
	Available bool
	Prefix    string
	Checks    []DoctorRuntimeCheck
}

type DoctorRuntimeCheck struct {
	Name            string
	PkgConfigName   string
	Installed       bool
	Version         string
	RequiredVersion string
	OK              bool
	Error           string
}

func (r *DoctorRenderer) Render(report DoctorReport) string {
	header := r.renderHeader(report)
	if len(report.Checks) == 0 && strings.TrimSpace(report.Prefix) == "" {
		return header
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", r.renderRuntime(report))
}

func (r *DoctorRenderer) renderHeader(report DoctorReport) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	statusStyle := r.theme.SuccessStyle
	statusText := "Available"
	if !report.Available {
		statusStyle = r.theme.WarningStyle
		statusText = "Unavailable"
	}

	title := fmt.Sprintf("%s %s", iconStyle.Render(IconDoctor), r.theme.Title.Render("Runtime"))
	platform := r.theme.AccentBadge(report.Platform)
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(statusText))
	line := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", platform, " ", badge)

	if report.Platform == "gtk" && !report.Compiled {
		line += "\n" + r.theme.WarningStyle.Render(IconWarning+" built without the webkit_cgo tag")
	}
	return line
}

func (r *DoctorRenderer) renderRuntime(report DoctorReport) string {
	lines := make([]string, 0, len(report.Checks)+1)

	if strings.TrimSpace(report.Prefix) != "" {
		lines = append(lines, fmt.Sprintf(
			"%s %s %s",
			r.theme.Subtle.Render("Prefix"),
			r.theme.Normal.Render(report.Prefix),
			r.theme.Subtle.Render("(runtime override)"),
		))
	}

	for _, c := range report.Checks {
		lines = append(lines, r.renderRuntimeCheck(c))
	}

	body := strings.Join(lines, "\n")
	return r.theme.Box.Render(r.theme.BoxHeader.Render(fmt.Sprintf("%s Libraries", r.theme.Highlight.Render(IconPackage))) + "\n" + body)
}

func (r *DoctorRenderer) renderRuntimeCheck(c DoctorRuntimeCheck) string {
	icon := IconCheck
	statusStyle := r.theme.SuccessStyle
	status := "OK"

	var summary string
	switch {
	case !c.Installed:
		icon = IconX
		statusStyle = r.theme.ErrorStyle
		status = "Missing"
		summary = c.Error
	case !c.OK:
		icon = IconWarning
		statusStyle = r.theme.WarningStyle
		status = "Too old"
		summary = fmt.Sprintf("have %s, need >= %s", c.Version, c.RequiredVersion)
	default:
		summary = fmt.Sprintf("%s (>= %s)", c.Version, c.RequiredVersion)
	}

	name := r.theme.Normal.Render(c.Name)
	badge := r.theme.BadgeMuted.Render(statusStyle.Render(status))
	info := r.theme.Subtle.Render(summary)

	return fmt.Sprintf("%s %s %s\n  %s", statusStyle.Render(icon), name, badge, info)
}
