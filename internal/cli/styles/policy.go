package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PolicyReport is the rendered form of an offline policy evaluation.
type PolicyReport struct {
	TrustedOrigins []string
	AllowedHosts   []string
	Permissive     bool
	Verdicts       []PolicyVerdict
}

// PolicyVerdict is one evaluated URL.
type PolicyVerdict struct {
	URL        string
	Origin     string
	Trusted    bool
	Navigation string
	Dangerous  bool
	Loadable   bool
}

// PolicyRenderer renders policy verdicts.
type PolicyRenderer struct {
	theme *Theme
}

func NewPolicyRenderer(theme *Theme) *PolicyRenderer {
	return &PolicyRenderer{theme: theme}
}

func (r *PolicyRenderer) Render(report PolicyReport) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	header := fmt.Sprintf("%s %s", iconStyle.Render(IconShield), r.theme.Title.Render("Policy"))

	summary := []string{
		fmt.Sprintf("%s %s", r.theme.Subtle.Render("Trusted origins"), r.list(report.TrustedOrigins)),
		fmt.Sprintf("%s %s", r.theme.Subtle.Render("Allowed hosts"), r.list(report.AllowedHosts)),
	}
	if report.Permissive {
		summary = append(summary, r.theme.WarningStyle.Render(IconWarning+" no trusted origins: messages from any origin are accepted"))
	}

	blocks := []string{header, "", strings.Join(summary, "\n")}
	for _, v := range report.Verdicts {
		blocks = append(blocks, "", r.renderVerdict(v))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *PolicyRenderer) list(values []string) string {
	if len(values) == 0 {
		return r.theme.MutedBadge("any")
	}
	return r.theme.Normal.Render(strings.Join(values, ", "))
}

func (r *PolicyRenderer) renderVerdict(v PolicyVerdict) string {
	origin := v.Origin
	if origin == "" {
		origin = "opaque"
	}

	lines := []string{
		fmt.Sprintf("%s %s", r.theme.Highlight.Render(v.URL), r.theme.MutedBadge(origin)),
		r.flag("message", v.Trusted, "trusted", "rejected"),
		r.navigation(v.Navigation),
		r.flag("load_url", v.Loadable, "accepted", "scheme not allowed"),
	}
	if v.Dangerous {
		lines = append(lines, fmt.Sprintf("  %s %s", r.theme.ErrorStyle.Render(IconWarning), r.theme.ErrorStyle.Render("dangerous scheme")))
	}
	return strings.Join(lines, "\n")
}

func (r *PolicyRenderer) flag(name string, ok bool, yes, no string) string {
	if ok {
		return fmt.Sprintf("  %s %s %s", r.theme.SuccessStyle.Render(IconCheck), r.theme.Subtle.Render(name), r.theme.SuccessStyle.Render(yes))
	}
	return fmt.Sprintf("  %s %s %s", r.theme.ErrorStyle.Render(IconX), r.theme.Subtle.Render(name), r.theme.ErrorStyle.Render(no))
}

func (r *PolicyRenderer) navigation(decision string) string {
	switch decision {
	case "allow":
		return r.flag("navigate", true, decision, "")
	case "block":
		return fmt.Sprintf("  %s %s %s", r.theme.ErrorStyle.Render(IconX), r.theme.Subtle.Render("navigate"), r.theme.ErrorStyle.Render("cancelled silently"))
	default:
		return fmt.Sprintf("  %s %s %s", r.theme.WarningStyle.Render(IconWarning), r.theme.Subtle.Render("navigate"), r.theme.WarningStyle.Render("blocked, host notified"))
	}
}
