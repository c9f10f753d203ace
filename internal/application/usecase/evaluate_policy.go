package usecase

import (
	"context"
	"slices"

	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
	"github.com/bnema/nativewindow/internal/logging"
)

// EvaluatePolicyInput describes a window policy and the URLs to test against it.
type EvaluatePolicyInput struct {
	TrustedOrigins []string
	AllowedHosts   []string
	URLs           []string
}

// PolicyVerdict is the policy outcome for one URL.
type PolicyVerdict struct {
	URL string
	// Origin is empty when the URL has no tuple origin.
	Origin     string
	Trusted    bool
	Navigation security.NavigationDecision
	Dangerous  bool
	Loadable   bool
}

// EvaluatePolicyOutput holds one verdict per input URL, in input order.
type EvaluatePolicyOutput struct {
	TrustedOrigins []string
	Permissive     bool
	Verdicts       []PolicyVerdict
}

// EvaluatePolicyUseCase runs the security policy of a window offline.
type EvaluatePolicyUseCase struct{}

// NewEvaluatePolicyUseCase creates a new use case.
func NewEvaluatePolicyUseCase() *EvaluatePolicyUseCase {
	return &EvaluatePolicyUseCase{}
}

// Execute classifies every URL as a message source, as a content-initiated
// navigation and as a LoadURL argument.
func (uc *EvaluatePolicyUseCase) Execute(ctx context.Context, input EvaluatePolicyInput) (*EvaluatePolicyOutput, error) {
	log := logging.FromContext(ctx).With().Str("component", "policy-check").Logger()
	policy := security.NewPolicy(0, input.TrustedOrigins, input.AllowedHosts, security.Permissions{}, log)

	trusted := policy.TrustedOrigins()
	slices.Sort(trusted)
	out := &EvaluatePolicyOutput{
		TrustedOrigins: trusted,
		Permissive:     len(input.TrustedOrigins) == 0,
		Verdicts:       make([]PolicyVerdict, 0, len(input.URLs)),
	}

	for _, raw := range input.URLs {
		origin, _ := security.ExtractOrigin(raw)
		out.Verdicts = append(out.Verdicts, PolicyVerdict{
			URL:        raw,
			Origin:     origin,
			Trusted:    policy.IsTrusted(raw),
			Navigation: policy.DecideNavigation(raw),
			Dangerous:  security.IsDangerousScheme(raw),
			Loadable:   window.IsLoadableURL(raw),
		})
	}

	log.Debug().Int("urls", len(input.URLs)).Int("trusted_origins", len(trusted)).Msg("policy evaluated")
	return out, nil
}
