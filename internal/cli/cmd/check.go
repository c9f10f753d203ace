package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/nativewindow/internal/application/usecase"
	"github.com/bnema/nativewindow/internal/cli/styles"
)

var (
	checkOrigins []string
	checkHosts   []string
	checkProfile string
)

var checkCmd = &cobra.Command{
	Use:   "check <url>...",
	Short: "Evaluate URLs against a window security policy",
	Long: `Check reports how a window policy treats each URL: whether a message
sent from it is trusted, whether content may navigate to it and whether
LoadURL accepts it.

The policy comes from --origins and --hosts, or from a window profile of the
configuration.

Examples:
  nativewindow check --origins https://app.example https://app.example/page
  nativewindow check --hosts '*.example' https://evil.test javascript:alert(1)
  nativewindow check --profile main https://example.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringSliceVar(&checkOrigins, "origins", nil, "Trusted origins")
	checkCmd.Flags().StringSliceVar(&checkHosts, "hosts", nil, "Allowed host patterns")
	checkCmd.Flags().StringVarP(&checkProfile, "profile", "p", "", "Use the policy of a window profile")
	checkCmd.MarkFlagsMutuallyExclusive("profile", "origins")
	checkCmd.MarkFlagsMutuallyExclusive("profile", "hosts")
}

func runCheck(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	input := usecase.EvaluatePolicyInput{
		TrustedOrigins: checkOrigins,
		AllowedHosts:   checkHosts,
		URLs:           args,
	}
	if checkProfile != "" {
		p, ok := app.Config.Profile(checkProfile)
		if !ok {
			return fmt.Errorf("unknown window profile %q", checkProfile)
		}
		input.TrustedOrigins = p.TrustedOrigins
		input.AllowedHosts = p.AllowedHosts
	}

	out, err := usecase.NewEvaluatePolicyUseCase().Execute(app.Ctx(), input)
	if err != nil {
		return err
	}

	report := styles.PolicyReport{
		TrustedOrigins: out.TrustedOrigins,
		AllowedHosts:   input.AllowedHosts,
		Permissive:     out.Permissive,
		Verdicts:       make([]styles.PolicyVerdict, 0, len(out.Verdicts)),
	}
	for _, v := range out.Verdicts {
		report.Verdicts = append(report.Verdicts, styles.PolicyVerdict{
			URL:        v.URL,
			Origin:     v.Origin,
			Trusted:    v.Trusted,
			Navigation: v.Navigation.String(),
			Dangerous:  v.Dangerous,
			Loadable:   v.Loadable,
		})
	}

	fmt.Println(styles.NewPolicyRenderer(app.Theme).Render(report))
	return nil
}
