package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dollycam/dolly/internal/quality"
)

func newProbeCmd() *cobra.Command {
	var (
		asJSON   bool
		resurvey bool
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Survey the host and print its quality tier and render budget",
		RunE: withCLI(func(cli *CLI, _ *cobra.Command, _ []string) error {
			caps := cli.Surveyor.Survey(cli.Ctx())
			if resurvey {
				caps = cli.Surveyor.Resurvey(cli.Ctx())
			}

			snap := quality.Evaluate(caps, cli.Config.Quality.ResolvedThresholds(), quality.Tier(cli.Config.Quality.ForceTier))

			if err := cli.Store.RecordSurvey(cli.Ctx(), snap); err != nil {
				return fmt.Errorf("failed to record survey: %w", err)
			}

			if asJSON {
				data, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			printSnapshot(cli, snap)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	cmd.Flags().BoolVar(&resurvey, "fresh", false, "Discard the cached survey and probe again")

	return cmd
}

func printSnapshot(cli *CLI, snap quality.Snapshot) {
	t := cli.Theme

	rows := [][2]string{
		{"memory", fmt.Sprintf("%.1f GB", snap.Capabilities.MemoryGB)},
		{"cpu cores", fmt.Sprintf("%d", snap.Capabilities.CPUCores)},
		{"max texture", fmt.Sprintf("%d px", snap.Capabilities.MaxTextureSize)},
		{"pixel ratio", fmt.Sprintf("%.2f", snap.Capabilities.PixelRatio)},
		{"viewport", fmt.Sprintf("%dx%d", snap.Capabilities.ViewportWidth, snap.Capabilities.ViewportHeight)},
		{"touch points", fmt.Sprintf("%d", snap.Capabilities.TouchPoints)},
	}

	var caps string
	for _, row := range rows {
		caps += fmt.Sprintf("%s %s\n", t.Subtle.Render(fmt.Sprintf("%-12s", row[0])), t.Normal.Render(row[1]))
	}

	budget := snap.Budget
	budgetRows := [][2]string{
		{"pixel ratio", fmt.Sprintf("%.2f – %.2f", budget.MinPixelRatio, budget.MaxPixelRatio)},
		{"antialias", onOff(budget.Antialias)},
		{"shadows", onOff(budget.Shadows)},
		{"shadow map", fmt.Sprintf("%d px", budget.ShadowMapSize)},
		{"particles", fmt.Sprintf("×%.2f", budget.ParticleMultiplier)},
		{"perf floor", fmt.Sprintf("%.0f fps", budget.PerformanceFloor)},
	}
	var bud string
	for _, row := range budgetRows {
		bud += fmt.Sprintf("%s %s\n", t.Subtle.Render(fmt.Sprintf("%-14s", row[0])), t.Normal.Render(row[1]))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		t.TierBadge(string(snap.Tier)),
		t.Subtle.Render(fmt.Sprintf("  score %d", snap.Score)),
	)

	fmt.Println(t.Box.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		t.BoxHeader.Render("capabilities"),
		caps,
		t.BoxHeader.Render("render budget"),
		bud,
	)))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
