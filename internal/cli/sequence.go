package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newSequenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Inspect the authored camera sequences",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured sequences",
		RunE: withCLI(func(cli *CLI, _ *cobra.Command, _ []string) error {
			t := cli.Theme
			for _, seq := range cli.Config.Cinematic.Sequences {
				built, err := seq.Build()
				if err != nil {
					fmt.Printf("%s %s  %s\n", t.StatusIcon(false), seq.Name, t.ErrorStyle.Render(err.Error()))
					continue
				}

				marker := " "
				if seq.Name == cli.Config.Cinematic.DefaultSequence {
					marker = t.HelpKey.Render("*")
				}
				played, _ := cli.Store.IntroPlayed(cli.Ctx(), seq.Name)
				status := t.Subtle.Render("unplayed")
				if played {
					status = t.SuccessStyle.Render("played")
				}
				fmt.Printf("%s %s  %s  %s\n",
					marker,
					t.Highlight.Render(fmt.Sprintf("%-16s", seq.Name)),
					t.Subtle.Render(fmt.Sprintf("%d keyframes, %5.1fs", built.Len(), built.Duration())),
					status)
			}
			return nil
		}),
	}

	showCmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the keyframes of a sequence",
		Args:  cobra.MaximumNArgs(1),
		RunE: withCLI(func(cli *CLI, _ *cobra.Command, args []string) error {
			seqCfg, err := cli.defaultSequence(args)
			if err != nil {
				return err
			}
			built, err := seqCfg.Build()
			if err != nil {
				return fmt.Errorf("sequence %q is invalid: %w", seqCfg.Name, err)
			}

			t := cli.Theme
			var lines string
			at := 0.0
			for i, kf := range built.Keyframes() {
				at += kf.Duration
				easing := string(kf.Easing)
				if easing == "" {
					easing = "linear"
				}
				lines += fmt.Sprintf("%s  %s  %s\n",
					t.Subtle.Render(fmt.Sprintf("#%d @ %5.1fs", i, at)),
					t.Normal.Render(fmt.Sprintf("pos (%6.1f, %6.1f, %6.1f)  look (%6.1f, %6.1f, %6.1f)  fov %4.1f°",
						kf.Position.X, kf.Position.Y, kf.Position.Z,
						kf.Target.X, kf.Target.Y, kf.Target.Z, kf.FOV)),
					t.Subtle.Render(easing))
			}

			fmt.Println(t.Box.Render(lipgloss.JoinVertical(lipgloss.Left,
				t.BoxHeader.Render(built.Name()),
				t.Subtle.Render(fmt.Sprintf("total %.1fs", built.Duration())),
				"",
				lines)))
			return nil
		}),
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every configured sequence",
		RunE: withCLI(func(cli *CLI, _ *cobra.Command, _ []string) error {
			t := cli.Theme
			failed := 0
			for _, seq := range cli.Config.Cinematic.Sequences {
				if _, err := seq.Build(); err != nil {
					failed++
					fmt.Printf("%s %s  %s\n", t.StatusIcon(false), seq.Name, t.ErrorStyle.Render(err.Error()))
					continue
				}
				fmt.Printf("%s %s\n", t.StatusIcon(true), seq.Name)
			}
			if failed > 0 {
				return fmt.Errorf("%d invalid sequence(s)", failed)
			}
			return nil
		}),
	}

	cmd.AddCommand(listCmd, showCmd, validateCmd)
	return cmd
}
