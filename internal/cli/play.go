package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dollycam/dolly/internal/cli/model"
	"github.com/dollycam/dolly/internal/director"
)

func newPlayCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "play [sequence]",
		Short: "Play a camera sequence in the terminal",
		Long: `Play runs the named sequence (or the configured default) through the
keyframe sequencer, rendering the camera pose and progress in a TUI.

On first play the completion is recorded; subsequent plays stay in orbit
mode unless --force or the replay command is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: withCLI(func(cli *CLI, _ *cobra.Command, args []string) error {
			seqCfg, err := cli.defaultSequence(args)
			if err != nil {
				return err
			}
			seq, err := seqCfg.Build()
			if err != nil {
				return fmt.Errorf("sequence %q is invalid: %w", seqCfg.Name, err)
			}

			rig := &model.TerminalRig{}
			dir := director.New(rig, cli.Store)

			if force {
				dir.Replay(cli.Ctx(), seq)
			} else {
				if err := dir.Start(cli.Ctx(), seq); err != nil {
					return err
				}
				if dir.Mode() != director.ModeCinematic {
					fmt.Printf("%s has already played; use --force or `dolly replay` to watch it again\n", seq.Name())
					return nil
				}
			}

			player := model.NewPlayerModel(cli.Ctx(), cli.Theme, dir, rig, seq, cli.Config.Cinematic.TickRate)
			_, err = tea.NewProgram(player).Run()
			return err
		}),
	}

	cmd.Flags().BoolVar(&force, "force", false, "Play even if the sequence was played before")
	return cmd
}

func newReplayCmd() *cobra.Command {
	var clearOnly bool

	cmd := &cobra.Command{
		Use:   "replay [sequence]",
		Short: "Replay a sequence regardless of its played flag",
		Args:  cobra.MaximumNArgs(1),
		RunE: withCLI(func(cli *CLI, _ *cobra.Command, args []string) error {
			seqCfg, err := cli.defaultSequence(args)
			if err != nil {
				return err
			}

			if clearOnly {
				if err := cli.Store.ClearIntroPlayed(cli.Ctx(), seqCfg.Name); err != nil {
					return fmt.Errorf("failed to clear played flag: %w", err)
				}
				fmt.Printf("cleared played flag for %q\n", seqCfg.Name)
				return nil
			}

			seq, err := seqCfg.Build()
			if err != nil {
				return fmt.Errorf("sequence %q is invalid: %w", seqCfg.Name, err)
			}

			rig := &model.TerminalRig{}
			dir := director.New(rig, cli.Store)
			dir.Replay(cli.Ctx(), seq)

			player := model.NewPlayerModel(cli.Ctx(), cli.Theme, dir, rig, seq, cli.Config.Cinematic.TickRate)
			_, err = tea.NewProgram(player).Run()
			return err
		}),
	}

	cmd.Flags().BoolVar(&clearOnly, "clear", false, "Only clear the played flag instead of playing")
	return cmd
}
