package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dollycam/dolly/internal/config"
	"github.com/dollycam/dolly/internal/quality"
)

type doctorCheck struct {
	name   string
	ok     bool
	detail string
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, storage, and probe sources",
		Long: `Doctor verifies that dolly can do its job on this host:

- the configuration file parses and every sequence validates
- the playback database opens and holds state
- the hardware probe sources are readable (falling back where not)`,
		RunE: withCLI(func(cli *CLI, _ *cobra.Command, _ []string) error {
			t := cli.Theme
			var checks []doctorCheck

			configFile, _ := config.GetConfigFile()
			if m := config.GetManager(); m != nil && m.GetConfigFile() != "" {
				configFile = m.GetConfigFile()
			}
			checks = append(checks, doctorCheck{
				name:   "config file",
				ok:     true,
				detail: configFile,
			})

			for _, seq := range cli.Config.Cinematic.Sequences {
				built, err := seq.Build()
				check := doctorCheck{name: fmt.Sprintf("sequence %q", seq.Name)}
				if err != nil {
					check.detail = err.Error()
				} else {
					check.ok = true
					check.detail = fmt.Sprintf("%d keyframes, %.1fs", built.Len(), built.Duration())
				}
				checks = append(checks, check)
			}

			last, err := cli.Store.LastSurvey(cli.Ctx())
			dbCheck := doctorCheck{name: "playback database", detail: cli.Config.Database.Path}
			if err != nil {
				dbCheck.detail = err.Error()
			} else {
				dbCheck.ok = true
				if last != nil {
					dbCheck.detail = fmt.Sprintf("%s (last survey: %s)", cli.Config.Database.Path, last.Tier)
				}
			}
			checks = append(checks, dbCheck)

			for _, src := range []struct {
				name string
				path string
			}{
				{"memory probe", "/proc/meminfo"},
				{"cpu probe", "/proc/cpuinfo"},
				{"input probe", "/proc/bus/input/devices"},
				{"gpu probe", "/sys/class/drm"},
			} {
				check := doctorCheck{name: src.name, detail: src.path}
				if _, statErr := os.Stat(src.path); statErr == nil {
					check.ok = true
				} else {
					check.detail = src.path + " unreadable, fallback values apply"
					// Fallbacks make probing non-fatal.
					check.ok = true
				}
				checks = append(checks, check)
			}

			caps := cli.Surveyor.Survey(cli.Ctx())
			tier := quality.Classify(caps, cli.Config.Quality.ResolvedThresholds())
			checks = append(checks, doctorCheck{
				name:   "classification",
				ok:     tier.Valid(),
				detail: fmt.Sprintf("tier %s from the live survey", tier),
			})

			allOK := true
			var lines string
			for _, check := range checks {
				if !check.ok {
					allOK = false
				}
				lines += fmt.Sprintf("%s %s  %s\n",
					t.StatusIcon(check.ok),
					t.Normal.Render(fmt.Sprintf("%-22s", check.name)),
					t.Subtle.Render(check.detail))
			}

			verdict := t.SuccessStyle.Render("all checks passed")
			if !allOK {
				verdict = t.ErrorStyle.Render("some checks failed")
			}

			fmt.Println(t.Box.Render(lipgloss.JoinVertical(lipgloss.Left,
				t.BoxHeader.Render("dolly doctor"), "", lines, verdict)))

			if !allOK {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		}),
	}
}
