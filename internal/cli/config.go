package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dollycam/dolly/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the dolly configuration",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the path of the active configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			if m := config.GetManager(); m != nil && m.GetConfigFile() != "" {
				fmt.Println(m.GetConfigFile())
				return nil
			}
			path, err := config.GetConfigFile()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Regenerate the JSON schema for the configuration file",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.GenerateSchemaFile(); err != nil {
				return err
			}
			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s/config.schema.json\n", dir)
			return nil
		},
	}

	cmd.AddCommand(pathCmd, schemaCmd)
	return cmd
}
