package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/plugview/internal/cli/styles"
	"github.com/bnema/plugview/internal/infrastructure/config"
)

var configSchemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Show where the config file lives, print the effective configuration or its JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of config.toml. With --write the schema is stored
next to the config file for editors that support schema validation.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVarP(&configSchemaWrite, "write", "w", false, "write the schema file instead of printing it")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	configFile := app.Manager.GetConfigFile()

	_, statErr := os.Stat(configFile)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderConfigInfo(configFile, statErr == nil))
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)

	var buf bytes.Buffer
	if err := config.Encode(app.Config, &buf); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderError(err))
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderTOML(buf.String()))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(app.Theme)

	if configSchemaWrite {
		path, err := config.GenerateSchemaFile()
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderError(err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderSchemaWritten(path))
		return nil
	}

	schema, err := config.Schema()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(schema, '\n'))
	return err
}
