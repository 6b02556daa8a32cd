package cli

import (
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	configfile "github.com/frederico-kluser/docchat/internal/adapters/driven/config/file"
	"github.com/frederico-kluser/docchat/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pipeline configuration",
	Long: `View and edit the pipeline configuration stored in
~/.docchat/config.toml. Missing files fall back to defaults.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	cmd.Print(string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return err
	}
	if err := store.Save(domain.DefaultConfig()); err != nil {
		return err
	}
	cmd.Println("Default configuration written.")
	return nil
}
