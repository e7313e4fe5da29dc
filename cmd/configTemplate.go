package cmd

import (
	"fmt"
	"os"

	"github.com/0chain/s3mgrt/model"
	"github.com/go-yaml/yaml"
	"github.com/spf13/cobra"
)

var overwriteConfig bool

func init() {
	rootCmd.AddCommand(initConfigCmd)
	initConfigCmd.Flags().BoolVar(&overwriteConfig, "force", false, "overwrite an existing config file")
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a config file template",
	Long:  `Write a config file describing the source and destination endpoints. Edit it before running migrate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := inConfigDir(cfgFile)
		if err := writeConfigTemplate(path, overwriteConfig); err != nil {
			return err
		}
		fmt.Println("Config template written to", path)
		return nil
	},
}

func configTemplate() model.AppConfig {
	return model.AppConfig{
		Source: model.EndpointConfig{
			Provider:  model.ProviderMinio,
			Endpoint:  "localhost:9000",
			AccessKey: "SOURCE_ACCESS_KEY",
			SecretKey: "SOURCE_SECRET_KEY",
			Bucket:    "source-bucket",
			Secure:    true,
		},
		Destination: model.EndpointConfig{
			Provider:  model.ProviderMinio,
			Endpoint:  "localhost:9000",
			AccessKey: "DESTINATION_ACCESS_KEY",
			SecretKey: "DESTINATION_SECRET_KEY",
			Bucket:    "destination-bucket",
			Secure:    true,
		},
	}
}

func writeConfigTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %v already exists, pass --force to overwrite it", path)
		}
	}

	out, err := yaml.Marshal(configTemplate())
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0600)
}
