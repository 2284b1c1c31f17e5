package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rowalls/uh-internal-project/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	configPath string
	envFile    string
	clearData  bool
)

var rootCmd = &cobra.Command{
	Use:   "uh-internal",
	Short: "University Housing internal tools",
	Long:  `Inventory, port map, helpdesk duties and permission-gated navigation for residential network staff.`,
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the configuration and print it with secrets masked",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(maskSecrets(*cfg))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// fromEnvironment reports whether the process runs in a container where the
// whole configuration comes from environment variables.
func fromEnvironment() bool {
	return os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true"
}

func loadConfig(path string) (*internal.Config, error) {
	// a missing env file is normal outside local development
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	var cfg *internal.Config
	if fromEnvironment() {
		cfg = internal.LoadConfigFromEnv()
	} else {
		var err error
		if cfg, err = readConfigFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return cfg, nil
}

// readConfigFile reads config.yml from dir. ENV_-prefixed variables override
// keys present in the file, e.g. ENV_DATABASE_SOURCE.
func readConfigFile(dir string) (*internal.Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

const masked = "********"

func maskSecrets(cfg internal.Config) internal.Config {
	for _, s := range []*string{
		&cfg.Database.Source,
		&cfg.PortmapDatabase.Source,
		&cfg.Cache.Password,
		&cfg.Directory.BindPassword,
		&cfg.Mail.ClientSecret,
		&cfg.Mail.RefreshToken,
		&cfg.Ticketing.APIKey,
		&cfg.RMS.APIKey,
		&cfg.Security.AccessTokenSecret,
		&cfg.Security.RefreshTokenSecret,
	} {
		if *s != "" {
			*s = masked
		}
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory holding config.yml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(checkConfigCmd)
}
