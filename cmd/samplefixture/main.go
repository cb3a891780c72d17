package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/context-maximiser/sample-fixture/pkg/catalog"
	"github.com/context-maximiser/sample-fixture/pkg/config"
	"github.com/context-maximiser/sample-fixture/pkg/logging"
	"github.com/context-maximiser/sample-fixture/pkg/neo4j"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "samplefixture",
	Short: "Sample fixture for code intelligence tests",
	Long: `samplefixture runs the operations of the sample fixture package and
produces the reference data code intelligence tools are tested against:
a symbol catalog, a golden SCIP index, and Fixture nodes in Neo4j.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.Format)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults(viper.GetViper())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.samplefixture.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("neo4j-uri", "bolt://localhost:7687", "Neo4j connection URI")
	rootCmd.PersistentFlags().String("neo4j-user", "neo4j", "Neo4j username")
	rootCmd.PersistentFlags().String("neo4j-password", "password123", "Neo4j password")
	rootCmd.PersistentFlags().String("neo4j-database", "neo4j", "Neo4j database name")
	rootCmd.PersistentFlags().String("module", config.DefaultModule, "module path recorded in fixture symbols")
	rootCmd.PersistentFlags().String("fixture-version", "v1.0.0", "version recorded in fixture symbols")

	// Bind flags to viper
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("neo4j.uri", rootCmd.PersistentFlags().Lookup("neo4j-uri"))
	viper.BindPFlag("neo4j.username", rootCmd.PersistentFlags().Lookup("neo4j-user"))
	viper.BindPFlag("neo4j.password", rootCmd.PersistentFlags().Lookup("neo4j-password"))
	viper.BindPFlag("neo4j.database", rootCmd.PersistentFlags().Lookup("neo4j-database"))
	viper.BindPFlag("fixture.module", rootCmd.PersistentFlags().Lookup("module"))
	viper.BindPFlag("fixture.version", rootCmd.PersistentFlags().Lookup("fixture-version"))

	rootCmd.Version = Version

	// Fixture operations
	rootCmd.AddCommand(greetCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(doubleCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(runCmd)

	// Reference data
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(scipCmd)

	// Graph
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(verifyCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".samplefixture")
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	Execute()
}

// scanFixture scans the embedded fixture with the configured module and version.
func scanFixture() (*catalog.Catalog, error) {
	c, err := catalog.ScanFixture(cfg.Fixture.Module, cfg.Fixture.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to scan fixture: %w", err)
	}
	logger.Debug("Scanned fixture", zap.Int("symbols", len(c.Symbols)), zap.Strings("files", c.Files()))
	return c, nil
}

// createNeo4jClient creates a new Neo4j client using configuration
func createNeo4jClient() (*neo4j.Client, error) {
	client, err := neo4j.NewClient(neo4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j client: %w", err)
	}
	return client, nil
}

func closeClient(client *neo4j.Client) {
	if err := client.Close(context.Background()); err != nil {
		logger.Warn("Failed to close Neo4j client", zap.Error(err))
	}
}
