package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/context-maximiser/sample-fixture/pkg/graph"
	"github.com/context-maximiser/sample-fixture/pkg/models"
	"github.com/context-maximiser/sample-fixture/pkg/schema"
)

// statusCmd checks the connection to Neo4j
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check Neo4j connection status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := createNeo4jClient()
		if err != nil {
			return err
		}
		defer closeClient(client)

		info, err := client.GetDatabaseInfo(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Neo4j Connection Status: ✓ Connected")
		fmt.Fprintf(out, "Database: %s\n", cfg.Neo4j.Database)
		fmt.Fprintf(out, "URI: %s\n", cfg.Neo4j.URI)
		for _, key := range []string{"name", "versions", "edition"} {
			if v, ok := info[key]; ok {
				fmt.Fprintf(out, "%s: %v\n", key, v)
			}
		}
		return nil
	},
}

// schemaCmd manages the fixture graph schema
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the fixture graph schema",
}

var schemaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create fixture constraints and indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSchema(cmd.Context(), func(ctx context.Context, m *schema.Manager) error {
			if err := m.CreateSchema(ctx); err != nil {
				return fmt.Errorf("failed to create schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Schema created successfully")
			return nil
		})
	},
}

var schemaDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop fixture constraints and indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSchema(cmd.Context(), func(ctx context.Context, m *schema.Manager) error {
			if err := m.DropSchema(ctx); err != nil {
				return fmt.Errorf("failed to drop schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Schema dropped successfully")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the fixture catalog into Neo4j",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := scanFixture()
		if err != nil {
			return err
		}

		client, err := createNeo4jClient()
		if err != nil {
			return err
		}
		defer closeClient(client)

		ctx := cmd.Context()
		if err := schema.NewManager(client, logger).CreateSchema(ctx); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}

		runID, err := graph.NewSeeder(client, logger).Seed(ctx, c)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Seeded %d symbols for %s (run %s)\n", len(c.Symbols), c.Module, runID)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that an indexed code graph contains the fixture symbols",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		withFields, _ := cmd.Flags().GetBool("fields")

		c, err := scanFixture()
		if err != nil {
			return err
		}

		client, err := createNeo4jClient()
		if err != nil {
			return err
		}
		defer closeClient(client)

		v := graph.NewVerifier(client, logger)
		if withFields {
			v.Kinds = append(append([]models.SymbolKind{}, graph.DefaultKinds...), models.FieldSymbol)
		}

		report, err := v.Verify(cmd.Context(), c)
		if report != nil {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d of %d symbols\n", len(report.Found), len(report.Found)+len(report.Missing))
			for _, name := range report.Missing {
				fmt.Fprintf(out, "  missing: %s\n", name)
			}
		}
		if errors.Is(err, graph.ErrMissingSymbols) {
			return fmt.Errorf("verification failed: %w", err)
		}
		return err
	},
}

func init() {
	schemaCmd.AddCommand(schemaCreateCmd)
	schemaCmd.AddCommand(schemaDropCmd)

	verifyCmd.Flags().Bool("fields", false, "also check struct fields")
}

func withSchema(ctx context.Context, fn func(context.Context, *schema.Manager) error) error {
	client, err := createNeo4jClient()
	if err != nil {
		return err
	}
	defer closeClient(client)

	return fn(ctx, schema.NewManager(client, logger))
}
