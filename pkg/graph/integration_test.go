package graph

import (
	"context"
	"os"
	"testing"
	"time"

	driver "github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/suite"

	"github.com/context-maximiser/sample-fixture/pkg/catalog"
	"github.com/context-maximiser/sample-fixture/pkg/neo4j"
	"github.com/context-maximiser/sample-fixture/pkg/schema"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Neo4jSuite runs seed and verify against a live database.
type Neo4jSuite struct {
	suite.Suite
	client  *neo4j.Client
	ctx     context.Context
	cancel  context.CancelFunc
	catalog *catalog.Catalog
}

func TestNeo4jSuite(t *testing.T) {
	if os.Getenv("TEST_NEO4J_URI") == "" {
		t.Skip("set TEST_NEO4J_URI to run Neo4j integration tests")
	}
	suite.Run(t, new(Neo4jSuite))
}

func (s *Neo4jSuite) SetupSuite() {
	client, err := neo4j.NewClient(neo4j.Config{
		URI:      getEnv("TEST_NEO4J_URI", "bolt://localhost:7687"),
		Username: getEnv("TEST_NEO4J_USER", "neo4j"),
		Password: getEnv("TEST_NEO4J_PASS", "password123"),
		Database: getEnv("TEST_NEO4J_DB", "neo4j"),
	}, nil)
	if err != nil {
		s.T().Skipf("Cannot connect to Neo4j: %v (set TEST_NEO4J_URI to run integration tests)", err)
	}
	s.client = client
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 2*time.Minute)

	s.catalog, err = catalog.ScanFixture("github.com/context-maximiser/sample-fixture/integration", "v0.0.0-test")
	s.Require().NoError(err)
	s.Require().NoError(schema.NewManager(client, nil).CreateSchema(s.ctx))
}

func (s *Neo4jSuite) TearDownSuite() {
	if s.client == nil {
		return
	}
	_, err := s.client.ExecuteWrite(s.ctx, func(tx driver.ManagedTransaction) (any, error) {
		result, err := tx.Run(s.ctx,
			"MATCH (f:Fixture {module: $module}) OPTIONAL MATCH (f)-[:DECLARES]->(sym) DETACH DELETE f, sym",
			map[string]any{"module": s.catalog.Module})
		if err != nil {
			return nil, err
		}
		return result.Consume(s.ctx)
	})
	s.NoError(err)
	s.cancel()
	s.client.Close(context.Background())
}

func (s *Neo4jSuite) TestSeedIsIdempotent() {
	seeder := NewSeeder(s.client, nil)

	first, err := seeder.Seed(s.ctx, s.catalog)
	s.Require().NoError(err)
	second, err := seeder.Seed(s.ctx, s.catalog)
	s.Require().NoError(err)
	s.NotEqual(first, second)

	total, err := neo4j.NewQueryBuilder(s.client).CountFixtureSymbols(s.ctx, s.catalog.Module)
	s.Require().NoError(err)
	s.Equal(len(s.catalog.Symbols), total)
}

func (s *Neo4jSuite) TestDatabaseInfo() {
	info, err := s.client.GetDatabaseInfo(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(info["name"])
}
