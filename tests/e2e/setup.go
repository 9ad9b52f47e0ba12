//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"

	"universe-api/cmd/bootstrap"
	"universe-api/cmd/bootstrap/components"
	"universe-api/internal/infra/db"
	"universe-api/internal/pkg/config"
	"universe-api/internal/pkg/password"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type containerInfo struct {
	Host string
	Port nat.Port
}

func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *gin.Engine, config.Config) {
	gin.SetMode(gin.TestMode)
	postgresInfo := startPostgres(t)

	pool, dbConfig := prepareDatabase(t, postgresInfo)
	redisAddr := startMiniredis(t)

	router, cfg, app := buildApp(pool, dbConfig, redisAddr)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return pool, router, cfg
}

func startPostgres(t *testing.T) containerInfo {
	startPostgreSQLContainerOnce(t)

	info, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "failed to resolve postgres container address")
	return info
}

func startMiniredis(t *testing.T) string {
	mr := miniredis.RunT(t)
	return mr.Addr()
}

// prepareDatabase creates a throwaway database per test process so suites
// can run in parallel against the shared container.
func prepareDatabase(t *testing.T, postgresInfo containerInfo) (*pgxpool.Pool, config.DBConfig) {
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("cleanup connection failed", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pool, err := db.NewPool(ctx, dbConfig.BuildDSN(), logger)
	require.NoError(t, err, "database connection failed")

	require.NoError(t, db.RunMigrations(ctx, pool, logger), "migrations failed")

	return pool, dbConfig
}

func buildApp(pool *pgxpool.Pool, dbConfig config.DBConfig, redisAddr string) (*gin.Engine, config.Config, *fx.App) {
	var router *gin.Engine
	var cfg config.Config

	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig
	testConfig.Redis.Addr = redisAddr

	app := fx.New(
		fx.Provide(
			func() config.Config { return testConfig },
			func(c config.Config) config.QuotaConfig { return c.Quota },
			func() *pgxpool.Pool { return pool },
			func() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) },
			func() *gin.Engine { return gin.New() },
			func(c config.Config) (*redis.Client, error) {
				client := redis.NewClient(&redis.Options{Addr: c.Redis.Addr})
				return client, client.Ping(context.Background()).Err()
			},
		),
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router, &cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}

	return router, cfg, app
}

func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Name:   "postgres-e2e",
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start postgres container")

		t.Cleanup(func() {
			if postgresTestContainer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := postgresTestContainer.Terminate(ctx); err != nil {
					slog.Warn("failed to terminate postgres container", "error", err.Error())
				}
			}
		})
	})
}

func getContainerHostPort(c testcontainers.Container, port string) (containerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return containerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return containerInfo{}, err
	}
	return containerInfo{Host: host, Port: mappedPort}, nil
}

// SharedSuite wires one application per suite. Each subtest resets the
// mutable tables and reseeds the reference user.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	db, router, cfg := setupE2EEnvironment(s.T())
	s.DB = db
	s.Router = router
	s.Config = cfg
}

func (s *SharedSuite) SetupSubTest() {
	s.ResetDB()
}

func (s *SharedSuite) ResetDB() {
	ctx := context.Background()
	_, err := s.DB.Exec(ctx, `
		TRUNCATE resource_settings, reports, campaigns, universe_resources, users
		RESTART IDENTITY CASCADE
	`)
	require.NoError(s.T(), err, "failed to reset database state")
	s.SeedUser("owner@example.com", "s3cretpass")
}

// SeedUser inserts an active user and returns its id.
func (s *SharedSuite) SeedUser(email, plain string) int64 {
	hash, err := password.Hash(plain)
	require.NoError(s.T(), err)

	var id int64
	err = s.DB.QueryRow(context.Background(),
		`INSERT INTO users (email, password_hash, is_active, default_project_id)
		 VALUES ($1, $2, TRUE, 1) RETURNING id`,
		email, hash,
	).Scan(&id)
	require.NoError(s.T(), err, "failed to seed user")
	return id
}

func (s *SharedSuite) SeedCampaign(ownerID int64, status string) int64 {
	var id int64
	err := s.DB.QueryRow(context.Background(),
		`INSERT INTO campaigns (owner_id, project_id, name, status)
		 VALUES ($1, 1, 'June newsletter', $2) RETURNING id`,
		ownerID, status,
	).Scan(&id)
	require.NoError(s.T(), err, "failed to seed campaign")
	return id
}

// Login drives the real endpoint and returns the issued token.
func (s *SharedSuite) Login(email, plain string) string {
	w := s.DoJSON(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": plain,
	}, "")
	require.Equal(s.T(), http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	token, _ := body.Data["token"].(string)
	require.NotEmpty(s.T(), token, "no token in login response")
	return token
}

func (s *SharedSuite) DoJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (map[string]any, []any) {
	t.Helper()

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
		Errors  []any          `json:"errors"`
		Message string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data, body.Errors
}
