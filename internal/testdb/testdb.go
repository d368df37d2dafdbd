// Package testdb spins up a throwaway Postgres in docker for integration
// tests. Tests using it skip unless INTEGRATION_TESTS=1 is set, so the
// default `go test ./...` run stays hermetic.
package testdb

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ricemill-backend/internal/database"
)

// Connect starts a Postgres container, connects GORM to it and runs the
// migrations. The container is removed when the test finishes.
func Connect(t *testing.T) *gorm.DB {
	t.Helper()

	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	name, port := startPostgresContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(name) })

	dsn := fmt.Sprintf("host=127.0.0.1 port=%s user=postgres password=testpw dbname=ricemill_test sslmode=disable", port)

	var db *gorm.DB
	var err error
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Some handlers and the audit writer go through the package-level DB.
	database.DB = db

	return db
}

func startPostgresContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("ricemill-test-pg-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "POSTGRES_PASSWORD=testpw",
		"-e", "POSTGRES_DB=ricemill_test",
		"-p", "127.0.0.1:0:5432",
		"postgres:16-alpine",
	)
	if err != nil {
		t.Fatalf("start postgres container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "5432/tcp")
	if err != nil {
		t.Fatalf("postgres docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "pg_isready", "-U", "postgres")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("postgres did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
