package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"go.uber.org/zap"

	"github.com/gizigo/product-console/internal/config"
	"github.com/gizigo/product-console/internal/pkg/logger"
)

// Applies the DDL in migrations/001_initial_schema.sql to the Cloud Spanner
// database backing STORE_BACKEND=spanner. Firestore needs no schema.
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.SpannerDatabase == "" {
		zlog.Fatal("SPANNER_DATABASE is required (e.g. projects/test-project/instances/emulator-instance/databases/test-db)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ddlPath := filepath.Join("migrations", "001_initial_schema.sql")
	stmts, err := readDDLStatements(ddlPath)
	if err != nil {
		zlog.Fatal("read DDL", zap.String("path", ddlPath), zap.Error(err))
	}
	if len(stmts) == 0 {
		zlog.Fatal("no DDL statements found", zap.String("path", ddlPath))
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		zlog.Fatal("database admin client", zap.Error(err))
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   cfg.SpannerDatabase,
		Statements: stmts,
	})
	if err != nil {
		zlog.Fatal("UpdateDatabaseDdl", zap.Error(err))
	}
	if err := op.Wait(ctx); err != nil {
		zlog.Fatal("UpdateDatabaseDdl wait", zap.Error(err))
	}

	zlog.Info("applied DDL", zap.Int("statements", len(stmts)), zap.String("database", cfg.SpannerDatabase))
}

func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitDDL(string(b)), nil
}

// splitDDL breaks a script on ';' and drops "--" comment lines, which the
// admin API rejects.
func splitDDL(sql string) []string {
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	parts := strings.Split(strings.Join(kept, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
