package brquery

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ssc-spc/bitsmcp/internal/brquery/configuration"
	"github.com/ssc-spc/bitsmcp/internal/brquery/metrics"
	"github.com/ssc-spc/bitsmcp/internal/brquery/repository"
	"github.com/ssc-spc/bitsmcp/internal/brquery/server"
	"github.com/ssc-spc/bitsmcp/internal/common"
	"github.com/ssc-spc/bitsmcp/internal/common/database"
	"github.com/ssc-spc/bitsmcp/internal/common/health"
)

type dbChecker struct {
	db *sql.DB
}

func (c *dbChecker) Check() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.db.PingContext(ctx)
}

// StartUp wires the repository, status cache, metrics and MCP server together
// and starts serving. It returns a stop function and a WaitGroup that reports
// done once the MCP server has stopped.
func StartUp(ctx context.Context, config configuration.BRQueryConfiguration) (func(), *sync.WaitGroup, error) {
	wg := &sync.WaitGroup{}
	wg.Add(1)

	db, err := database.OpenSqlServerDb(ctx, config.SqlServer)
	if err != nil {
		return nil, nil, err
	}

	goquDb := goqu.New("sqlserver", db)
	statuses := repository.NewStatusesCache(goquDb, config)
	brRepository := repository.NewSqlBRRepository(db, statuses, config)

	metrics.ExposeBRQueryMetrics(metrics.NewSqlDbMetricsProvider(db, config.SqlServer))

	startupComplete := health.NewStartupCompleteChecker()
	healthChecks := health.NewMultiChecker(startupComplete, &dbChecker{db: db})
	shutdownMetricServer := serveMetricsAndHealth(config.MetricsPort, healthChecks)

	mcpServer := server.NewBRQueryServer(brRepository)

	go func() {
		defer log.Println("Stopping server.")

		log.Infof("MCP server listening on %d", config.HttpPort)
		if err := mcpServer.Serve(config.HttpPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v", err)
		}

		wg.Done()
	}()
	startupComplete.MarkComplete()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mcpServer.Shutdown(shutdownCtx); err != nil {
			log.Errorf("failed to shut down MCP server: %v", err)
		}
		if err := db.Close(); err != nil {
			log.Errorf("failed to close db connection: %v", err)
		}
		shutdownMetricServer()
	}

	return stop, wg, nil
}

func serveMetricsAndHealth(port uint16, checker health.Checker) (shutdown func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	health.SetupHttpMux(mux, checker)
	return common.ServeHttp(port, mux)
}
