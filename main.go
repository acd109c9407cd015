package main

import (
	"context"
	"log"
	"os"

	"labhouse/cmd"
	"labhouse/internal/core/logger"
	"labhouse/internal/inventory"
	"labhouse/internal/operations"
	"labhouse/internal/routes"
	"labhouse/internal/service_desk"
	"labhouse/internal/stats"
	"labhouse/internal/storage"
	"labhouse/pkg/ident"
	"labhouse/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zlog := logger.NewLogger()
	defer zlog.Sync()

	security.Configure(os.Getenv("JWT_SECRET"))

	store, err := openStorage(zlog)
	if err != nil {
		zlog.Fatal("storage unavailable", zap.Error(err))
	}
	defer store.Close()

	idgen, err := ident.NewGenerator(1)
	if err != nil {
		zlog.Fatal("id generator", zap.Error(err))
	}

	inv, err := inventory.NewStore(store, zlog)
	if err != nil {
		zlog.Fatal("load inventory", zap.Error(err))
	}
	ledger, err := service_desk.NewLedger(store, idgen, zlog)
	if err != nil {
		zlog.Fatal("load service requests", zap.Error(err))
	}

	desk := service_desk.NewService(ledger, inv, idgen, zlog)
	ops := operations.NewService(inv, idgen, zlog)

	router := gin.Default()
	routes.RegisterUtilityRoutes(router)
	routes.RegisterProtectedRoutes(router, routes.Handlers{
		Inventory:   inventory.NewHandler(inv, idgen),
		ServiceDesk: service_desk.NewHandler(ledger, desk),
		Operations:  operations.NewHandler(ops),
		Stats:       stats.NewHandler(inv),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zlog.Info("listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

// openStorage picks the snapshot store: postgres when DATABASE_URL is
// set, otherwise an embedded bolt file.
func openStorage(zlog *zap.Logger) (storage.Store, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		db, err := storage.NewPostgresConnection(dbURL)
		if err != nil {
			return nil, err
		}
		zlog.Info("using postgres document store")
		return storage.NewPostgresStore(db), nil
	}

	path := os.Getenv("BOLT_PATH")
	if path == "" {
		path = "labhouse.db"
	}
	zlog.Info("using bolt document store", zap.String("path", path))
	return storage.NewBoltStore(path)
}
