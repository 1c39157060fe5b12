package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"backend/config"
	"backend/internal/api"
	"backend/internal/engine"
	"backend/internal/models"
	"backend/internal/platform/logger"
	"backend/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	// 1. Initialize Echo (starts instantly)
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	// 2. Wire the engine: persisted view state, coordinator, producer.
	store := state.NewStore(cfg.State.Path, models.Columns(), lg)
	coord := engine.NewCoordinator(store, lg)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	producer := engine.NewProducer(models.DefaultTemplate(), rng, lg)

	h := api.NewHandler(coord, producer, cfg.Data.GenerateTotal, cfg.Data.ChunkSize, lg)
	h.RegisterRoutes(e)

	// 3. Generate the initial batch in the background. The API is live
	// immediately and answers 503 for product reads until the batch lands.
	go func() {
		t0 := time.Now()
		batch, err := producer.Initial(cfg.Data.InitialRows)
		if err != nil {
			lg.Fatal("initial batch failed", "err", err)
		}
		coord.Append(batch)
		lg.Info("initial batch ready", "rows", len(batch), "took", time.Since(t0))
	}()

	// 4. Start server
	lg.Info("server starting", "address", cfg.Server.Address)
	e.Logger.Fatal(e.Start(cfg.Server.Address))
}
