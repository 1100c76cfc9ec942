package main

import (
	"context"
	"fmt"

	"driveshare/config"
	"driveshare/pkg/logger"
	"driveshare/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// CASCADE also clears orders, reviews and favorites that reference
	// users and cars.
	_, err = pg.GetPool().Exec(context.Background(), "TRUNCATE TABLE users, cars, orders, reviews, favorites CASCADE")
	if err != nil {
		log.Error(fmt.Sprintf("failed to truncate tables: %v", err))
	} else {
		log.Info("successfully truncated users, cars, orders, reviews and favorites tables")
	}
}
