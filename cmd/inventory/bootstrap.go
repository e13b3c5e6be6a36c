package main

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/inventory/app/repositories"
	"github.com/shashiranjanraj/inventory/app/services"
	"github.com/shashiranjanraj/inventory/config"
	"github.com/shashiranjanraj/inventory/pkg/database"
	"github.com/shashiranjanraj/inventory/pkg/lock"
	"github.com/shashiranjanraj/inventory/pkg/logger"
	"github.com/shashiranjanraj/inventory/pkg/lookup"
	"github.com/shashiranjanraj/inventory/pkg/storage"
)

// bootOptions tweak what boot wires.
type bootOptions struct {
	noLookup bool
}

// runtime is everything a command needs, built from configuration.
type runtime struct {
	repo    *repositories.ProductRepository
	service *services.InventoryService
	closers []func() error
}

// boot opens the store, creates the products table when missing and wires
// the service with its lookup client, export disk and lock.
func boot(ctx context.Context, opts bootOptions) (*runtime, error) {
	db, err := database.Open(database.FromEnv())
	if err != nil {
		return nil, err
	}
	rt := &runtime{closers: []func() error{func() error { return database.Close(db) }}}

	rt.repo = repositories.NewProductRepository(db)
	if err := rt.repo.Initialize(ctx); err != nil {
		rt.close()
		return nil, err
	}

	var names services.NameLookup
	if config.LookupEnabled() && !opts.noLookup {
		client := lookup.NewClient(lookup.Config{
			URLTemplate:   config.LookupURL(),
			Timeout:       config.LookupTimeout(),
			MaxConcurrent: config.LookupConcurrency(),
		})
		rt.closers = append(rt.closers, client.Close)
		names = client
	}

	disk, err := storage.Open(ctx, config.ExportDisk())
	if err != nil {
		rt.close()
		return nil, err
	}

	locker, err := openLocker(ctx, rt)
	if err != nil {
		rt.close()
		return nil, err
	}

	rt.service = services.NewInventoryService(rt.repo, names, disk, locker, services.Options{
		ExportPath: config.ExportPath(),
	})
	return rt, nil
}

func openLocker(ctx context.Context, rt *runtime) (lock.Locker, error) {
	if config.LockDriver() != "redis" {
		return lock.NewMemory(), nil
	}
	r, err := lock.NewRedis(ctx, lock.RedisOptions{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	rt.closers = append(rt.closers, r.Close)
	return r, nil
}

func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			logger.Warn("shutdown: close failed", "error", err)
		}
	}
	rt.closers = nil
}
