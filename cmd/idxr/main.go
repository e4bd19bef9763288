package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"estatery-api-io/api/internal/config"
	"estatery-api-io/api/internal/indexer"
	"estatery-api-io/api/pkg/util"
)

func main() {
	var (
		action      = flag.String("action", "create", "Action: create, drop, list, stats, migrate, rollback, status")
		uri         = flag.String("uri", "", "MongoDB URI (defaults to env DATABASE_URL)")
		dbName      = flag.String("db", "", "Database name (defaults to env DB_NAME)")
		collection  = flag.String("collection", "", "Collection name (for list/stats)")
		target      = flag.String("target", "", "Target version (for rollback)")
		timeout     = flag.Duration("timeout", 60*time.Second, "Operation timeout")
		continueErr = flag.Bool("continue-on-error", true, "Continue on error")
		skipExists  = flag.Bool("skip-if-exists", true, "Skip existing indexes")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format")
	)
	flag.Parse()

	cfg := config.Load()
	util.InitLogger(cfg.LogLevel)

	mongoURI := *uri
	if mongoURI == "" {
		mongoURI = cfg.DatabaseURL
	}

	database := *dbName
	if database == "" {
		database = cfg.DatabaseName
	}

	client, err := util.ConnectDB(context.Background(), mongoURI)
	if err != nil {
		util.Log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			util.Log.WithError(err).Error("failed to disconnect")
		}
	}()

	db := client.Database(database)

	manager := indexer.NewDefaultManager(db, &indexer.Options{
		Timeout:         *timeout,
		ContinueOnError: *continueErr,
		SkipIfExists:    *skipExists,
	})
	migrations := indexer.NewMigrationManager(db).AddMigration(indexer.Migrations()...)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *action {
	case "create":
		if !*jsonOutput {
			fmt.Printf("Creating indexes in database: %s\n", database)
		}

		result, err := manager.Create(ctx)
		if *jsonOutput {
			outputJSON(map[string]any{
				"success": err == nil,
				"result":  result,
				"error":   errorString(err),
			})
			return
		}

		if err != nil {
			util.Log.WithError(err).Warn("index creation completed with errors")
		}
		fmt.Printf("\nResults:\n")
		fmt.Printf("  Success: %d\n", result.SuccessCount)
		fmt.Printf("  Failed: %d\n", result.FailedCount)
		fmt.Printf("  Duration: %v\n", result.Duration)

		if len(result.Failures) > 0 {
			fmt.Printf("\nFailures:\n")
			for _, f := range result.Failures {
				fmt.Printf("  - %s.%s: %v\n", f.Collection, f.IndexName, f.Error)
			}
		}

	case "drop":
		collections := flag.Args()
		if !*jsonOutput {
			fmt.Printf("Dropping indexes in database: %s\n", database)
		}

		err := manager.Drop(ctx, collections...)
		if *jsonOutput {
			outputJSON(map[string]any{
				"success": err == nil,
				"error":   errorString(err),
			})
			return
		}
		if err != nil {
			util.Log.WithError(err).Fatal("failed to drop indexes")
		}
		fmt.Println("Indexes dropped successfully")

	case "list":
		if *collection == "" {
			util.Log.Fatal("collection name required for list action (-collection flag)")
		}

		indexes, err := manager.List(ctx, *collection)
		if err != nil {
			util.Log.WithError(err).Fatal("failed to list indexes")
		}

		if *jsonOutput {
			outputJSON(indexes)
			return
		}

		fmt.Printf("Indexes for collection %s:\n", *collection)
		for _, idx := range indexes {
			if name, ok := idx["name"].(string); ok {
				fmt.Printf("  - %s\n", name)
				if key, ok := idx["key"]; ok {
					fmt.Printf("    Keys: %v\n", key)
				}
				if unique, ok := idx["unique"].(bool); ok && unique {
					fmt.Printf("    Unique: true\n")
				}
			}
		}

	case "stats":
		stats := map[string][]indexer.IndexStats{}
		if *collection == "" {
			stats, err = manager.StatsAll(ctx)
		} else {
			stats[*collection], err = manager.Stats(ctx, *collection)
		}
		if err != nil {
			util.Log.WithError(err).Fatal("failed to get stats")
		}

		if *jsonOutput {
			outputJSON(stats)
			return
		}

		for coll, collStats := range stats {
			fmt.Printf("\n=== %s ===\n", coll)
			for _, stat := range collStats {
				fmt.Printf("  %s:\n", stat.Name)
				fmt.Printf("    Accesses: %d\n", stat.Accesses)
				fmt.Printf("    Since: %v\n", stat.Since)
				if stat.Building {
					fmt.Printf("    Status: BUILDING\n")
				}
			}
		}

	case "migrate":
		if err := migrations.Run(ctx); err != nil {
			util.Log.WithError(err).Fatal("migration failed")
		}
		fmt.Println("Migrations applied successfully")

	case "rollback":
		if *target == "" {
			util.Log.Fatal("target version required for rollback (-target flag)")
		}
		if err := migrations.Rollback(ctx, *target); err != nil {
			util.Log.WithError(err).Fatal("rollback failed")
		}
		fmt.Printf("Rolled back to %s\n", *target)

	case "status":
		statuses, err := migrations.Status(ctx)
		if err != nil {
			util.Log.WithError(err).Fatal("failed to read migration status")
		}

		if *jsonOutput {
			outputJSON(statuses)
			return
		}

		for _, s := range statuses {
			state := "ok"
			if !s.Success {
				state = "FAILED"
			}
			fmt.Printf("  %s  %s  %s\n", s.Version, s.AppliedAt.Format(time.RFC3339), state)
		}

	default:
		fmt.Printf("Unknown action: %s\n", *action)
		fmt.Println("Available actions: create, drop, list, stats, migrate, rollback, status")
		os.Exit(1)
	}
}

func outputJSON(data any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		util.Log.WithError(err).Fatal("failed to encode JSON")
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
