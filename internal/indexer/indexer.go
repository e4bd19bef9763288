package indexer

import (
	"context"
	"fmt"
	"time"

	"estatery-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.options.Timeout)
}

// Create builds every registered index.
func (m *Manager) Create(ctx context.Context) (*Result, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	result := &Result{
		Failures: []FailureDetail{},
	}

	for _, def := range m.indexes {
		name := indexName(def)
		log := util.Log.WithField("collection", def.Collection).WithField("index", name)

		if m.options.SkipIfExists {
			exists, err := m.indexExists(ctx, def.Collection, name)
			if err == nil && exists {
				log.Debug("index already exists, skipping")
				result.SuccessCount++
				continue
			}
		}

		collection := m.db.Collection(def.Collection)
		if _, err := collection.Indexes().CreateOne(ctx, def.Index); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				log.Warn("cannot create unique index due to duplicate data")
			} else {
				log.WithError(err).Error("failed to create index")
			}

			result.FailedCount++
			result.Failures = append(result.Failures, FailureDetail{
				Collection: def.Collection,
				IndexName:  name,
				Error:      err,
			})

			if !m.options.ContinueOnError {
				result.Duration = time.Since(start)
				return result, err
			}
			continue
		}

		log.Info("created index")
		result.SuccessCount++
	}

	result.Duration = time.Since(start)

	if result.FailedCount > 0 {
		return result, fmt.Errorf("%d indexes failed to create", result.FailedCount)
	}

	return result, nil
}

// Drop removes all indexes of the given collections, or of every managed collection.
func (m *Manager) Drop(ctx context.Context, collections ...string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	targetCollections := collections
	if len(targetCollections) == 0 {
		targetCollections = m.collections()
	}

	for _, collName := range targetCollections {
		collection := m.db.Collection(collName)
		if _, err := collection.Indexes().DropAll(ctx); err != nil {
			if !m.options.ContinueOnError {
				return fmt.Errorf("failed to drop indexes for %s: %w", collName, err)
			}
			util.Log.WithField("collection", collName).WithError(err).Error("failed to drop indexes")
		} else {
			util.Log.WithField("collection", collName).Info("dropped all indexes")
		}
	}

	return nil
}

func (m *Manager) List(ctx context.Context, collection string) ([]bson.M, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	coll := m.db.Collection(collection)
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var indexes []bson.M
	if err = cursor.All(ctx, &indexes); err != nil {
		return nil, err
	}

	return indexes, nil
}

func (m *Manager) indexExists(ctx context.Context, collection string, name string) (bool, error) {
	if name == "" {
		return false, nil
	}

	indexes, err := m.List(ctx, collection)
	if err != nil {
		return false, err
	}

	for _, idx := range indexes {
		if n, ok := idx["name"].(string); ok && n == name {
			return true, nil
		}
	}

	return false, nil
}

// collections returns the managed collection names in registration order.
func (m *Manager) collections() []string {
	seen := make(map[string]bool)
	var names []string
	for _, def := range m.indexes {
		if !seen[def.Collection] {
			seen[def.Collection] = true
			names = append(names, def.Collection)
		}
	}
	return names
}

func indexName(def IndexDefinition) string {
	if def.Index.Options != nil && def.Index.Options.Name != nil {
		return *def.Index.Options.Name
	}
	return ""
}
