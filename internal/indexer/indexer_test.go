package indexer

import (
	"sort"
	"testing"
	"time"

	"estatery-api-io/api/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestDefinitions_NamedAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range Definitions() {
		name := indexName(def)
		require.NotEmpty(t, name, "every index needs an explicit name")
		assert.False(t, seen[name], "duplicate index name %s", name)
		seen[name] = true
	}

	for _, name := range []string{"user_email_unique", "user_username_unique", "listing_slug_unique"} {
		assert.True(t, seen[name], name)
	}
}

func TestNewDefaultManager_Collections(t *testing.T) {
	m := NewDefaultManager(nil, nil)

	assert.Equal(t, []string{common.UserCollectionName, common.ListingCollectionName}, m.collections())
	assert.Equal(t, DefaultOptions(), m.options)
}

func TestIndexName_Unnamed(t *testing.T) {
	assert.Equal(t, "", indexName(IndexDefinition{
		Collection: common.ListingCollectionName,
		Index:      mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}},
	}))
	assert.Equal(t, "by_name", indexName(IndexDefinition{
		Collection: common.ListingCollectionName,
		Index:      mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("by_name")},
	}))
}

func TestParseIndexStats(t *testing.T) {
	since := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	stat := parseIndexStats(bson.M{
		"name": "listing_slug_unique",
		"host": "mongo-0:27017",
		"accesses": bson.M{
			"ops":   int64(42),
			"since": primitive.NewDateTimeFromTime(since),
		},
		"building": true,
	})

	assert.Equal(t, "listing_slug_unique", stat.Name)
	assert.Equal(t, "mongo-0:27017", stat.Host)
	assert.Equal(t, int64(42), stat.Accesses)
	assert.True(t, stat.Since.Equal(since))
	assert.True(t, stat.Building)

	stat = parseIndexStats(bson.M{"name": "_id_", "accesses": bson.M{"ops": int32(7), "since": since}})
	assert.Equal(t, int64(7), stat.Accesses)
	assert.True(t, stat.Since.Equal(since))
	assert.False(t, stat.Building)
}

func TestMigrations_Ordered(t *testing.T) {
	migrations := Migrations()
	versions := make([]string, 0, len(migrations))
	for _, m := range migrations {
		require.NotNil(t, m.Up, m.Version)
		versions = append(versions, m.Version)
	}

	assert.True(t, sort.StringsAreSorted(versions))

	mm := NewMigrationManager(nil).AddMigration(migrations...)
	assert.Len(t, mm.migrations, len(migrations))
}
