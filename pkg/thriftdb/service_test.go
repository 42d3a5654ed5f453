package thriftdb_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb/thriftdbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBucket     = "test_bucket"
	testCollection = "cars"
	carSchema      = `{
		"__class__": "StructSchema",
		"make":  {"__class__": "AttributeDescriptor", "thrift_index": 1, "datatype": {"__class__": "StringType"}},
		"model": {"__class__": "AttributeDescriptor", "thrift_index": 2, "datatype": {"__class__": "StringType"}},
		"year":  {"__class__": "AttributeDescriptor", "thrift_index": 3, "datatype": {"__class__": "IntegerType"}}
	}`
)

type car struct {
	ID    string `json:"_id,omitempty"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

func fakeCars(t *testing.T, n int) []car {
	t.Helper()

	faker := gofakeit.New(42)
	cars := make([]car, 0, n)

	for i := range n {
		info := faker.Car()
		cars = append(cars, car{
			ID:    thriftdb.IntID(int64(i + 1)).String(),
			Make:  info.Brand,
			Model: info.Model,
			Year:  info.Year,
		})
	}

	return cars
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return string(data)
}

func newServiceClient(t *testing.T) *thriftdb.Client {
	t.Helper()

	server := thriftdbtest.NewServer(thriftdbtest.WithBasicAuth("yourusername", "yourpassword"))
	t.Cleanup(server.Close)

	client, err := thriftdb.New(&thriftdb.Config{
		BaseURL:     server.URL(),
		Credentials: thriftdb.Credentials{Username: "yourusername", Password: "yourpassword"},
	})
	require.NoError(t, err)

	return client
}

func statusOf(t *testing.T) func(*thriftdb.Response, error) int {
	t.Helper()

	return func(resp *thriftdb.Response, err error) int {
		t.Helper()
		require.NoError(t, err)

		return resp.StatusCode
	}
}

func TestService_Buckets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create then create again conflicts", func(t *testing.T) {
		t.Parallel()

		db := newServiceClient(t)
		st := statusOf(t)
		assert.Equal(t, http.StatusCreated, st(db.MakeBucket(ctx, testBucket)))
		assert.Equal(t, http.StatusConflict, st(db.MakeBucket(ctx, testBucket)))
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		db := newServiceClient(t)
		st := statusOf(t)
		assert.Equal(t, http.StatusNotFound, st(db.DeleteBucket(ctx, testBucket)))
		assert.Equal(t, http.StatusCreated, st(db.MakeBucket(ctx, testBucket)))
		assert.Equal(t, http.StatusOK, st(db.DeleteBucket(ctx, testBucket)))
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		db := newServiceClient(t)
		st := statusOf(t)
		assert.Equal(t, http.StatusNotFound, st(db.GetBucket(ctx, testBucket)))
		assert.Equal(t, http.StatusCreated, st(db.MakeBucket(ctx, testBucket)))
		assert.Equal(t, http.StatusOK, st(db.GetBucket(ctx, testBucket)))
	})

	t.Run("wrong credentials", func(t *testing.T) {
		t.Parallel()

		server := thriftdbtest.NewServer(thriftdbtest.WithBasicAuth("yourusername", "yourpassword"))
		defer server.Close()

		db, err := thriftdb.New(&thriftdb.Config{BaseURL: server.URL()})
		require.NoError(t, err)

		resp, err := db.MakeBucket(ctx, testBucket)
		require.NoError(t, err)
		assert.True(t, thriftdb.IsUnauthorized(resp.Err()))
	})
}

func TestService_Collections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	setup := func(t *testing.T) *thriftdb.Client {
		t.Helper()

		db := newServiceClient(t)
		st := statusOf(t)
		require.Equal(t, http.StatusCreated, st(db.MakeBucket(ctx, testBucket)))

		return db
	}

	t.Run("create and update", func(t *testing.T) {
		t.Parallel()

		db := setup(t)
		st := statusOf(t)
		assert.Equal(t, http.StatusCreated, st(db.MakeCollection(ctx, testBucket, testCollection, carSchema)))
		assert.Equal(t, http.StatusOK, st(db.MakeCollection(ctx, testBucket, testCollection, carSchema)))
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		db := setup(t)
		st := statusOf(t)
		assert.Equal(t, http.StatusNotFound, st(db.GetCollection(ctx, testBucket, testCollection)))
		st(db.MakeCollection(ctx, testBucket, testCollection, carSchema))
		assert.Equal(t, http.StatusOK, st(db.GetCollection(ctx, testBucket, testCollection)))
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		db := setup(t)
		st := statusOf(t)
		assert.Equal(t, http.StatusNotFound, st(db.DeleteCollection(ctx, testBucket, testCollection)))
		st(db.MakeCollection(ctx, testBucket, testCollection, carSchema))
		assert.Equal(t, http.StatusOK, st(db.DeleteCollection(ctx, testBucket, testCollection)))
	})

	t.Run("reindex", func(t *testing.T) {
		t.Parallel()

		db := setup(t)
		st := statusOf(t)
		assert.Equal(t, http.StatusNotFound, st(db.ReindexCollection(ctx, testBucket, testCollection)))
		st(db.MakeCollection(ctx, testBucket, testCollection, carSchema))
		assert.Equal(t, http.StatusOK, st(db.ReindexCollection(ctx, testBucket, testCollection)))
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestService_Items(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	setup := func(t *testing.T) (*thriftdb.Client, []car) {
		t.Helper()

		db := newServiceClient(t)
		st := statusOf(t)
		require.Equal(t, http.StatusCreated, st(db.MakeBucket(ctx, testBucket)))
		require.Equal(t, http.StatusCreated, st(db.MakeCollection(ctx, testBucket, testCollection, carSchema)))

		return db, fakeCars(t, 3)
	}

	t.Run("put then get round-trips", func(t *testing.T) {
		t.Parallel()

		db, cars := setup(t)
		st := statusOf(t)
		data := mustJSON(t, cars[0])

		assert.Equal(t, http.StatusCreated, st(db.PutItem(ctx, testBucket, testCollection, thriftdb.IntID(1), data)))

		resp, err := db.GetItem(ctx, testBucket, testCollection, thriftdb.IntID(1), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, data, resp.Text())
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		db, cars := setup(t)
		st := statusOf(t)
		st(db.PutItem(ctx, testBucket, testCollection, thriftdb.IntID(1), mustJSON(t, cars[1])))

		updated := cars[1]
		updated.Model = "updated model"
		assert.Equal(t, http.StatusOK, st(db.PutItem(ctx, testBucket, testCollection, thriftdb.IntID(1), mustJSON(t, updated))))

		resp, err := db.GetItem(ctx, testBucket, testCollection, thriftdb.IntID(1), thriftdb.Query{"fields": "model"})
		require.NoError(t, err)
		assert.JSONEq(t, mustJSON(t, updated), resp.Text())
	})

	t.Run("get and delete missing", func(t *testing.T) {
		t.Parallel()

		db, cars := setup(t)
		st := statusOf(t)
		assert.Equal(t, http.StatusNotFound, st(db.GetItem(ctx, testBucket, testCollection, thriftdb.IntID(1), nil)))

		st(db.PutItem(ctx, testBucket, testCollection, thriftdb.IntID(1), mustJSON(t, cars[1])))
		assert.Equal(t, http.StatusOK, st(db.DeleteItem(ctx, testBucket, testCollection, thriftdb.IntID(1))))

		// The hosted service's answer for a repeated delete varies; only the
		// absence of a client error is asserted.
		_, err := db.DeleteItem(ctx, testBucket, testCollection, thriftdb.IntID(1))
		require.NoError(t, err)
	})

	t.Run("bulk", func(t *testing.T) {
		t.Parallel()

		db, cars := setup(t)
		st := statusOf(t)
		all := mustJSON(t, cars)

		assert.Equal(t, http.StatusOK, st(db.PutItemMulti(ctx, testBucket, testCollection, all)))

		resp, err := db.GetItemMulti(ctx, testBucket, testCollection, thriftdb.IDs("1", "2", "3"), nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, all, resp.Text())

		assert.Equal(t, http.StatusOK, st(db.GetItemMulti(ctx, testBucket, testCollection, nil, nil)))
		assert.Equal(t, http.StatusOK, st(db.GetItemMulti(ctx, testBucket, testCollection, thriftdb.IDs("4", "5", "6"), nil)))
		assert.Equal(t, http.StatusOK, st(db.DeleteItemMulti(ctx, testBucket, testCollection, thriftdb.IDs("1", "2", "3"))))

		resp, err = db.GetItemMulti(ctx, testBucket, testCollection, thriftdb.IDs("1", "2", "3"), thriftdb.Query{"limit": "3"})
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, resp.Text())
	})

	t.Run("bulk against missing bucket or collection", func(t *testing.T) {
		t.Parallel()

		db, cars := setup(t)
		st := statusOf(t)
		all := mustJSON(t, cars)
		ids := thriftdb.IDs("1", "2", "3")

		assert.Equal(t, http.StatusNotFound, st(db.PutItemMulti(ctx, "test_bucket1", testCollection, all)))
		assert.Equal(t, http.StatusNotFound, st(db.PutItemMulti(ctx, testBucket, "nope", all)))
		assert.Equal(t, http.StatusNotFound, st(db.GetItemMulti(ctx, "test_bucket1", testCollection, ids, nil)))
		assert.Equal(t, http.StatusNotFound, st(db.GetItemMulti(ctx, testBucket, "nope", ids, nil)))
		assert.Equal(t, http.StatusNotFound, st(db.DeleteItemMulti(ctx, "test_bucket1", testCollection, ids)))
		assert.Equal(t, http.StatusNotFound, st(db.DeleteItemMulti(ctx, testBucket, "nope", ids)))
	})
}
