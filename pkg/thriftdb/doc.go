// Package thriftdb is a client for the ThriftDB document store
// (http://api.thriftdb.com).
//
// # Overview
//
// ThriftDB organises JSON documents into buckets, collections inside a
// bucket, and items inside a collection. Client maps each operation onto one
// HTTP request:
//
//	PUT    /{bucket}                          MakeBucket
//	GET    /{bucket}                          GetBucket
//	DELETE /{bucket}                          DeleteBucket
//	PUT    /{bucket}/{collection}             MakeCollection (body: schema)
//	GET    /{bucket}/{collection}             GetCollection
//	DELETE /{bucket}/{collection}             DeleteCollection
//	PUT    /{bucket}/{collection}/{id}        PutItem (body: item)
//	GET    /{bucket}/{collection}/{id}        GetItem
//	DELETE /{bucket}/{collection}/{id}        DeleteItem
//	POST   /{bucket}/{collection}/_bulk/put_multi            PutItemMulti
//	GET    /{bucket}/{collection}/_bulk/get_multi?ids=1,2    GetItemMulti
//	POST   /{bucket}/{collection}/_bulk/delete_multi?ids=1,2 DeleteItemMulti
//	POST   /{bucket}/{collection}/_bulk/reindex              ReindexCollection
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  db, err := thriftdb.NewWithCredentials("user", "password")
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := db.MakeBucket(ctx, "cars")
//	  if err != nil { log.Fatal(err) } // transport failure
//	  if resp.StatusCode == 409 { /* already exists */ }
//	}
//
// # Responses and errors
//
// Bodies are opaque: schemas and items are passed as JSON strings and
// responses come back as raw bytes with their status code and headers. The
// client never turns an HTTP status into an error. Callers that want one can
// use Response.Err together with IsNotFound and IsConflict.
//
// # Bulk ids
//
// GetItemMulti and DeleteItemMulti send ids as "?ids=1,2,3" with literal
// commas, because the service does not decode "%2C". Other characters in an
// id, such as spaces or "&", are query-escaped. Extra query parameters passed
// as a Query are percent-encoded and appended after it; an "ids" key there
// becomes a second ids parameter rather than extending the list.
//
// # Interceptors
//
// An InterceptorChain in Config runs around every request; the package ships
// logging, header and metrics interceptors.
package thriftdb
