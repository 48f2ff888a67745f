// Package recdex embeds the recdex record search engine in a Go program.
//
// The client talks to the permission store (SQLite or Redis) and the
// Elasticsearch-compatible index directly, without the HTTP API.
//
//	client, _ := recdex.New(ctx,
//	    recdex.WithSQLite("file:recdex.db"),
//	    recdex.WithIndex("http://localhost:9200", "records"),
//	)
//	defer client.Close()
//
//	_, _ = client.EnsureIndex(ctx)
//	_ = client.Put(ctx, recdex.Record{ID: 1, Identifier: "core-1", Public: true})
//
//	page, _ := client.Search(ctx, userID, recdex.Query{
//	    Text: "granite",
//	    Extras: []recdex.Predicate{
//	        recdex.NumericPredicate("depth", "10", "", "m"),
//	        recdex.StrPredicate("site", "north").Or(),
//	    },
//	})
package recdex
