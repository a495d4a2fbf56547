// Package datanode embeds the data-node gateway operations in a Go program,
// talking to the RediSearch/RedisJSON store directly instead of over HTTP.
//
//	client, _ := datanode.New(ctx, datanode.WithRedisURL("redis://localhost:6379"))
//	defer client.Close()
//
//	_, _ = client.DefineIndex(ctx, datanode.Schema{
//	    Name:        "posts",
//	    StorageType: "JSON",
//	    Prefixes:    []string{"my_source:"},
//	    Fields: []datanode.Field{
//	        {Name: "$.title", Alias: "title", Type: "TEXT"},
//	        {Name: "$.post_timestamp", Alias: "post_timestamp", Type: "NUMERIC", Sortable: true},
//	    },
//	})
//	key, _ := client.Add(ctx, datanode.Document{"source": "My Source", "title": "hello"})
//	res, _ := client.Search(ctx, datanode.SearchParams{Index: "posts", Text: "hello"})
package datanode
