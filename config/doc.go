// Package config loads the docsift TOML configuration file and converts its
// sections into the options of the packages they configure.
//
// Example file:
//
//	[database]
//	path = "/var/lib/docsift"
//
//	[search]
//	semantic_latency = "0s"
//	stemming = true
//
//	[search.synonyms]
//	invoice = ["bill", "receipt"]
//
//	[ai]
//	host = "http://localhost:11434"
//	model = "qwen2.5:3b"
//
//	[ingestion]
//	pool_size = 4
package config
