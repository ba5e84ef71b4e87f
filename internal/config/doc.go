// Package config provides configuration loading, merging, and validation
// for the securedata CLI and the blobd server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. JSON config file (path from SECUREDATA_CONFIG or --config)
//  2. Environment variables, all prefixed with SECUREDATA_
//  3. Command-line flags registered with [RegisterFlags]
//
// Fields left zero by every source take the values of defaultConfig. The
// entry point is [Load].
package config
