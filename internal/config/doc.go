// Package config provides configuration loading, merging, and validation
// facilities for the drink-ledger server and its admin CLI.
//
// Server configuration is assembled from multiple sources in the following
// priority order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON config file
//  3. Environment variables
//  4. Command-line flags
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the admin CLI.
package config
