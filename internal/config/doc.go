// Package config provides configuration loading, merging, and validation
// facilities for the server, the printer agent and the CLI.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for the fields they set):
//  1. Environment variables, after a .env file in the working directory is
//     loaded
//  2. Command-line flags
//  3. JSON or YAML config file
//  4. Built-in defaults
//
// The entry points are [GetServerConfig], [GetAgentConfig] and
// [GetCLIConfig].
package config
