// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win; later ones only fill fields still unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
