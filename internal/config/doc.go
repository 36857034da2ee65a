// Package config defines the application configuration structure and its
// loading logic. Configuration comes from three layers, lowest to highest
// precedence: built-in defaults, an optional config.yaml, and environment
// variables prefixed with LINGOFLOW_. The loaded struct is validated with
// go-playground/validator before use.
package config
