// Package config loads runtime configuration for the NoteChain client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address of the note authority endpoint
//	-n string   network mode: "local" or "production"
//	-d string   directory for the durable local store
//
// # JSON schema
//
//	{
//	  "authority_addr": "http://127.0.0.1:4943",
//	  "network": "local",
//	  "data_dir": ".notechain"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
