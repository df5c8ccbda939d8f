// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML settings in ~/.chunkroute/config.toml
package file
