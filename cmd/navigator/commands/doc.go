// Package commands defines the navigator CLI and wires dependencies for subcommands.
//
// Commands
//
//   - key set|show|clear  Manage the saved Gemini API key
//   - analyze             One-shot analysis for a community, optionally drilling into a skill
//   - explore             Interactive session: search, pathways N, employers N, retry, show
//   - hash-password       Print an argon2id hash for ADMIN_PASSWORD
//
// # Implementation
//
// The root command loads configuration from the environment, opens the
// configured credential store and builds the AI adapter before any subcommand
// runs. The saved key is loaded at that point, so every command starts
// configured when a key exists.
package commands
