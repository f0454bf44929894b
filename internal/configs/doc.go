// Package configs reads the optional user configuration for jass.
//
// Configuration lives in a single TOML file at
// <UserConfigDir>/jass/config.toml, for example:
//
//	[keys]
//	private = "~/.ssh/id_rsa_jass"
//	public = ["~/team-keys/*.pub"]
//
//	[github]
//	api = "https://ghe.example.com/api/v3"
//
// Everything is optional. Precedence is fixed: command-line flags win
// over the config file, and the config file wins over built-in defaults.
// Load returns a plain Settings value; nothing in this package holds
// mutable global state.
package configs
