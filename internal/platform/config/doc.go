// Package config loads service configuration from the environment.
//
// A dotenv file is read first when present; struct tags declare each variable and its
// default. Both services validate ports, log settings, and the optional rate limit.
package config
