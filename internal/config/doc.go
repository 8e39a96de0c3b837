// Package config provides configuration management for the details service.
//
// The listening port is the only required setting and comes from the command
// line. Everything else is loaded from environment variables using the env
// package, with defaults that need no environment at all.
//
// Example usage:
//
//	cfg, err := config.Load(9080)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
