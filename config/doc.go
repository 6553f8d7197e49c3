// Package config provides configuration loading and validation for spap.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (SPAP_ prefix, plus CONTENTS_LOCATION and REWRITE404)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// All config keys map to environment variables with the SPAP_ prefix:
//   - contents_location → SPAP_CONTENTS_LOCATION or CONTENTS_LOCATION
//   - rewrite404 → SPAP_REWRITE404 or REWRITE404
//   - server.port → SPAP_SERVER_PORT
//   - aws.endpoint → SPAP_AWS_ENDPOINT
//
// The contents location is required and must parse with spap.ParseLocation;
// Load fails otherwise so no request is ever served with a bad location.
package config
