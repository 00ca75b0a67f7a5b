// Package config handles loading and validating varasto configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (VARASTO_*)
//   - Validation of required fields
//   - Default value handling
//
// A missing configuration file is not an error: the service starts on
// defaults with an in-memory registry and every optional adapter
// (SQLite, MQTT, InfluxDB) disabled.
//
// Security Considerations:
//   - Sensitive values (passwords, tokens) should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Site.Name)
package config
