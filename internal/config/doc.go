// Package config loads and validates the server configuration.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning
// field by field:
//
//  1. Default() values
//  2. A YAML file given by --config or MRP_CONFIG_FILE
//  3. Environment variables prefixed MRP_
//
// # Environment Variables
//
// Nested fields join their section and field names:
//
//	MRP_SERVER_PORT=10001
//	MRP_SERVER_SHUTDOWN_TIMEOUT=10s
//	MRP_LOGGING_LEVEL=debug
//	MRP_TRACING_ENABLED=true
//	MRP_METRICS_PATH=/metrics
//
// # YAML
//
//	server:
//	  port: 10001
//	  read_timeout: 15s
//	logging:
//	  level: info
//	  output: both
//	  file_path: logs/mrp.log
//
// Unknown YAML keys are rejected.
package config
