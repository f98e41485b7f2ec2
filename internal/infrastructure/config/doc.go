// Package config loads and validates the gateway configuration.
//
// A single YAML file describes the vendor cloud account, the local MQTT
// broker, the optional InfluxDB sink, the SQLite history database and the
// sync cadence. Environment variables override file values so credentials
// (API key, access and refresh tokens) never have to live on disk.
//
// Configuration is read once at startup. Validation rejects a config that
// could not possibly reach the vendor cloud, for example a missing API key
// or a zero poll interval, rather than failing later mid-sync.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Vendor.BaseURL)
package config
