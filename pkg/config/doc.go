// Package config provides the emulator's runtime configuration.
//
// A ServerConfiguration is loaded from a JSON or YAML file, layered on top of
// DefaultServerConfiguration, adjusted by environment overrides, and
// validated:
//
//	cfg, err := config.LoadFromFile("mockwatchlogs.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The YAML format:
//
//	host: 127.0.0.1
//	port: 6000
//	logging:
//	  level: debug
//	  file: /var/log/mockwatchlogs.log
//	compat:
//	  alreadyExistsStatus: 400
//	testHooks:
//	  serviceUnavailableGroup: ServiceUnavailable
//	seed:
//	  - name: app
//	    streams:
//	      - name: web
//	        events:
//	          - message: hello
//	            timestamp: 1600000000000
package config
