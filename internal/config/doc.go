// Package config loads operator-tunable settings for the inspector
// endpoint and the controller bridge from an optional YAML file, with
// documented defaults for every field the file omits.
//
// # Configuration File Structure
//
//	rendezvous_prefix: wpf_inspector
//	endpoint:
//	  marshal_timeout_ms: 200
//	  binding_error_buffer_size: 1000
//	  notification_queue_depth: 256
//	bridge:
//	  connect_timeout_ms: 5000
//	  request_timeout_ms: 30000
//
// # Usage
//
//	cfg, err := config.Load("inspector.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	marshaler := marshal.New()
//	defer marshaler.Stop()
//	_ = cfg.ResolvedMarshalTimeout()
package config
