// Package mqtt publishes container state to an MQTT broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Topics
//
//	{prefix}/system/status           retained online/offline status
//	{prefix}/containers/{id}/state   retained container state, cleared on delete
//	{prefix}/events/{type}           created, updated, deposited, withdrawn, deleted
//
// # Security Considerations
//
//   - Enable TLS (cfg.Broker.TLS=true) for any broker outside localhost
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	topic := client.Topics().ContainerState(1)
//	err = client.PublishRetained(topic, payload)
package mqtt
