// Package influxdb writes container level metrics to InfluxDB v2.
//
// It wraps the official influxdb-client-go v2 library with the service's
// configuration and measurement layout:
//
//	container_level     tags: container_id, name        fields: capacity, level, free_space
//	container_transfer  tags: container_id, direction   fields: requested, applied, partial
//
// Writes are non-blocking and batched (cfg.BatchSize points or every
// cfg.FlushInterval seconds). Write failures are reported asynchronously via
// SetOnError.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteContainerLevel(1, "Flour", 100, 30, time.Now())
package influxdb
