package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names written by this package.
const (
	MeasurementContainerLevel    = "container_level"
	MeasurementContainerTransfer = "container_transfer"
)

// WriteContainerLevel records a container's capacity and level.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Example:
//
//	client.WriteContainerLevel(1, "Flour", 100, 30, time.Now())
func (c *Client) WriteContainerLevel(id int, name string, capacity, level float64, at time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(containerLevelPoint(id, name, capacity, level, at))
}

// WriteTransfer records one deposit or withdrawal, including how much of the
// request was applied.
func (c *Client) WriteTransfer(id int, direction string, requested, applied float64, at time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(transferPoint(id, direction, requested, applied, at))
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Example:
//
//	client.WritePoint("registry_stats",
//	    map[string]string{"site": "varasto"},
//	    map[string]interface{}{"containers": 12},
//	    time.Now())
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}, at time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, at))
}

func containerLevelPoint(id int, name string, capacity, level float64, at time.Time) *write.Point {
	return write.NewPoint(
		MeasurementContainerLevel,
		map[string]string{
			"container_id": strconv.Itoa(id),
			"name":         name,
		},
		map[string]interface{}{
			"capacity":   capacity,
			"level":      level,
			"free_space": capacity - level,
		},
		at,
	)
}

func transferPoint(id int, direction string, requested, applied float64, at time.Time) *write.Point {
	return write.NewPoint(
		MeasurementContainerTransfer,
		map[string]string{
			"container_id": strconv.Itoa(id),
			"direction":    direction,
		},
		map[string]interface{}{
			"requested": requested,
			"applied":   applied,
			"partial":   requested > 0 && applied < requested,
		},
		at,
	)
}
