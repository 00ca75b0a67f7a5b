package influxdb

import (
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/mehutonkka/ohtuvarasto/internal/infrastructure/config"
)

func TestContainerLevelPoint(t *testing.T) {
	at := time.Unix(1700000000, 0)
	line := write.PointToLineProtocol(containerLevelPoint(7, "Flour", 100, 30, at), time.Second)

	line = strings.TrimSpace(line)

	if !strings.HasPrefix(line, "container_level,container_id=7,name=Flour ") {
		t.Errorf("unexpected series in %q", line)
	}
	for _, field := range []string{"capacity=100", "free_space=70", "level=30"} {
		if !strings.Contains(line, field) {
			t.Errorf("line %q missing field %s", line, field)
		}
	}
	if !strings.HasSuffix(line, " 1700000000") {
		t.Errorf("line %q missing second-precision timestamp", line)
	}
}

func TestTransferPoint(t *testing.T) {
	at := time.Unix(1700000000, 0)

	tests := []struct {
		name        string
		requested   float64
		applied     float64
		wantPartial string
	}{
		{"full", 20, 20, "partial=false"},
		{"partial", 150, 100, "partial=true"},
		{"ignored negative", -5, 0, "partial=false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := write.PointToLineProtocol(transferPoint(1, "deposit", tt.requested, tt.applied, at), time.Second)
			if !strings.HasPrefix(line, "container_transfer,container_id=1,direction=deposit ") {
				t.Errorf("unexpected series in %q", line)
			}
			if !strings.Contains(line, tt.wantPartial) {
				t.Errorf("line %q missing %s", line, tt.wantPartial)
			}
		})
	}
}

func TestBatchSettings(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.InfluxDBConfig
		wantBatch int
		wantFlush int
	}{
		{"configured", config.InfluxDBConfig{BatchSize: 500, FlushInterval: 3}, 500, 3},
		{"zero uses defaults", config.InfluxDBConfig{}, defaultBatchSize, defaultFlushInterval},
		{"negative uses defaults", config.InfluxDBConfig{BatchSize: -1, FlushInterval: -10}, defaultBatchSize, defaultFlushInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, flush := batchSettings(tt.cfg)
			if batch != tt.wantBatch || flush != tt.wantFlush {
				t.Errorf("batchSettings() = %d, %d; want %d, %d", batch, flush, tt.wantBatch, tt.wantFlush)
			}
		})
	}
}
