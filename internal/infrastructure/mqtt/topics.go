package mqtt

import (
	"strconv"
	"strings"
)

// DefaultTopicPrefix is used when no prefix is configured.
const DefaultTopicPrefix = "varasto"

// Topics builds the service's MQTT topics under a common prefix.
//
//	topics := mqtt.NewTopics("varasto")
//	topics.ContainerState(3) // "varasto/containers/3/state"
type Topics struct {
	prefix string
}

// NewTopics returns a builder for prefix. Surrounding slashes are trimmed and
// an empty prefix falls back to DefaultTopicPrefix.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Prefix returns the topic prefix.
func (t Topics) Prefix() string {
	return t.prefix
}

// SystemStatus returns the retained online/offline status topic.
//
// Example: varasto/system/status
func (t Topics) SystemStatus() string {
	return t.prefix + "/system/status"
}

// ContainerState returns the retained state topic for one container.
//
// Example: varasto/containers/1/state
func (t Topics) ContainerState(id int) string {
	return t.prefix + "/containers/" + strconv.Itoa(id) + "/state"
}

// Event returns the topic for one kind of registry event.
//
// Example: varasto/events/deposited
func (t Topics) Event(eventType string) string {
	return t.prefix + "/events/" + eventType
}
