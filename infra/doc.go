// Package infra contains technical adapters: the daylight and weather
// deployability services, metrics exporters, the MQTT tag publisher and
// the zerolog logger. These packages depend only on the interfaces
// defined in the core packages.
package infra
