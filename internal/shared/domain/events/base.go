package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Key       string          `json:"key,omitempty"` // id del agregado, usado como clave de partición
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
}

func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

// EventMetadata indica a qué tipo decodificar el payload y en qué topic publicarlo.
type EventMetadata struct {
	Type  reflect.Type
	Topic string
}

// Registry agrupa los EventMetadata de varios dominios en un solo mapa.
func Registry(parts ...map[string]EventMetadata) map[string]EventMetadata {
	merged := make(map[string]EventMetadata)
	for _, p := range parts {
		for k, v := range p {
			merged[k] = v
		}
	}
	return merged
}
