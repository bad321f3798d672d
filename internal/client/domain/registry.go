package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

const (
	ClientCreated = "client.created"
	ClientUpdated = "client.updated"
	ClientDeleted = "client.deleted"
)

const ClientTopic = "gymlab.client"

// ClientRemoved es el payload de client.deleted.
type ClientRemoved struct {
	ID        int64 `json:"id"`
	DeletedBy int64 `json:"deletedBy"`
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		ClientCreated: {Type: reflect.TypeOf(Client{}), Topic: ClientTopic},
		ClientUpdated: {Type: reflect.TypeOf(Client{}), Topic: ClientTopic},
		ClientDeleted: {Type: reflect.TypeOf(ClientRemoved{}), Topic: ClientTopic},
	}
}
