package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

const (
	AssetCreated = "asset.created"
	AssetUpdated = "asset.updated"
	AssetDeleted = "asset.deleted"
)

const AssetTopic = "gymlab.asset"

// AssetRemoved es el payload de asset.deleted.
type AssetRemoved struct {
	ID        int64 `json:"id"`
	DeletedBy int64 `json:"deletedBy"`
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		AssetCreated: {Type: reflect.TypeOf(Asset{}), Topic: AssetTopic},
		AssetUpdated: {Type: reflect.TypeOf(Asset{}), Topic: AssetTopic},
		AssetDeleted: {Type: reflect.TypeOf(AssetRemoved{}), Topic: AssetTopic},
	}
}
