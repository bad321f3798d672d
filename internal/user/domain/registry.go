package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

const UserTopic = "gymlab.user"

// UserRemoved es el payload de user.deleted.
type UserRemoved struct {
	ID        int64 `json:"id"`
	DeletedBy int64 `json:"deletedBy"`
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		UserCreated: {Type: reflect.TypeOf(User{}), Topic: UserTopic},
		UserUpdated: {Type: reflect.TypeOf(User{}), Topic: UserTopic},
		UserDeleted: {Type: reflect.TypeOf(UserRemoved{}), Topic: UserTopic},
	}
}
