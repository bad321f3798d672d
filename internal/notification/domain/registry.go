package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

const (
	TemplateCreated  = "template.created"
	TemplateUpdated  = "template.updated"
	TemplateDeleted  = "template.deleted"
	NotificationSent = "notification.sent"
)

const NotificationTopic = "gymlab.notification"

// TemplateRemoved es el payload de template.deleted.
type TemplateRemoved struct {
	ID        int64 `json:"id"`
	DeletedBy int64 `json:"deletedBy"`
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		TemplateCreated:  {Type: reflect.TypeOf(Template{}), Topic: NotificationTopic},
		TemplateUpdated:  {Type: reflect.TypeOf(Template{}), Topic: NotificationTopic},
		TemplateDeleted:  {Type: reflect.TypeOf(TemplateRemoved{}), Topic: NotificationTopic},
		NotificationSent: {Type: reflect.TypeOf(Notification{}), Topic: NotificationTopic},
	}
}
