package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

const (
	MeasurementCreated = "measurement.created"
	MeasurementUpdated = "measurement.updated"
	MeasurementDeleted = "measurement.deleted"
)

const MeasurementTopic = "gymlab.measurement"

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	t := reflect.TypeOf(Measurement{})
	return map[string]sharedEvents.EventMetadata{
		MeasurementCreated: {Type: t, Topic: MeasurementTopic},
		MeasurementUpdated: {Type: t, Topic: MeasurementTopic},
		MeasurementDeleted: {Type: t, Topic: MeasurementTopic},
	}
}
