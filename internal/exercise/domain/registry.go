package domain

import (
	"reflect"

	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
)

const (
	ExerciseCreated = "exercise.created"
	ExerciseUpdated = "exercise.updated"
	ExerciseDeleted = "exercise.deleted"
)

const ExerciseTopic = "gymlab.exercise"

// ExerciseRemoved es el payload de exercise.deleted.
type ExerciseRemoved struct {
	ID        int64 `json:"id"`
	DeletedBy int64 `json:"deletedBy"`
}

func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		ExerciseCreated: {Type: reflect.TypeOf(Exercise{}), Topic: ExerciseTopic},
		ExerciseUpdated: {Type: reflect.TypeOf(Exercise{}), Topic: ExerciseTopic},
		ExerciseDeleted: {Type: reflect.TypeOf(ExerciseRemoved{}), Topic: ExerciseTopic},
	}
}
