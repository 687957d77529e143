package customer

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TaskTypeRegistered is the asynq task type of the customer.registered event.
const TaskTypeRegistered = "customer.registered"

// RegisteredPayload is the serialized payload of a customer.registered task.
type RegisteredPayload struct {
	ID string `json:"id"`
}

// NewRegisteredTask creates a new asynq task for a registered customer.
func NewRegisteredTask(id string) (*asynq.Task, error) {
	payload, err := json.Marshal(RegisteredPayload{ID: id})
	if err != nil {
		return nil, fmt.Errorf("marshaling task payload: %w", err)
	}
	return asynq.NewTask(TaskTypeRegistered, payload), nil
}

// ParseRegisteredPayload deserializes the task payload.
func ParseRegisteredPayload(data []byte) (*RegisteredPayload, error) {
	var p RegisteredPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshaling task payload: %w", err)
	}
	return &p, nil
}
