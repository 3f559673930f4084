package commands

import (
	"encoding/json"
	"fmt"

	"mapplanner-server/internal/editor"
	"mapplanner-server/pkg/api"
)

// TypedBuilderFunc — «чистый» билдер, работающий с готовой структурой T.
type TypedBuilderFunc[T any] func(payload T) (editor.Command, error)

// WithPayload оборачивает чистый билдер в стандартный BuilderFunc,
// забирая на себя Unmarshal и автоматическую валидацию: если T
// реализует api.Validator, Validate вызывается до билдера.
func WithPayload[T any](build TypedBuilderFunc[T]) BuilderFunc {
	return func(raw json.RawMessage) (editor.Command, error) {
		var payload T

		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("invalid payload format: %w", err)
		}

		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("validation failed: %w", err)
			}
		}

		return build(payload)
	}
}

// WithEmptyPayload — обертка для команд без данных (ADD_FLOOR).
func WithEmptyPayload(build func() (editor.Command, error)) BuilderFunc {
	return func(_ json.RawMessage) (editor.Command, error) {
		return build()
	}
}
