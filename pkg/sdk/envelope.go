package sdk

import (
	"encoding/json"
	"fmt"
)

// envelope is the wire shape every backend response uses.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// Result is a decoded backend response: either Ok with data or Err with the
// backend's message. It is produced once at the call boundary and never
// re-inspected as raw JSON downstream.
type Result[T any] struct {
	ok      bool
	data    T
	message string
}

// Ok builds a successful result.
func Ok[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Err builds a failed result carrying the backend message.
func Err[T any](message string) Result[T] {
	return Result[T]{message: message}
}

// IsOk reports whether the backend signalled success.
func (r Result[T]) IsOk() bool { return r.ok }

// Data returns the payload; it is the zero value for an Err result.
func (r Result[T]) Data() T { return r.data }

// Message returns the backend message; empty for most Ok results.
func (r Result[T]) Message() string { return r.message }

// decodeResult converts a response body into a Result. A body that is not an
// envelope at all is reported as an error so callers can fall back to the
// HTTP status.
func decodeResult[T any](body []byte) (Result[T], error) {
	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return Result[T]{}, fmt.Errorf("decode response envelope: %w", err)
	}
	if !env.Success {
		return Err[T](env.Message), nil
	}
	res := Ok(env.Data)
	res.message = env.Message
	return res, nil
}
