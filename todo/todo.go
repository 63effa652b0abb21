package todo

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Todo is the record managed by the service. The store assigns ID and
// CreatedAt on insert; both are immutable afterwards.
type Todo struct {
	ID        int64     `bun:"id,pk,autoincrement" json:"id" msgpack:"id"`
	Title     string    `bun:"title,notnull" json:"title" msgpack:"title"`
	Completed bool      `bun:"completed,notnull,default:false" json:"completed" msgpack:"completed"`
	CreatedAt time.Time `bun:"created_at,notnull,nullzero,default:current_timestamp" json:"created_at" msgpack:"created_at"`
}

// CreateTodo is the input for creating a record.
type CreateTodo struct {
	Title string `json:"title"`
}

// Validate checks the create input before any store access happens.
func (c CreateTodo) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required, validation.Length(1, 255)),
	)
}

// UpdateTodo is a partial update. Nil fields are left unchanged.
type UpdateTodo struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// Validate rejects empty patches and blank titles.
func (u UpdateTodo) Validate() error {
	if u.Title == nil && u.Completed == nil {
		return validation.Errors{
			"fields": validation.NewError("validation_empty_patch", "at least one of title or completed must be set"),
		}
	}
	return validation.ValidateStruct(&u,
		validation.Field(&u.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}
