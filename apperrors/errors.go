package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized: entity bukan milik restoran yang sedang login.
	// Jangan bocorkan detail entity ke caller.
	ErrUnauthorized = errors.New("not authorized for this resource")

	ErrNotFound = errors.New("not found")

	// ErrSubmitDisabled: submit gate restoran sedang ditutup.
	ErrSubmitDisabled = errors.New("order submission is currently disabled")

	// ErrNoRecurringOrders: tidak ada order recurring untuk meja yang mau di-settle.
	ErrNoRecurringOrders = errors.New("no recurring orders found for this table")

	ErrInvalidTransition = errors.New("invalid order status transition")
)

// FieldError adalah error validasi per field, format "items[0].price" dst.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError mengumpulkan satu atau lebih FieldError. Tidak pernah
// di-retry otomatis; caller memperbaiki input.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (v *ValidationError) Error() string {
	if len(v.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", v.Errors[0].Field, v.Errors[0].Message)
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(v.Errors))
}

// Add menambahkan satu field error.
func (v *ValidationError) Add(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// HasErrors true kalau minimal ada satu field error.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Validation membuat ValidationError dengan satu field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// StorageError membungkus kegagalan storage. Core tidak me-retry sendiri;
// keputusan retry ada di caller (create dan settlement aman di-retry karena
// keduanya diturunkan ulang dari state durable).
type StorageError struct {
	Op  string
	Err error
}

func (s *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", s.Op, s.Err)
}

func (s *StorageError) Unwrap() error {
	return s.Err
}

// Storage membungkus err sebagai StorageError.
func Storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
