package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Harissh-lab/arm-scout/pkg/e"
	"github.com/Harissh-lab/arm-scout/pkg/validator"
)

const maxBodyBytes = 1 << 20

// Bind decodes exactly one JSON object from the request body into dst and
// validates it. Every failure wraps e.ErrInvalidInput.
func Bind(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %v: %w", err, e.ErrInvalidInput)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("trailing data after JSON body: %w", e.ErrInvalidInput)
	}

	if err := validator.ValidateStruct(dst); err != nil {
		return fmt.Errorf("%v: %w", err, e.ErrInvalidInput)
	}
	return nil
}

// BindOptional is Bind for endpoints whose body may be empty.
func BindOptional(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return validator.ValidateStruct(dst)
	}
	return Bind(w, r, dst)
}
