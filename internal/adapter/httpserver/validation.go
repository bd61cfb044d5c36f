package httpserver

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() {
		vld = validator.New()
		// Report json field names so details match the request body.
		vld.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return vld
}

// validateSessionID rejects ids that are not UUIDs before any lookup.
func validateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrInvalidArgument)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: session id must be a UUID", domain.ErrInvalidArgument)
	}
	return nil
}

// validateStruct runs validator tags and returns field -> failed tag.
func validateStruct(v any) (map[string]string, error) {
	err := getValidator().Struct(v)
	if err == nil {
		return nil, nil
	}
	verrs := map[string]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			verrs[fe.Field()] = fe.Tag()
		}
	}
	return verrs, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument)
}
