package middleware

import (
	"strconv"

	"saathi/internal/domain"
	"saathi/internal/dto"
	"saathi/internal/util"
	"saathi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	PaginationKey = "validated_pagination"

	maxPageLimit = 100
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// BindJSON parses the request body into out and validates its struct tags.
func (vm *ValidationMiddleware) BindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	return vm.validator.Struct(out)
}

// Validate checks struct tags on an already populated value.
func (vm *ValidationMiddleware) Validate(v interface{}) error {
	return vm.validator.Struct(v)
}

// ValidateIDParam rejects a path parameter that is not a ULID.
func (vm *ValidationMiddleware) ValidateIDParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params(name)
		if id == "" {
			return domain.ValidationErrors{domain.NewMissingFieldError(name)}
		}
		if !util.IsULID(id) {
			return domain.ValidationErrors{domain.NewInvalidFormatError(name, id)}
		}
		return c.Next()
	}
}

// ValidatePagination validates limit, offset and page query parameters and
// stores a dto.Pagination in the context.
func (vm *ValidationMiddleware) ValidatePagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			p    dto.Pagination
			errs domain.ValidationErrors
		)

		for _, q := range []struct {
			name string
			dst  *int
			min  int
			max  int
		}{
			{"limit", &p.Limit, 1, maxPageLimit},
			{"offset", &p.Offset, 0, 1 << 20},
			{"page", &p.Page, 1, 1 << 20},
		} {
			raw := c.Query(q.name)
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, domain.NewInvalidFormatError(q.name, raw))
				continue
			}
			if n < q.min || n > q.max {
				errs = append(errs, domain.NewOutOfRangeError(q.name, n, q.min, q.max))
				continue
			}
			*q.dst = n
		}

		if len(errs) > 0 {
			return errs
		}
		c.Locals(PaginationKey, p)
		return c.Next()
	}
}

// Pagination returns the value stored by ValidatePagination.
func Pagination(c *fiber.Ctx) dto.Pagination {
	p, _ := c.Locals(PaginationKey).(dto.Pagination)
	return p
}
