package handler

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report json field names so error bodies match request bodies.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("bloodtype", func(fl validator.FieldLevel) bool {
		return domain.BloodType(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("requeststatus", func(fl validator.FieldLevel) bool {
		return domain.RequestStatus(fl.Field().String()).IsValid()
	})
}

// parseBody decodes the JSON body into input and runs its validate tags.
func parseBody(c *fiber.Ctx, input any) error {
	if err := c.BodyParser(input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return validate.Struct(input)
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

// bloodTypeQuery reads an optional blood type from the query string.
func bloodTypeQuery(c *fiber.Ctx, key string) (*domain.BloodType, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	bt, err := domain.ParseBloodType(raw)
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func boolQuery(c *fiber.Ctx, key string) (*bool, error) {
	switch c.Query(key) {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	default:
		return nil, middleware.BadRequest(key + " must be true or false")
	}
}
