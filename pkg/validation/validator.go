package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the details list returned for a 400
// validation failure: the offending field, a message and the rejected value.
type FieldError struct {
	Champ   string `json:"champ"`
	Message string `json:"message"`
	Valeur  any    `json:"valeur,omitempty"`
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers notblank (non-empty after trimming) used on every text field.
// - Registers trimmin/trimmax: length bounds counted after trimming, since
//   stored values are trimmed and padding must not let short input through.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("trimmin", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return trimmedLen(fl.Field().String()) >= n
		})
		_ = v.RegisterValidation("trimmax", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return trimmedLen(fl.Field().String()) <= n
		})
	}
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// ToDetails converts binding/validation errors into the detail list of the
// 400 envelope. All violations are collected, never just the first.
func ToDetails(err error) []FieldError {
	if err == nil {
		return nil
	}

	// Malformed JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) {
		return []FieldError{{Champ: "payload", Message: "JSON invalide"}}
	}
	if errors.As(err, &ute) {
		return []FieldError{{Champ: ute.Field, Message: "type invalide"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{
				Champ:   fieldName(fe),
				Message: formatFieldError(fe),
				Valeur:  fe.Value(),
			})
		}
		return out
	}

	return []FieldError{{Champ: "payload", Message: "données invalides"}}
}

// fieldName strips the struct prefix from the namespace so nested and
// array elements read as "ingredients[0]" rather than "CreateRequest.Ingredients[0]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	kind := fe.Kind()
	if kind == reflect.Ptr {
		kind = fe.Type().Elem().Kind()
	}

	switch fe.Tag() {
	case "required", "notblank":
		return "ne peut pas être vide"
	case "email":
		return "doit être un email valide"
	case "min":
		switch kind {
		case reflect.Slice, reflect.Array:
			return "doit contenir au moins " + param + " élément(s)"
		case reflect.String:
			return "doit contenir au moins " + param + " caractères"
		default:
			return "doit être au moins " + param
		}
	case "max":
		switch kind {
		case reflect.Slice, reflect.Array:
			return "doit contenir au plus " + param + " élément(s)"
		case reflect.String:
			return "ne peut pas dépasser " + param + " caractères"
		default:
			return "doit être au plus " + param
		}
	case "trimmin":
		return "doit contenir au moins " + param + " caractères"
	case "trimmax":
		return "ne peut pas dépasser " + param + " caractères"
	case "len":
		return "doit contenir exactement " + param + " caractères"
	case "hexadecimal":
		return "doit être hexadécimal"
	case "oneof":
		return "doit être l'une des valeurs: " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return "validation échouée pour '" + fe.Tag() + "' avec le paramètre '" + param + "'"
		}
		return "validation échouée pour '" + fe.Tag() + "'"
	}
}
