package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

const notBlankTag = "notblank"

var notBlankText = map[string]string{
	"en": "{0} cannot be blank",
	"es": "{0} no puede estar vacío",
}

// FieldError is a validation failure on a single JSON field.
type FieldError struct {
	Field   string
	Message string
}

// Error reports every invalid field of a payload.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Field returns the message for field, if any.
func (e *Error) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message, true
		}
	}
	return "", false
}

// Validator wraps a configured go-playground validator and its translator.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New returns a Validator whose messages are in lang ("es" or "en"; anything
// else falls back to "en").
func New(lang string) *Validator {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, es.New())

	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(notBlankTag, notBlank)

	var trans ut.Translator
	switch lang {
	case "es":
		trans, _ = uni.GetTranslator("es")
		_ = es_translations.RegisterDefaultTranslations(v, trans)
	default:
		lang = "en"
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
	}
	_ = v.RegisterTranslation(
		notBlankTag, trans,
		func(t ut.Translator) error { return t.Add(notBlankTag, notBlankText[lang], true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(notBlankTag, fe.Field())
			return s
		},
	)

	return &Validator{validate: v, translator: trans}
}

// Struct validates s and returns *Error when any field fails.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.translator),
		})
	}
	return out
}

// notBlank rejects strings that are empty once trimmed.
func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	if fl.Field().Kind() == reflect.String {
		return strings.TrimSpace(fl.Field().String()) != ""
	}
	return false
}
