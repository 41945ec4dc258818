package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Os erros usam o nome do campo em JSON, que é o que o cliente envia
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors mapeia campo -> mensagem, como os erros inline de um formulário
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for k, v := range fe {
		parts = append(parts, k+": "+v)
	}
	return strings.Join(parts, "; ")
}

// Add registra uma mensagem para o campo, mantendo a primeira
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// ValidateStruct aplica as tags `validate` e devolve os erros por campo
func ValidateStruct(s interface{}) FieldErrors {
	fe := FieldErrors{}
	err := validate.Struct(s)
	if err == nil {
		return fe
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add("_", err.Error())
		return fe
	}
	for _, e := range verrs {
		fe.Add(e.Field(), message(e))
	}
	return fe
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Este campo é obrigatório."
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Informe no máximo %s itens.", e.Param())
		}
		return fmt.Sprintf("Certifique-se de que o valor tenha no máximo %s caracteres.", e.Param())
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("Informe pelo menos %s item(ns).", e.Param())
		}
		return fmt.Sprintf("Certifique-se de que o valor tenha no mínimo %s caracteres.", e.Param())
	case "len":
		return fmt.Sprintf("O valor deve ter exatamente %s caracteres.", e.Param())
	case "email":
		return "Informe um endereço de e-mail válido."
	case "oneof":
		return fmt.Sprintf("Escolha uma opção válida (%s).", e.Param())
	case "gt", "gte":
		return "Selecione um registro válido."
	default:
		return "Valor inválido."
	}
}
