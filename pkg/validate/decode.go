package validate

import (
	"encoding/base64"
	"reflect"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

var bytesType = reflect.TypeOf([]byte(nil))

// Decode maps raw input fields onto a typed parameter struct.
// Input is weakly typed: numbers land in string fields as their decimal form,
// checkbox strings land in bool fields, and base64 strings land in []byte fields.
func Decode(in domain.Input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(flagHook, bytesHook),
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(in)); err != nil {
		return domain.Validation("Invalid input: %v", err)
	}
	return nil
}

func flagHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Bool || from.Kind() != reflect.String {
		return data, nil
	}
	return Flag(data), nil
}

func bytesHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != bytesType || from.Kind() != reflect.String {
		return data, nil
	}
	raw, err := base64.StdEncoding.DecodeString(data.(string))
	if err != nil {
		return nil, err
	}
	return raw, nil
}
