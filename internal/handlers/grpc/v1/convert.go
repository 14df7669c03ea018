package v1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/alter-ego/internal/errors"
)

// ToStruct converts any JSON-encodable value to a Struct
func ToStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to convert message to struct")
	}
	return out, nil
}

// FromStruct decodes a Struct into v. A shape mismatch is reported as a
// validation failure on the request body.
func FromStruct(in *structpb.Struct, v any) error {
	if in == nil {
		in = &structpb.Struct{}
	}

	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "failed to read struct")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewValidationBuilder().Field("body", "does not match the expected shape").Build()
	}
	return nil
}
