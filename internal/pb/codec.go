package pb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is registered under grpc's content-subtype mechanism; "proto"
// is reserved by grpc-go's default codec, so the in-repo client selects
// this one per call with grpc.CallContentSubtype("json"), and the server
// picks it from the incoming request's content-subtype.
const codecName = "json"

// jsonCodec implements encoding.Codec by delegating to encoding/json. It
// exists because this repo has no protoc step to generate the default
// proto codec's message types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
