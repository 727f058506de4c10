// Package api defines the tripsplit RPC surface: request/response messages,
// procedure names, and Connect handler and client constructors.
//
// Messages are plain Go structs carried by a JSON codec, so the same
// endpoints can be called with curl or any Connect client speaking JSON:
//
//	curl -X POST -H 'Content-Type: application/json' \
//	  -d '{"groupId":"..."}' http://localhost:8080/tripsplit.v1.GroupService/GetGroupDebts
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals messages as JSON. It replaces Connect's default protobuf
// JSON codec under the same "json" name.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
