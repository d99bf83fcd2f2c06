package schema

import "github.com/hamba/avro/v2"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "clients",
	"name": "client_event",
	"fields": [
		{"name": "kind", "type": "string"},
		{"name": "email", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "occurred_at", "type": "long"}
	]
}`

type ClientEventV1 struct {
	Kind       string `avro:"kind"`
	Email      string `avro:"email"`
	ProductID  string `avro:"product_id"`
	Query      string `avro:"query"`
	OccurredAt int64  `avro:"occurred_at"`
}

func ClientEventV1Avro() avro.Schema {
	return avro.MustParse(ClientEventSchemaTextV1)
}
