package schema

import "github.com/hamba/avro/v2"

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "orders",
	"name": "order_placed",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "user_id", "type": "string"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_line",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "brand", "type": "string"},
					{"name": "size", "type": "string"},
					{"name": "color", "type": "string"},
					{"name": "quantity", "type": "int"},
					{"name": "price", "type": "string"}
				]
			}
		}},
		{"name": "total", "type": "string"},
		{"name": "currency", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "address", "type": "string"},
		{"name": "payment_method", "type": "string"},
		{"name": "created_at", "type": "long"}
	]
}`

type (
	// OrderPlacedV1 carries money as decimal strings.
	OrderPlacedV1 struct {
		OrderID       string        `avro:"order_id"`
		UserID        string        `avro:"user_id"`
		Items         []OrderLineV1 `avro:"items"`
		Total         string        `avro:"total"`
		Currency      string        `avro:"currency"`
		Status        string        `avro:"status"`
		Address       string        `avro:"address"`
		PaymentMethod string        `avro:"payment_method"`
		CreatedAt     int64         `avro:"created_at"`
	}

	OrderLineV1 struct {
		ProductID string `avro:"product_id"`
		Name      string `avro:"name"`
		Brand     string `avro:"brand"`
		Size      string `avro:"size"`
		Color     string `avro:"color"`
		Quantity  int    `avro:"quantity"`
		Price     string `avro:"price"`
	}
)

func OrderPlacedV1Avro() avro.Schema {
	return avro.MustParse(OrderPlacedSchemaTextV1)
}
