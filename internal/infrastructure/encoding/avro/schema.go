package avro

// OrderEventSchema describes one generated order and its lines.
// Money travels as decimal strings so values survive without float rounding.
const OrderEventSchema = `{
	"type": "record",
	"name": "OrderPlaced",
	"namespace": "com.ecommerce.dataset",
	"fields": [
		{"name": "order_id", "type": "long"},
		{"name": "customer_id", "type": "long"},
		{"name": "order_date", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "total", "type": "string"},
		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "OrderLine",
				"fields": [
					{"name": "order_item_id", "type": "long"},
					{"name": "product_id", "type": "long"},
					{"name": "quantity", "type": "int"},
					{"name": "unit_price", "type": "string"}
				]
			}
		}}
	]
}`
