package avro

import (
	"fmt"

	"github.com/linkedin/goavro/v2"
	"github.com/shopspring/decimal"

	"ecommerce_dataset/internal/domain/dataset"
)

// Encoder wraps a goavro codec. Codecs are safe for concurrent use.
type Encoder struct {
	codec *goavro.Codec
}

// NewEncoder creates a new encoder from an Avro schema string
func NewEncoder(schema string) (*Encoder, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}
	return &Encoder{codec: codec}, nil
}

// NewOrderEncoder is NewEncoder for OrderEventSchema.
func NewOrderEncoder() (*Encoder, error) {
	return NewEncoder(OrderEventSchema)
}

// EncodeNative converts a goavro native value to Avro binary format
func (e *Encoder) EncodeNative(native interface{}) ([]byte, error) {
	binary, err := e.codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("failed to encode to avro binary: %w", err)
	}
	return binary, nil
}

func (e *Encoder) EncodeOrder(o dataset.PlacedOrder) ([]byte, error) {
	return e.EncodeNative(orderToNative(o))
}

// DecodeOrder is the inverse of EncodeOrder.
func (e *Encoder) DecodeOrder(data []byte) (dataset.PlacedOrder, error) {
	native, _, err := e.codec.NativeFromBinary(data)
	if err != nil {
		return dataset.PlacedOrder{}, fmt.Errorf("failed to decode avro binary: %w", err)
	}
	m, ok := native.(map[string]interface{})
	if !ok {
		return dataset.PlacedOrder{}, fmt.Errorf("avro payload is %T, want record", native)
	}
	return orderFromNative(m)
}

func orderToNative(o dataset.PlacedOrder) map[string]interface{} {
	items := make([]interface{}, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]interface{}{
			"order_item_id": it.ID,
			"product_id":    it.ProductID,
			"quantity":      int32(it.Quantity),
			"unit_price":    it.UnitPrice.StringFixed(2),
		})
	}
	return map[string]interface{}{
		"order_id":    o.ID,
		"customer_id": o.CustomerID,
		"order_date":  o.OrderDate,
		"status":      string(o.Status),
		"total":       o.Total().StringFixed(2),
		"items":       items,
	}
}

func orderFromNative(m map[string]interface{}) (dataset.PlacedOrder, error) {
	var o dataset.PlacedOrder
	o.ID, _ = m["order_id"].(int64)
	o.CustomerID, _ = m["customer_id"].(int64)
	o.OrderDate, _ = m["order_date"].(string)
	status, _ := m["status"].(string)
	o.Status = dataset.OrderStatus(status)

	rawItems, _ := m["items"].([]interface{})
	for _, raw := range rawItems {
		im, ok := raw.(map[string]interface{})
		if !ok {
			return o, fmt.Errorf("avro item is %T, want record", raw)
		}
		price, err := decimal.NewFromString(fmt.Sprint(im["unit_price"]))
		if err != nil {
			return o, fmt.Errorf("parse unit_price: %w", err)
		}
		qty, _ := im["quantity"].(int32)
		it := dataset.OrderItem{OrderID: o.ID, Quantity: int(qty), UnitPrice: price}
		it.ID, _ = im["order_item_id"].(int64)
		it.ProductID, _ = im["product_id"].(int64)
		o.Items = append(o.Items, it)
	}
	return o, nil
}
