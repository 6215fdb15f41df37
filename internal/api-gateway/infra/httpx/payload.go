package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
)

// Payload parsing runs in two stages. A body that is not JSON at all is a
// *entity.MalformedInputError. Well-formed JSON with missing or mistyped
// fields is a *entity.ValidationError keyed by JSON path. Unknown fields are
// ignored.

const schemaField = "_schema"

// priceScale is the number of decimal places a price is rounded to before it
// leaves the gateway.
const priceScale = 2

func parseProduct(body []byte) (entity.Product, error) {
	obj, err := parseObject(body)
	if err != nil {
		return entity.Product{}, err
	}

	var verr entity.ValidationError
	f := fieldReader{obj: obj, errs: &verr}
	p := entity.Product{
		ID:                f.nonEmptyString("id"),
		Title:             f.nonEmptyString("title"),
		PassengerCapacity: f.nonNegativeInt("passenger_capacity"),
		MaximumSpeed:      f.nonNegativeNumber("maximum_speed"),
		InStock:           f.nonNegativeInt("in_stock"),
	}
	if err := verr.Err(); err != nil {
		return entity.Product{}, err
	}
	return p, nil
}

func parseOrder(body []byte) ([]entity.LineItem, error) {
	obj, err := parseObject(body)
	if err != nil {
		return nil, err
	}

	var verr entity.ValidationError
	raw, ok := obj["order_details"]
	if !ok || isNull(raw) {
		verr.Add("order_details", "missing data for required field")
		return nil, &verr
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(raw, &rawItems); err != nil {
		verr.Add("order_details", "must be a list")
		return nil, &verr
	}

	items := make([]entity.LineItem, 0, len(rawItems))
	for i, rawItem := range rawItems {
		prefix := "order_details[" + strconv.Itoa(i) + "]"
		var itemObj map[string]json.RawMessage
		if err := json.Unmarshal(rawItem, &itemObj); err != nil || itemObj == nil {
			verr.Add(prefix, "must be an object")
			continue
		}
		f := fieldReader{obj: itemObj, errs: &verr, prefix: prefix + "."}
		items = append(items, entity.LineItem{
			ProductID: f.nonEmptyString("product_id"),
			Price:     f.nonNegativeDecimal("price").Round(priceScale),
			Quantity:  int(f.positiveInt("quantity")),
		})
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func parseObject(body []byte) (map[string]json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, &entity.MalformedInputError{Err: syntaxError(body)}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, &entity.ValidationError{Fields: map[string]string{schemaField: "must be a JSON object"}}
	}
	return obj, nil
}

// syntaxError recovers the decoder's description of why body is not JSON.
func syntaxError(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}
	return errors.New("invalid JSON")
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// fieldReader pulls typed fields out of a decoded JSON object and records
// one message per bad field.
type fieldReader struct {
	obj    map[string]json.RawMessage
	errs   *entity.ValidationError
	prefix string
}

func (f fieldReader) raw(name string) (json.RawMessage, bool) {
	raw, ok := f.obj[name]
	if !ok || isNull(raw) {
		f.errs.Add(f.prefix+name, "missing data for required field")
		return nil, false
	}
	return raw, true
}

// nonEmptyString rejects strings that are empty or whitespace only. The value
// is returned untrimmed.
func (f fieldReader) nonEmptyString(name string) string {
	raw, ok := f.raw(name)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		f.errs.Add(f.prefix+name, "not a valid string")
		return ""
	}
	if strings.TrimSpace(s) == "" {
		f.errs.Add(f.prefix+name, "must not be empty")
	}
	return s
}

func (f fieldReader) integer(name string) (int64, bool) {
	raw, ok := f.raw(name)
	if !ok {
		return 0, false
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		f.errs.Add(f.prefix+name, "not a valid integer")
		return 0, false
	}
	return n, true
}

func (f fieldReader) nonNegativeInt(name string) int64 {
	n, ok := f.integer(name)
	if ok && n < 0 {
		f.errs.Add(f.prefix+name, "must be greater than or equal to 0")
	}
	return n
}

func (f fieldReader) positiveInt(name string) int64 {
	n, ok := f.integer(name)
	if ok && n <= 0 {
		f.errs.Add(f.prefix+name, "must be greater than 0")
	}
	return n
}

func (f fieldReader) nonNegativeNumber(name string) float64 {
	raw, ok := f.raw(name)
	if !ok {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		f.errs.Add(f.prefix+name, "not a valid number")
		return 0
	}
	if n < 0 {
		f.errs.Add(f.prefix+name, "must be greater than or equal to 0")
	}
	return n
}

func (f fieldReader) nonNegativeDecimal(name string) decimal.Decimal {
	d, ok := f.decimalValue(name)
	if ok && d.IsNegative() {
		f.errs.Add(f.prefix+name, "must be greater than or equal to 0")
	}
	return d
}

// decimalValue accepts a JSON string or number.
func (f fieldReader) decimalValue(name string) (decimal.Decimal, bool) {
	raw, ok := f.raw(name)
	if !ok {
		return decimal.Decimal{}, false
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			f.errs.Add(f.prefix+name, "not a valid decimal")
			return decimal.Decimal{}, false
		}
		text = num.String()
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		f.errs.Add(f.prefix+name, fmt.Sprintf("not a valid decimal: %q", text))
		return decimal.Decimal{}, false
	}
	return d, true
}
