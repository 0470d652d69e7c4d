package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var ErrNotNumeric = errors.New("expected a number or a string")

// Number sent either as a JSON number or as text. Kept as text, parsing belongs to the domain.
type Numeric string

func (self *Numeric) UnmarshalJSON(data []byte) (err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*self = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		err = json.Unmarshal(data, &s)
		if err != nil {
			return
		}
		*self = Numeric(strings.TrimSpace(s))
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		err = json.Unmarshal(data, &n)
		if err != nil {
			return
		}
		*self = Numeric(n.String())
		return nil
	}
	return ErrNotNumeric
}

func (self Numeric) String() string {
	return string(self)
}

func (self Numeric) IsEmpty() bool {
	return self == ""
}
