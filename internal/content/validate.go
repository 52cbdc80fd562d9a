package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var ErrInvalid = errors.New("content: invalid portfolio")

var schema = mustSchema()

func mustSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		panic("content: bad embedded schema: " + err.Error())
	}
	return s
}

// Validate checks d against the portfolio schema: every identity field is
// set, every experience and project has at least one bullet, and no label is
// empty.
func Validate(d Data) error {
	res, err := schema.Validate(gojsonschema.NewGoLoader(d))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
