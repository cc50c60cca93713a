// Package servers holds the HTTP contract of the service: the embedded OpenAPI
// document, its wire types and the echo routing glue. It follows the layout
// oapi-codegen produces for echo servers.
package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config types.cfg.yaml openapi.yaml
//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config server.cfg.yaml openapi.yaml

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger parses the embedded OpenAPI document. Every call returns a fresh copy.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// RegisterSwagger publishes the document under swag's default instance name,
// where echo-swagger looks for doc.json. Safe to call more than once.
func RegisterSwagger() error {
	var err error
	registerOnce.Do(func() {
		var doc *openapi3.T
		if doc, err = GetSwagger(); err != nil {
			return
		}
		var data []byte
		if data, err = json.Marshal(doc); err != nil {
			return
		}
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return err
}
