// Package docs descripción OpenAPI de la API json.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte
