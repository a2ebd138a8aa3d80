// Package docs provides generated OpenAPI documentation.
//
// Lectern API
//
//	@title			Lectern API
//	@version		1.0
//	@description	Agentic document analysis API for cleaning, classifying, and summarizing text.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/lectern-ai/lectern
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:16009
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/lectern/serve.go -o ./swagger --parseDependency --parseInternal
