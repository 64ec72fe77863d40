// Package docs registers the generated swagger specification.
// Code generated by swag; edits belong in the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "tags": ["webhook"],
                "summary": "Telegram webhook",
                "description": "Receives Telegram Bot API updates. Authenticated by the shared webhook secret.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Webhook shared secret",
                        "name": "secret",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "string"}},
                    "500": {"description": "Parse error", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/chats/{chat_id}/config": {
            "get": {
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Chat reward configuration",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Chat identifier",
                        "name": "chat_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Telegram Mini App init data",
                        "name": "init_data",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Telegram Loyalty Bot API",
	Description:      "Webhook relay between Telegram chats and the Loyalteez rewards API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
