// Package docs registers the swagger document served under /swagger.
// The template is maintained by hand in the swag output format; keep it
// in sync with the handler annotations when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/context": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Get conversation context",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session identifier",
                        "name": "session_id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "Session history"},
                    "400": {"description": "Missing session_id"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Clear conversation context",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session identifier",
                        "name": "session_id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "Context cleared"},
                    "400": {"description": "Missing session_id"}
                }
            }
        },
        "/context/archive": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Get archived interactions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session identifier",
                        "name": "session_id",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "Archived interactions"},
                    "500": {"description": "Archive read failure"}
                }
            }
        },
        "/context/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Context"],
                "summary": "Export conversation context",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session identifier",
                        "name": "session_id",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Export format (json)",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "Serialized history"},
                    "400": {"description": "Missing session_id or unsupported format"}
                }
            }
        },
        "/followup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Followup"],
                "summary": "Generate follow-up questions",
                "parameters": [
                    {
                        "description": "Followup request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.FollowupRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Follow-up questions with debug info"},
                    "400": {"description": "Missing session_id"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "Service health status"}
                }
            }
        },
        "/query": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Query"],
                "summary": "Process natural language query",
                "parameters": [
                    {
                        "description": "Query request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.QueryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Query result with explanation"},
                    "400": {"description": "Missing, empty, or malformed query"},
                    "500": {"description": "Pipeline stage failure"}
                }
            }
        }
    },
    "definitions": {
        "models.FollowupRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "session_id": {"type": "string"}
            }
        },
        "models.QueryRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "session_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9090",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Mr Parker Query Assistant API",
	Description:      "Natural-language query assistant for a parking-management dataset - translates questions to SQL, executes them, and phrases the results back into prose",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
