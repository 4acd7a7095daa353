// Package docs holds the OpenAPI document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "pubsubd maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List subscribed events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.EventsResponse"}}
                }
            }
        },
        "/events/{event}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Notify every listener of an event",
                "parameters": [
                    {"type": "string", "description": "Event name", "name": "event", "in": "path", "required": true},
                    {"description": "Named arguments", "name": "args", "in": "body", "schema": {"type": "object", "additionalProperties": true}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.NotifyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/subscriptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["subscriptions"],
                "summary": "List subscriptions in registration order",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SubscriptionsResponse"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "List notifications captured by the record sink",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.NotificationsResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "ready"}, "503": {"description": "starting"}}
            }
        }
    },
    "definitions": {
        "types.EventSummary": {
            "type": "object",
            "properties": {
                "event": {"type": "string", "example": "order_placed"},
                "listeners": {"type": "integer", "example": 2}
            }
        },
        "types.EventsResponse": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/types.EventSummary"}}
            }
        },
        "types.Subscription": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "event": {"type": "string", "example": "order_placed"},
                "callback": {"type": "string", "example": "record"},
                "created_unix": {"type": "integer"}
            }
        },
        "types.SubscriptionsResponse": {
            "type": "object",
            "properties": {
                "subscriptions": {"type": "array", "items": {"$ref": "#/definitions/types.Subscription"}}
            }
        },
        "types.Notification": {
            "type": "object",
            "properties": {
                "event": {"type": "string", "example": "order_placed"},
                "args": {"type": "object", "additionalProperties": true},
                "at_unix_ms": {"type": "integer"}
            }
        },
        "types.NotificationsResponse": {
            "type": "object",
            "properties": {
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/types.Notification"}}
            }
        },
        "types.NotifyResponse": {
            "type": "object",
            "properties": {
                "event": {"type": "string", "example": "order_placed"},
                "listeners": {"type": "integer", "example": 2}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "pubsubd API",
	Description:      "HTTP API for an in-process publish/subscribe registry.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
