// Package docs registers the Swagger document served under /swagger.
// It follows the swag output layout but is maintained by hand alongside the
// handler annotations.
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
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API welcome document",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.welcomeResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/v1/parcels": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "List all parcels",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.parcelResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Prices the parcel, assigns a tracking number and stores it as PENDING.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "Book a parcel",
                "parameters": [
                    {"description": "Parcel details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.parcelRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.parcelResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/parcels/recipient/{email}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "List parcels addressed to an email address",
                "parameters": [
                    {"type": "string", "description": "Recipient email", "name": "email", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.parcelResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/parcels/sender/{email}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "List parcels sent by an email address",
                "parameters": [
                    {"type": "string", "description": "Sender email", "name": "email", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.parcelResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/parcels/status/{status}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "List parcels in a status",
                "parameters": [
                    {
                        "enum": ["PENDING", "CONFIRMED", "PICKED_UP", "IN_TRANSIT", "OUT_FOR_DELIVERY", "DELIVERED", "CANCELLED", "RETURNED"],
                        "type": "string",
                        "description": "Status (case-insensitive)",
                        "name": "status",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.parcelResponse"}}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/parcels/track/{tracking_number}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "Track a parcel",
                "parameters": [
                    {"type": "string", "description": "Tracking number (e.g. TRK1A2B3C4D)", "name": "tracking_number", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.parcelResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/parcels/user/{email}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "List parcels a user sent or receives",
                "parameters": [
                    {"type": "string", "description": "User email", "name": "email", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.parcelResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/parcels/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "Get a parcel by id",
                "parameters": [
                    {"type": "string", "description": "Parcel id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.parcelResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Recomputes cost and ETA. Tracking number, status and creation time are kept.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "Replace a parcel's booking details",
                "parameters": [
                    {"type": "string", "description": "Parcel id", "name": "id", "in": "path", "required": true},
                    {"description": "Parcel details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.parcelRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.parcelResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "Delete a parcel",
                "parameters": [
                    {"type": "string", "description": "Parcel id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/v1/parcels/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["parcels"],
                "summary": "Change a parcel's status",
                "parameters": [
                    {"type": "string", "description": "Parcel id", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.statusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.parcelResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.FieldViolation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.contactRequest": {
            "type": "object",
            "required": ["address", "email", "name", "phone"],
            "properties": {
                "address": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "handler.contactResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.dimensionsRequest": {
            "type": "object",
            "required": ["height_cm", "length_cm", "width_cm"],
            "properties": {
                "height_cm": {"type": "number"},
                "length_cm": {"type": "number"},
                "width_cm": {"type": "number"}
            }
        },
        "handler.dimensionsResponse": {
            "type": "object",
            "properties": {
                "height_cm": {"type": "number"},
                "length_cm": {"type": "number"},
                "width_cm": {"type": "number"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "violations": {"type": "array", "items": {"$ref": "#/definitions/domain.FieldViolation"}}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.parcelLinks": {
            "type": "object",
            "properties": {
                "self": {"type": "string"},
                "track": {"type": "string"}
            }
        },
        "handler.parcelRequest": {
            "type": "object",
            "required": ["delivery_type", "dimensions", "parcel_type", "recipient", "sender", "weight_kg"],
            "properties": {
                "delivery_type": {"type": "string"},
                "description": {"type": "string"},
                "dimensions": {"$ref": "#/definitions/handler.dimensionsRequest"},
                "parcel_type": {"type": "string"},
                "recipient": {"$ref": "#/definitions/handler.contactRequest"},
                "sender": {"$ref": "#/definitions/handler.contactRequest"},
                "weight_kg": {"type": "number"}
            }
        },
        "handler.parcelResponse": {
            "type": "object",
            "properties": {
                "_links": {"$ref": "#/definitions/handler.parcelLinks"},
                "actual_delivery_date": {"type": "string"},
                "created_at": {"type": "string"},
                "delivery_type": {"type": "string"},
                "description": {"type": "string"},
                "dimensions": {"$ref": "#/definitions/handler.dimensionsResponse"},
                "estimated_delivery_date": {"type": "string"},
                "id": {"type": "string"},
                "parcel_type": {"type": "string"},
                "recipient": {"$ref": "#/definitions/handler.contactResponse"},
                "sender": {"$ref": "#/definitions/handler.contactResponse"},
                "shipping_cost": {"type": "number"},
                "status": {"type": "string"},
                "tracking_number": {"type": "string"},
                "updated_at": {"type": "string"},
                "weight_kg": {"type": "number"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}},
                "status": {"type": "string"}
            }
        },
        "handler.statusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string"}
            }
        },
        "handler.welcomeResponse": {
            "type": "object",
            "properties": {
                "endpoints": {"type": "object", "additionalProperties": {"type": "string"}},
                "message": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Online Parcel Booking API",
	Description:      "Parcel booking, pricing and tracking service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
