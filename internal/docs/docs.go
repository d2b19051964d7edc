// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/ledger": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Get ledger",
                "responses": {"200": {"description": "Ledger", "schema": {"$ref": "#/definitions/handlers.LedgerResponse"}}}
            }
        },
        "/ledger/balance": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Set initial balance",
                "parameters": [{"description": "Balance and currency", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SetBalanceRequest"}}],
                "responses": {
                    "200": {"description": "Ledger", "schema": {"$ref": "#/definitions/handlers.LedgerResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/ledger/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Export ledger",
                "responses": {"200": {"description": "Snapshot", "schema": {"$ref": "#/definitions/models.Snapshot"}}}
            }
        },
        "/ledger/import": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Import ledger",
                "parameters": [{"description": "Snapshot", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Snapshot"}}],
                "responses": {
                    "200": {"description": "Ledger", "schema": {"$ref": "#/definitions/handlers.LedgerResponse"}},
                    "400": {"description": "Invalid snapshot", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default 20, max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Transactions"}, "400": {"description": "Invalid pagination", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create transaction",
                "parameters": [{"description": "Transaction details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TransactionRequest"}}],
                "responses": {
                    "201": {"description": "Transaction created", "schema": {"$ref": "#/definitions/handlers.MutationResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get transaction",
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Transaction", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Update transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"description": "Replacement", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated transaction", "schema": {"$ref": "#/definitions/handlers.MutationResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Delete transaction",
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Transaction deleted", "schema": {"$ref": "#/definitions/handlers.MutationResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/achievements": {
            "get": {
                "produces": ["application/json"],
                "tags": ["achievements"],
                "summary": "List achievements",
                "responses": {"200": {"description": "Achievements with unlock flags"}}
            }
        },
        "/analytics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Transaction summary",
                "parameters": [
                    {"type": "string", "description": "Search over name and description", "name": "q", "in": "query"},
                    {"enum": ["all", "day", "week", "month", "year"], "type": "string", "description": "Time range", "name": "range", "in": "query"}
                ],
                "responses": {"200": {"description": "Summary"}, "400": {"description": "Invalid range", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            }
        },
        "/currencies": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exchange"],
                "summary": "Supported currencies",
                "responses": {"200": {"description": "Currencies"}}
            }
        },
        "/exchange": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exchange"],
                "summary": "Convert an amount",
                "parameters": [
                    {"type": "string", "description": "Source currency", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "Target currency", "name": "to", "in": "query", "required": true},
                    {"type": "string", "description": "Amount (default 1)", "name": "amount", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Quote"},
                    "400": {"description": "Unsupported currency", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Failed to fetch exchange rate", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/exchange/rates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["exchange"],
                "summary": "Latest rates",
                "responses": {"200": {"description": "Rate table"}, "502": {"description": "Failed to fetch exchange rate", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            }
        },
        "/events": {
            "get": {
                "tags": ["events"],
                "summary": "Achievement event stream (websocket)",
                "responses": {"101": {"description": "Switching protocols"}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}
        },
        "handlers.LedgerResponse": {
            "type": "object",
            "properties": {"ledger": {"type": "object"}}
        },
        "handlers.MutationResponse": {
            "type": "object",
            "properties": {
                "balance": {"type": "string"},
                "transaction": {"$ref": "#/definitions/models.Transaction"},
                "unlocked": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handlers.SetBalanceRequest": {
            "type": "object",
            "required": ["amount", "currency"],
            "properties": {"amount": {"type": "string", "example": "1000.00"}, "currency": {"type": "string", "example": "USD"}}
        },
        "handlers.TransactionRequest": {
            "type": "object",
            "required": ["amount", "name", "type"],
            "properties": {
                "amount": {"type": "string", "example": "5.00"},
                "category": {"type": "string", "example": "Restaurants"},
                "date": {"type": "string", "example": "2024-03-01T08:00:00Z"},
                "description": {"type": "string"},
                "name": {"type": "string", "example": "Coffee"},
                "type": {"type": "string", "example": "expense"}
            }
        },
        "models.Snapshot": {
            "type": "object",
            "properties": {
                "achievements": {"type": "array", "items": {"type": "string"}},
                "balance": {"type": "string"},
                "currency": {"type": "string"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Money Manager API",
	Description:      "Single-user ledger with transactions, achievements and exchange rates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
