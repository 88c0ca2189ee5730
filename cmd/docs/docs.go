// Package docs holds the Swagger document served at /swagger. It is maintained
// by hand in the layout swaggo/swag generates.
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
        "/accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the account of the logged-in user together with its bills",
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get the caller's account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "400": {"description": "Account does not exist", "schema": {"$ref": "#/definitions/dto.ErrorDetails"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorDetails"}}
                }
            }
        },
        "/accounts/create-account": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Opens the logged-in user's account with an opening balance of at least 100",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Open an account",
                "parameters": [
                    {"description": "Opening balance", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAccountRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "400": {"description": "Validation error or account already exists", "schema": {"$ref": "#/definitions/dto.ErrorDetails"}}
                }
            }
        },
        "/accounts/deposit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Deposit money",
                "parameters": [
                    {"description": "Amount", "name": "deposit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.DepositRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorDetails"}}
                }
            }
        },
        "/accounts/withdraw": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Withdraw money",
                "parameters": [
                    {"description": "Amount", "name": "withdraw", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.WithdrawRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorDetails"}}
                }
            }
        },
        "/accounts/transfer": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Transfer money to another account",
                "parameters": [
                    {"description": "Receiver and amount", "name": "transfer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TransferRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransferResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorDetails"}}
                }
            }
        },
        "/support/records": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Filtered, sorted and paged listing of every record. Page metadata is returned in the X-Pagination header.",
                "produces": ["application/json"],
                "tags": ["support"],
                "summary": "List records",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.RecordResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorDetails"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "description": "Returns an access token and a refresh token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "login", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "400": {"description": "Incorrect username or password", "schema": {"$ref": "#/definitions/dto.ErrorDetails"}}
                }
            }
        }
    },
    "definitions": {
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "balance": {"type": "integer"},
                "dailySpend": {"type": "integer"},
                "dailyLimit": {"type": "integer"},
                "operationLimit": {"type": "integer"},
                "createdAt": {"type": "string"},
                "bills": {"type": "array", "items": {"$ref": "#/definitions/dto.BillResponse"}}
            }
        },
        "dto.BillResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "accountId": {"type": "integer"},
                "amount": {"type": "integer"},
                "lastPayTime": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": ["balance"],
            "properties": {"balance": {"type": "integer", "minimum": 100}}
        },
        "dto.DepositRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {"amount": {"type": "integer", "minimum": 1}}
        },
        "dto.WithdrawRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {"amount": {"type": "integer", "minimum": 1}}
        },
        "dto.TransferRequest": {
            "type": "object",
            "required": ["amount", "receiverAccountId"],
            "properties": {
                "amount": {"type": "integer", "minimum": 1},
                "receiverAccountId": {"type": "integer"}
            }
        },
        "dto.TransferResponse": {
            "type": "object",
            "properties": {
                "sender": {"$ref": "#/definitions/dto.AccountResponse"},
                "receiver": {"$ref": "#/definitions/dto.AccountResponse"}
            }
        },
        "dto.RecordResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "timeStamp": {"type": "string"},
                "operationType": {"type": "string"},
                "amount": {"type": "integer"},
                "userId": {"type": "integer"},
                "accountId": {"type": "integer"},
                "receiverAccountId": {"type": "integer"},
                "isSuccessfull": {"type": "boolean"},
                "errorMessage": {"type": "string"},
                "isPending": {"type": "boolean"}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["password", "userName"],
            "properties": {
                "password": {"type": "string"},
                "userName": {"type": "string"}
            }
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "refreshToken": {"type": "string"}
            }
        },
        "dto.ErrorDetails": {
            "type": "object",
            "properties": {
                "statusCode": {"type": "integer"},
                "message": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Banking Backoffice API",
	Description:      "Ledger core of the banking back-office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
