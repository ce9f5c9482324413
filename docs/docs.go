// Package docs registers the OpenAPI document served by gin-swagger.
// Regenerate with: swag init -g cmd/api-server/main.go -o docs
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
        "/api/books": {
            "get": {
                "description": "All books ordered by title",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.BookDTO"}}}
                }
            },
            "put": {
                "description": "Rewrites title, author and isbn. The loan state is not touched.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Edit a book",
                "parameters": [
                    {"description": "Book", "name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BookEditDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BookDTO"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "description": "New books start out Available",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Add a book",
                "parameters": [
                    {"description": "Book", "name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BookAddDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BookDTO"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/books/{id}": {
            "get": {
                "description": "The book and, when it is on loan, its borrower",
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Get a book",
                "parameters": [
                    {"type": "integer", "description": "Book ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BookDTOWithUser"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["books"],
                "summary": "Delete a book",
                "parameters": [
                    {"type": "integer", "description": "Book ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/loans/feed": {
            "get": {
                "description": "Websocket stream of borrowed/returned events as JSON text frames",
                "tags": ["loans"],
                "summary": "Stream loan events",
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"$ref": "#/definitions/events.LoanEvent"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/users": {
            "get": {
                "description": "All users ordered by surname, then forename",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.UserDTO"}}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Edit a user",
                "parameters": [
                    {"description": "User", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UserEditDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserDTO"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Add a user",
                "parameters": [
                    {"description": "User", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UserAddDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserDTO"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/users/Borrow": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["loans"],
                "summary": "Borrow a book",
                "parameters": [
                    {"description": "Borrower and book", "name": "loan", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BorrowDTO"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Book has been checked out by someone else", "schema": {"type": "string"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/users/Return": {
            "post": {
                "description": "The book id comes from ?bookId= or from a {\"bookId\": n} body",
                "consumes": ["application/json"],
                "tags": ["loans"],
                "summary": "Return a book",
                "parameters": [
                    {"type": "integer", "description": "Book ID", "name": "bookId", "in": "query"},
                    {"description": "Book", "name": "loan", "in": "body", "schema": {"$ref": "#/definitions/dto.ReturnDTO"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Book has not been checked out", "schema": {"type": "string"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/users/{id}": {
            "get": {
                "description": "The user with the books currently on loan to them",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserDTOWithBooks"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "description": "Books on loan to the user become Available again",
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found"}
                }
            }
        }
    },
    "definitions": {
        "events.LoanEvent": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["borrowed", "returned"]},
                "bookId": {"type": "integer"},
                "userId": {"type": "integer"},
                "occurredAt": {"type": "string", "format": "date-time"}
            }
        },
        "dto.BookAddDTO": {
            "type": "object",
            "required": ["author", "isbn", "title"],
            "properties": {
                "author": {"type": "string"},
                "isbn": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.BookDTO": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "availability": {"$ref": "#/definitions/models.Availability"},
                "id": {"type": "integer"},
                "isbn": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.BookDTOWithUser": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "availability": {"$ref": "#/definitions/models.Availability"},
                "borrowedBy": {"$ref": "#/definitions/dto.UserDTO"},
                "id": {"type": "integer"},
                "isbn": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.BookEditDTO": {
            "type": "object",
            "required": ["author", "isbn", "title"],
            "properties": {
                "author": {"type": "string"},
                "id": {"type": "integer"},
                "isbn": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.BorrowDTO": {
            "type": "object",
            "properties": {
                "bookId": {"type": "integer"},
                "userId": {"type": "integer"}
            }
        },
        "dto.ReturnDTO": {
            "type": "object",
            "properties": {
                "bookId": {"type": "integer"}
            }
        },
        "dto.UserAddDTO": {
            "type": "object",
            "required": ["forename", "surname"],
            "properties": {
                "forename": {"type": "string"},
                "surname": {"type": "string"}
            }
        },
        "dto.UserDTO": {
            "type": "object",
            "properties": {
                "forename": {"type": "string"},
                "id": {"type": "integer"},
                "surname": {"type": "string"}
            }
        },
        "dto.UserDTOWithBooks": {
            "type": "object",
            "properties": {
                "books": {"type": "array", "items": {"$ref": "#/definitions/dto.BookDTO"}},
                "forename": {"type": "string"},
                "id": {"type": "integer"},
                "surname": {"type": "string"}
            }
        },
        "dto.UserEditDTO": {
            "type": "object",
            "required": ["forename", "surname"],
            "properties": {
                "forename": {"type": "string"},
                "id": {"type": "integer"},
                "surname": {"type": "string"}
            }
        },
        "models.Availability": {
            "type": "string",
            "enum": ["Available", "CheckedOut"],
            "x-enum-varnames": ["Available", "CheckedOut"]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "LibraryHub API",
	Description:      "Book catalog with borrow and return.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
