// Package docs registers the OpenAPI description of the JSON API with swag
// so /swagger can serve it.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe over the database and cart store",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create a customer account",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "The authenticated user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/Category"}}}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Create a category with its image",
                "parameters": [
                    {"in": "formData", "name": "name", "type": "string", "required": true},
                    {"in": "formData", "name": "description", "type": "string"},
                    {"in": "formData", "name": "image", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Category"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/subcategories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List subcategories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/Subcategory"}}}}}
                }
            }
        },
        "/api/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"in": "query", "name": "limit", "type": "integer", "default": 10},
                    {"in": "query", "name": "offset", "type": "integer", "default": 0},
                    {"in": "query", "name": "sort", "type": "string", "enum": ["newest", "rating", "price_asc", "price_desc", "name"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductPage"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product with its image",
                "parameters": [
                    {"in": "formData", "name": "name", "type": "string", "required": true},
                    {"in": "formData", "name": "price", "type": "number", "required": true},
                    {"in": "formData", "name": "quantity", "type": "integer", "required": true},
                    {"in": "formData", "name": "subcategory", "type": "string", "required": true},
                    {"in": "formData", "name": "brand", "type": "string"},
                    {"in": "formData", "name": "description", "type": "string"},
                    {"in": "formData", "name": "image", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/products/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Case-insensitive keyword search over name, brand and description",
                "parameters": [
                    {"in": "query", "name": "q", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/products/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["products"],
                "summary": "Download every product as an XLSX workbook",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Delete a product and its image",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/cart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "The session cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Cart"}}
                }
            }
        },
        "/api/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Add a product to the session cart",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CartItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Cart"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/cart/invoice": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Invoice preview for the session cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Invoice"}}
                }
            }
        },
        "/api/cart/checkout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Turn the session cart into a stored invoice",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Invoice"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "phone_number": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "AuthResponse": {
            "type": "object",
            "properties": {
                "login": {"type": "string"},
                "token": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "USER"]},
                "expires_at": {"type": "string", "format": "date-time"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "phone_number": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "USER"]},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "Subcategory": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category_id": {"type": "integer"},
                "category_name": {"type": "string"}
            }
        },
        "Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "subcategory_id": {"type": "integer"},
                "subcategory_name": {"type": "string"},
                "brand": {"type": "string"},
                "image": {"type": "string"},
                "rating": {"type": "number"},
                "quantity": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "ProductPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Product"}},
                "total": {"type": "integer"}
            }
        },
        "ProductList": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Product"}}
            }
        },
        "CartItemRequest": {
            "type": "object",
            "required": ["product_id", "quantity"],
            "properties": {
                "product_id": {"type": "integer"},
                "quantity": {"type": "integer", "minimum": 1}
            }
        },
        "Cart": {
            "type": "object",
            "properties": {
                "session_id": {"type": "string"},
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "product_id": {"type": "integer"},
                            "name": {"type": "string"},
                            "price": {"type": "number"},
                            "image": {"type": "string"},
                            "quantity": {"type": "integer"}
                        }
                    }
                },
                "updated_at": {"type": "string", "format": "date-time"},
                "count": {"type": "integer"},
                "subtotal": {"type": "number"}
            }
        },
        "Invoice": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "number": {"type": "string"},
                "lines": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "product_id": {"type": "integer"},
                            "name": {"type": "string"},
                            "unit_price": {"type": "number"},
                            "quantity": {"type": "integer"},
                            "total": {"type": "number"}
                        }
                    }
                },
                "subtotal": {"type": "number"},
                "tax_percent": {"type": "number"},
                "tax": {"type": "number"},
                "total": {"type": "number"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Catalogue, accounts, session cart and invoices behind the storefront pages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
