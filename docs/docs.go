// Package docs holds the OpenAPI document served at /swagger/doc.json.
// It is kept by hand in the layout `swag init -g main.go` writes, so running
// that command replaces it in place. main_test.go checks that every routed
// path and method is documented and nothing else is.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.healthResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "description": "Creates a new user and returns an access token for it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "User Signup",
                "parameters": [
                    {"description": "User signup details", "name": "signupBody", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "User created, token provided", "schema": {"$ref": "#/definitions/auth.TokenResponse"}},
                    "400": {"description": "Bad Request - Invalid input or plan", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "409": {"description": "Conflict - User already exists (username or email)", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Logs in with a username or email and returns an access token.\nAccepts a JSON body or an OAuth2-style form (username, password).",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "User Login",
                "parameters": [
                    {"description": "User login credentials", "name": "loginBody", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful, token provided", "schema": {"$ref": "#/definitions/auth.TokenResponse"}},
                    "400": {"description": "Bad Request - Invalid input or missing fields", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Unauthorized - Invalid credentials", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/dashboard/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the caller's profile and the features of their package tier.",
                "produces": ["application/json"],
                "tags": ["Tailored"],
                "summary": "Tier Dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tailored.Dashboard"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/api/content": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the content feed for the caller's package tier.",
                "produces": ["application/json"],
                "tags": ["Tailored"],
                "summary": "Tier Content",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tailored.ContentResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/account/plan": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Account"],
                "summary": "Current Plan",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tailored.PlanResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Moves the caller to another package tier.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Account"],
                "summary": "Change Plan",
                "parameters": [
                    {"description": "New package tier", "name": "planBody", "in": "body", "required": true, "schema": {"$ref": "#/definitions/tailored.PlanUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/tailored.PlanResponse"}},
                    "400": {"description": "Bad Request - Unknown plan", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "User no longer exists", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "A description of the error"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "auth.LoginRequest": {
            "type": "object",
            "properties": {
                "login": {"type": "string", "example": "user@example.com"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "example": "strongpassword123"}
            }
        },
        "auth.SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "user@example.com"},
                "username": {"type": "string", "example": "newuser"},
                "password": {"type": "string", "example": "strongpassword123"},
                "display_name": {"type": "string", "example": "New User"},
                "package_tier": {"type": "string", "example": "free"}
            }
        },
        "auth.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."},
                "token_type": {"type": "string", "example": "bearer"},
                "expires_in": {"type": "integer", "example": 86400},
                "expires_at": {"type": "string", "example": "2026-01-02T12:00:00Z"}
            }
        },
        "main.healthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "service": {"type": "string", "example": "Tailored API Response Backend"}
            }
        },
        "plans.Feature": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "label": {"type": "string"},
                "enabled": {"type": "boolean"},
                "limit": {"type": "integer"}
            }
        },
        "tailored.ContentResponse": {
            "type": "object",
            "properties": {
                "tier": {"type": "string", "example": "pro"},
                "summary": {"type": "string"},
                "data_basic": {"type": "array", "items": {"type": "string"}},
                "data_pro": {"type": "array", "items": {"type": "string"}},
                "data_enterprise": {"type": "array", "items": {"type": "string"}},
                "analytics": {"type": "object", "additionalProperties": true}
            }
        },
        "tailored.Dashboard": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/users.PublicUser"},
                "tier": {"type": "string", "example": "pro"},
                "features": {"type": "array", "items": {"$ref": "#/definitions/plans.Feature"}}
            }
        },
        "tailored.PlanResponse": {
            "type": "object",
            "properties": {
                "package_tier": {"type": "string", "example": "pro"}
            }
        },
        "tailored.PlanUpdateRequest": {
            "type": "object",
            "properties": {
                "package_tier": {"type": "string", "example": "enterprise"}
            }
        },
        "users.PublicUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "johndoe"},
                "email": {"type": "string", "example": "johndoe@example.com"},
                "display_name": {"type": "string", "example": "John Doe"},
                "package_tier": {"type": "string", "example": "free"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize",
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
	Title:            "Tailored API",
	Description:      "Token-authenticated API whose responses are shaped by the caller's package tier.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
