// Package swagger registers the OpenAPI document for the portfolio API.
// The template mirrors the annotations in cmd/api and the REST handlers.
package swagger

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
        "/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Project"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a project",
                "parameters": [
                    {"description": "Project", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/commands.CreateProjectCommand"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/projects/featured": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List featured projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Project"}}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Project"}},
                    "400": {"description": "Invalid ID format", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Replace a project",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Project", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/commands.CreateProjectCommand"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Update some fields of a project",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/commands.PatchProjectCommand"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Delete a project",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/testimonials": {
            "get": {
                "produces": ["application/json"],
                "tags": ["testimonials"],
                "summary": "List testimonials",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Testimonial"}}}
                }
            },
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["testimonials"],
                "summary": "Create a testimonial",
                "parameters": [
                    {"description": "Testimonial", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/commands.CreateTestimonialCommand"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Testimonial"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/testimonials/featured": {
            "get": {
                "produces": ["application/json"],
                "tags": ["testimonials"],
                "summary": "List featured testimonials",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Testimonial"}}}
                }
            }
        },
        "/testimonials/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["testimonials"],
                "summary": "Get a testimonial",
                "parameters": [
                    {"type": "integer", "description": "Testimonial ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Testimonial"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["testimonials"],
                "summary": "Replace a testimonial",
                "parameters": [
                    {"type": "integer", "description": "Testimonial ID", "name": "id", "in": "path", "required": true},
                    {"description": "Testimonial", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/commands.CreateTestimonialCommand"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Testimonial"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["testimonials"],
                "summary": "Update some fields of a testimonial",
                "parameters": [
                    {"type": "integer", "description": "Testimonial ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/commands.PatchTestimonialCommand"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Testimonial"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["testimonials"],
                "summary": "Delete a testimonial",
                "parameters": [
                    {"type": "integer", "description": "Testimonial ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Start an admin session",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Sets the token cookie", "schema": {"$ref": "#/definitions/handlers.SessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "End the admin session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            }
        },
        "/auth/verify": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Report whether the session cookie is valid",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SessionResponse"}}
                }
            }
        },
        "/github/repos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["integrations"],
                "summary": "Public GitHub repositories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Repository"}}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/leetcode/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["integrations"],
                "summary": "LeetCode solve counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.CodingStats"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/integrations/refresh": {
            "post": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["integrations"],
                "summary": "Drop cached integration responses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "commands.CreateProjectCommand": {
            "type": "object",
            "required": ["title", "description", "longDescription", "technologies", "image", "githubUrl"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "longDescription": {"type": "string"},
                "technologies": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "image": {"type": "string"},
                "projectUrl": {"type": "string"},
                "githubUrl": {"type": "string"},
                "challenges": {"type": "array", "items": {"type": "string"}},
                "solutions": {"type": "array", "items": {"type": "string"}},
                "featured": {"type": "boolean"}
            }
        },
        "commands.PatchProjectCommand": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "longDescription": {"type": "string"},
                "technologies": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "image": {"type": "string"},
                "projectUrl": {"type": "string"},
                "githubUrl": {"type": "string"},
                "challenges": {"type": "array", "items": {"type": "string"}},
                "solutions": {"type": "array", "items": {"type": "string"}},
                "featured": {"type": "boolean"}
            }
        },
        "commands.CreateTestimonialCommand": {
            "type": "object",
            "required": ["name", "role", "content", "image"],
            "properties": {
                "name": {"type": "string", "minLength": 2},
                "role": {"type": "string", "minLength": 2},
                "company": {"type": "string"},
                "content": {"type": "string", "minLength": 10},
                "image": {"type": "string"},
                "featured": {"type": "boolean"}
            }
        },
        "commands.PatchTestimonialCommand": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "minLength": 2},
                "role": {"type": "string", "minLength": 2},
                "company": {"type": "string"},
                "content": {"type": "string", "minLength": 10},
                "image": {"type": "string"},
                "featured": {"type": "boolean"}
            }
        },
        "entities.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "longDescription": {"type": "string"},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "image": {"type": "string"},
                "projectUrl": {"type": "string"},
                "githubUrl": {"type": "string"},
                "challenges": {"type": "array", "items": {"type": "string"}},
                "solutions": {"type": "array", "items": {"type": "string"}},
                "featured": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "entities.Testimonial": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "company": {"type": "string"},
                "content": {"type": "string"},
                "image": {"type": "string"},
                "featured": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "entities.Repository": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "url": {"type": "string"},
                "homepage": {"type": "string"},
                "language": {"type": "string"},
                "stars": {"type": "integer"},
                "forks": {"type": "integer"},
                "topics": {"type": "array", "items": {"type": "string"}},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "entities.CodingStats": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "totalSolved": {"type": "integer"},
                "easySolved": {"type": "integer"},
                "mediumSolved": {"type": "integer"},
                "hardSolved": {"type": "integer"},
                "ranking": {"type": "integer"}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "boolean"},
                "type": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "request_id": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handlers.SessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "user": {
                    "type": "object",
                    "properties": {
                        "username": {"type": "string"},
                        "role": {"type": "string"}
                    }
                },
                "expiresAt": {"type": "string", "format": "date-time"}
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Portfolio API",
	Description:      "Projects, testimonials and profile integrations for a personal portfolio site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
