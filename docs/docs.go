// Package docs holds the OpenAPI description of the HTTP API served at /docs/.
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
        "/api/register": {
            "post": {
                "description": "Registers a user and starts a session (cookie \"token\").",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.registerInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Missing fields or user already exists", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.loginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "description": "Destroys the current session, if any, and clears the cookie.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/user": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/onboarding": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Onboarding"],
                "summary": "Get onboarding answers",
                "responses": {
                    "200": {"description": "Stored fields plus completed/completedAt, or {}", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "post": {
                "description": "Merges the submitted fields into the stored profile and marks onboarding completed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Onboarding"],
                "summary": "Save onboarding answers",
                "parameters": [
                    {"description": "Free-form onboarding fields", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/profile": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Get profile",
                "responses": {
                    "200": {"description": "Stored fields plus updatedAt, or {}", "schema": {"type": "object"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            },
            "put": {
                "description": "Merges the submitted fields into the profile. A \"name\" field also renames the user.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profile"],
                "summary": "Update profile",
                "parameters": [
                    {"description": "Free-form profile fields", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.Payload"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/chat": {
            "post": {
                "description": "type is one of general, daily-planning, evening-checkin (default general).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Chat with the assistant",
                "parameters": [
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.chatInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Message is required", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/chats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Chat history",
                "parameters": [
                    {"type": "integer", "description": "Only the newest N messages", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ChatMessage"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/chats/archives": {
            "get": {
                "description": "Presigned download links for history moved out by the retention policy.",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Archived chat history",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/repositories.ArchiveLink"}}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/daily-plan": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Planning"],
                "summary": "Generate today's study plan",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Onboarding not completed", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/analyze-progress": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Planning"],
                "summary": "Score today's work against the plan",
                "parameters": [
                    {"description": "Planned and actual work", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.progressInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.ProgressAnalysis"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/test": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Backend status",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/auth/google/login": {
            "get": {
                "tags": ["Auth"],
                "summary": "Start Google sign-in",
                "parameters": [
                    {"type": "string", "description": "login or register", "name": "redirect", "in": "query"}
                ],
                "responses": {
                    "307": {"description": "Temporary Redirect"},
                    "404": {"description": "Google sign-in not configured", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        },
        "/api/auth/google/callback": {
            "get": {
                "tags": ["Auth"],
                "summary": "Finish Google sign-in",
                "responses": {
                    "307": {"description": "Temporary Redirect"},
                    "400": {"description": "Invalid OAuth state", "schema": {"$ref": "#/definitions/utils.ErrorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.chatInput": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "type": {"type": "string"}}
        },
        "handlers.loginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.progressInput": {
            "type": "object",
            "properties": {"actualWork": {"type": "string"}, "todayPlan": {"type": "string"}}
        },
        "handlers.registerInput": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.ChatMessage": {
            "type": "object",
            "properties": {
                "aiResponse": {"type": "string"},
                "id": {"type": "integer"},
                "timestamp": {"type": "string"},
                "type": {"type": "string"},
                "userMessage": {"type": "string"}
            }
        },
        "models.ProgressAnalysis": {
            "type": "object",
            "properties": {
                "feedback": {"type": "string"},
                "motivation": {"type": "string"},
                "score": {"type": "integer"},
                "suggestions": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "repositories.ArchiveLink": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "lastModified": {"type": "string"},
                "size": {"type": "integer"},
                "url": {"type": "string"}
            }
        },
        "utils.ErrorPayload": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "success": {"type": "boolean"}}
        },
        "utils.Payload": {
            "type": "object",
            "properties": {"data": {}, "message": {"type": "string"}, "success": {"type": "boolean"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Goal AI API",
	Description:      "Backend for the Goal AI JEE/NEET study companion.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
