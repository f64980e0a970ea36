package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Startupathon API",
        "description": "Admin content API for challenges, completers, subscribers and founders.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Administrator login and registration"},
        {"name": "Public", "description": "Visible content for the public site"},
        {"name": "Challenges", "description": "Challenge administration"},
        {"name": "Completers", "description": "Completer administration"},
        {"name": "Subscribers", "description": "Newsletter subscribers"},
        {"name": "Founders", "description": "Founder directory"},
        {"name": "Probes", "description": "Liveness and store status"}
    ],
    "paths": {
        "/api/health": {
            "get": {"tags": ["Probes"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/api/db-status": {
            "get": {
                "tags": ["Probes"],
                "summary": "Data store connectivity",
                "responses": {
                    "200": {"description": "Connected"},
                    "503": {"description": "Store unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in as administrator",
                "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"},
                    "403": {"description": "Not an administrator"}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register an administrator (open only while no users exist)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Token required"},
                    "409": {"description": "User already exists"}
                }
            }
        },
        "/api/auth/me": {
            "get": {"tags": ["Auth"], "summary": "Current administrator", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/challenges": {
            "get": {"tags": ["Public"], "summary": "List visible challenges", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Challenge"}}}}}
        },
        "/api/challenges/{id}": {
            "get": {
                "tags": ["Public"],
                "summary": "Get a visible challenge",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Challenge not found"}}
            }
        },
        "/api/completers": {
            "get": {"tags": ["Public"], "summary": "List visible completers", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Completer"}}}}}
        },
        "/api/completers/{id}": {
            "get": {
                "tags": ["Public"],
                "summary": "Get a visible completer",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Completer not found"}}
            }
        },
        "/api/subscribers": {
            "post": {
                "tags": ["Public"],
                "summary": "Subscribe to the newsletter",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SubscriberRequest"}}],
                "responses": {"201": {"description": "Subscribed"}, "400": {"description": "Invalid or already subscribed"}}
            }
        },
        "/api/admin/challenges": {
            "get": {"tags": ["Challenges"], "summary": "List all challenges", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Challenges"],
                "summary": "Create a challenge",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data", "application/json"],
                "parameters": [
                    {"in": "formData", "name": "title", "type": "string", "required": true},
                    {"in": "formData", "name": "funding", "type": "string", "required": true},
                    {"in": "formData", "name": "deadline", "type": "string", "format": "date", "required": true},
                    {"in": "formData", "name": "description", "type": "string", "required": true},
                    {"in": "formData", "name": "visible", "type": "boolean"},
                    {"in": "formData", "name": "image", "type": "file"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation or upload error"}}
            }
        },
        "/api/admin/challenges/{id}": {
            "get": {"tags": ["Challenges"], "summary": "Get a challenge", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Challenge not found"}}},
            "put": {"tags": ["Challenges"], "summary": "Update a challenge", "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data", "application/json"], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Challenge not found"}}},
            "delete": {"tags": ["Challenges"], "summary": "Delete a challenge", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "Deleted"}}}
        },
        "/api/admin/completers": {
            "get": {"tags": ["Completers"], "summary": "List all completers", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Completers"],
                "summary": "Create a completer",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data", "application/json"],
                "parameters": [
                    {"in": "formData", "name": "projectName", "type": "string", "required": true},
                    {"in": "formData", "name": "profile", "type": "string", "required": true},
                    {"in": "formData", "name": "position", "type": "string", "required": true},
                    {"in": "formData", "name": "description", "type": "string", "required": true},
                    {"in": "formData", "name": "funding", "type": "string", "required": true},
                    {"in": "formData", "name": "linkedinUrl", "type": "string", "required": true},
                    {"in": "formData", "name": "status", "type": "string", "enum": ["active", "inactive"]},
                    {"in": "formData", "name": "visible", "type": "boolean"},
                    {"in": "formData", "name": "profilePicture", "type": "file"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation or upload error"}}
            }
        },
        "/api/admin/completers/{id}": {
            "get": {"tags": ["Completers"], "summary": "Get a completer", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Completer not found"}}},
            "put": {"tags": ["Completers"], "summary": "Update a completer", "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data", "application/json"], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Completer not found"}}},
            "delete": {"tags": ["Completers"], "summary": "Delete a completer", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "Deleted"}}}
        },
        "/api/admin/subscribers": {
            "get": {
                "tags": ["Subscribers"],
                "summary": "List subscribers",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "page", "type": "integer"},
                    {"in": "query", "name": "search", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {"tags": ["Subscribers"], "summary": "Add a subscriber", "security": [{"BearerAuth": []}], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SubscriberRequest"}}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/admin/subscribers/export": {
            "get": {
                "tags": ["Subscribers"],
                "summary": "Export subscribers",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"]},
                    {"in": "query", "name": "search", "type": "string"}
                ],
                "responses": {"200": {"description": "File download"}}
            }
        },
        "/api/admin/subscribers/{id}": {
            "get": {"tags": ["Subscribers"], "summary": "Get a subscriber", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Subscriber not found"}}},
            "put": {"tags": ["Subscribers"], "summary": "Change a subscriber email", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SubscriberRequest"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Email already exists"}}},
            "delete": {"tags": ["Subscribers"], "summary": "Delete a subscriber", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "Deleted"}, "404": {"description": "Subscriber not found"}}}
        },
        "/api/admin/founders": {
            "get": {"tags": ["Founders"], "summary": "List founders", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Founders"], "summary": "Create a founder", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/admin/founders/{id}": {
            "get": {"tags": ["Founders"], "summary": "Get a founder", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Founder not found"}}},
            "put": {"tags": ["Founders"], "summary": "Update a founder", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Founders"], "summary": "Delete a founder", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "Deleted"}}}
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6}, "name": {"type": "string"}}
        },
        "SubscriberRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {"email": {"type": "string"}}
        },
        "Challenge": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "funding": {"type": "string"},
                "deadline": {"type": "string", "format": "date-time"},
                "description": {"type": "string"},
                "visible": {"type": "boolean"},
                "image": {"type": "string"},
                "imageUrl": {"type": "string"}
            }
        },
        "Completer": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "projectName": {"type": "string"},
                "profile": {"type": "string"},
                "position": {"type": "string"},
                "description": {"type": "string"},
                "funding": {"type": "string"},
                "linkedinUrl": {"type": "string"},
                "profilePicture": {"type": "string"},
                "profilePictureUrl": {"type": "string"},
                "status": {"type": "string", "enum": ["active", "inactive"]},
                "visible": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
