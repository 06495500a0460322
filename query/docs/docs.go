// Package docs registers the OpenAPI document of the read API with swag.
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
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "BearerJWTToken in Authorization Header",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "res.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "body": {"type": "object"}
            }
        }
    },
    "paths": {
        "/users/{email}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["users"],
                "summary": "Get the authenticated user, me is an alias",
                "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}},
                    "404": {"description": "user not found", "schema": {"$ref": "#/definitions/res.Response"}}
                }
            }
        },
        "/cotypes": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["cotypes"],
                "summary": "Get cotypes",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/batches": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["batches"],
                "summary": "Get batches",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/batches/{idBatch}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["batches"],
                "summary": "Get a batch with name list and semester summaries",
                "parameters": [{"type": "string", "name": "idBatch", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}},
                    "404": {"description": "batch not found", "schema": {"$ref": "#/definitions/res.Response"}}
                }
            }
        },
        "/batches/{idBatch}/namelists": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["namelists"],
                "summary": "Get the name lists of a batch",
                "parameters": [{"type": "string", "name": "idBatch", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/batches/{idBatch}/semesters": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["semesters"],
                "summary": "Get the semesters of a batch",
                "parameters": [{"type": "string", "name": "idBatch", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/batches/{idBatch}/students": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["namelists"],
                "summary": "Search the students of a batch",
                "parameters": [
                    {"type": "string", "name": "idBatch", "in": "path", "required": true},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/namelists/{idNamelist}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["namelists"],
                "summary": "Get a name list",
                "parameters": [{"type": "string", "name": "idNamelist", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/semesters/{idSemester}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["semesters"],
                "summary": "Get a semester with sheet summaries",
                "parameters": [{"type": "string", "name": "idSemester", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/semesters/{idSemester}/courses": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["courses"],
                "summary": "Get the course lists of a semester",
                "parameters": [{"type": "string", "name": "idSemester", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/semesters/{idSemester}/pts": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["pts"],
                "summary": "Get the periodic tests of a semester",
                "parameters": [{"type": "string", "name": "idSemester", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/semesters/{idSemester}/sees": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["sees"],
                "summary": "Get the SEE lists of a semester",
                "parameters": [{"type": "string", "name": "idSemester", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/courses/{idList}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["courses"],
                "summary": "Get a course list",
                "parameters": [{"type": "string", "name": "idList", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/pts/{idList}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["pts"],
                "summary": "Get a periodic test",
                "parameters": [{"type": "string", "name": "idList", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/sees/{idList}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["sees"],
                "summary": "Get a SEE list",
                "parameters": [{"type": "string", "name": "idList", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}}}
            }
        },
        "/attainment/{idBatch}/{idSemester}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["attainment"],
                "summary": "Get co-attainment sorted by rollno",
                "parameters": [
                    {"type": "string", "name": "idBatch", "in": "path", "required": true},
                    {"type": "string", "name": "idSemester", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/res.Response"}},
                    "400": {"description": "invalid id", "schema": {"$ref": "#/definitions/res.Response"}},
                    "404": {"description": "semester not found", "schema": {"$ref": "#/definitions/res.Response"}}
                }
            }
        },
        "/attainment/{idBatch}/{idSemester}/export": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["attainment"],
                "summary": "Download co-attainment as xlsx, pdf or zip",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"type": "string", "name": "idBatch", "in": "path", "required": true},
                    {"type": "string", "name": "idSemester", "in": "path", "required": true},
                    {"type": "string", "default": "xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "unknown export format", "schema": {"$ref": "#/definitions/res.Response"}}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/c/attainment",
	Schemes:          []string{},
	Title:            "Attainment API",
	Description:      "API Server for the read requests of the co-attainment service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
