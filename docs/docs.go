// Package docs holds the OpenAPI description served under /swagger. Regenerate
// with `swag init -g cmd/api/main.go` after changing handler annotations.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/employee/emp-login": {
            "post": {
                "tags": ["auth"],
                "summary": "Employee login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/employee/emp-registration": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Register an employee (admin)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registrationRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/employee/all-employees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "List employees (admin, receptionist)",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "cnic", "in": "query"},
                    {"type": "string", "name": "business_id", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/employee/single-emp": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Get an employee by CNIC",
                "parameters": [{"type": "string", "name": "cnic", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Reset an employee password (admin)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/passwordResetRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/employee/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Update an employee (admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Delete an employee (admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/seeker/seeker-registration": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Register a job seeker (admin, receptionist)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registrationRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/seeker/all-seekers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "List job seekers (any employee)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/seeker/single-seeker": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Get a job seeker by CNIC",
                "parameters": [{"type": "string", "name": "cnic", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/seeker/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Update a job seeker (admin, receptionist)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Delete a job seeker (admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/user/user-signup": {
            "post": {
                "tags": ["principals"],
                "summary": "Sign up a user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registrationRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/user/user-login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/user/all-users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "List users (user admin)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/user/single-user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Get a user by CNIC (user admin)",
                "parameters": [{"type": "string", "name": "cnic", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/user/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Update a user (user admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["principals"],
                "summary": "Delete a user (user admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}}
            }
        },
        "/city/all-cities": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "List cities (any employee)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/city/single-city/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Get a city (any employee)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/city/add-city": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Add a city (employee admin)",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/orgUnitRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/city/update-city/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Update a city (employee admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/orgUnitRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/city/delete-city/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Delete a city (employee admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/branch/all-branches": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "List branches (any employee)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/branch/single-branch/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Get a branch (any employee)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/branch/add-branch": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Add a branch (employee admin)",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/orgUnitRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/branch/update-branch/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Update a branch (employee admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/orgUnitRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/branch/delete-branch/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Delete a branch (employee admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/branch/branch-count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Count branches (any employee)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/department/all-departments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "List departments (any employee)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/department/single-department/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Get a department (any employee)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/department/add-department": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Add a department (employee admin)",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/orgUnitRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/department/update-department/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Update a department (employee admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/orgUnitRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/department/delete-department/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Delete a department (employee admin)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        },
        "/department/department-count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["organization"],
                "summary": "Count departments (any employee)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}}
            }
        }
    },
    "definitions": {
        "envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"}
            }
        },
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "orgUnitRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "city": {"type": "string", "description": "City name for cities, city id for branches and departments"},
                "country": {"type": "string"},
                "address": {"type": "string"},
                "branch": {"type": "string"},
                "contact": {"type": "string", "example": "04212345678"},
                "email": {"type": "string"}
            }
        },
        "passwordResetRequest": {
            "type": "object",
            "properties": {
                "cnic": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "registrationRequest": {
            "type": "object",
            "properties": {
                "fullName": {"type": "string"},
                "fatherName": {"type": "string"},
                "email": {"type": "string"},
                "mobileNo": {"type": "string", "example": "03001234567"},
                "mobile": {"type": "string", "example": "03001234567"},
                "cnic": {"type": "string", "example": "1234567890123"},
                "dob": {"type": "string", "example": "1990-03-14"},
                "gender": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "branch": {"type": "string"},
                "department": {"type": "string"},
                "role": {"type": "string"},
                "password": {"type": "string"},
                "imageUrl": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Personnel API",
	Description:      "Registration, authentication and role-gated records for employees, job seekers and users.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
