package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LMS Enrollment Ledger API",
        "description": "Enrollment, grade ledger and GPA service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Enrollments", "description": "Enrollment ledger and rosters"},
        {"name": "GPA", "description": "Credit-weighted grade point averages"},
        {"name": "Exports", "description": "Roster downloads"}
    ],
    "paths": {
        "/enrollments": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll the caller in a course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseTermRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "200": {"description": "Already enrolled; data is null and meta.created is false", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Unknown course", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Remove the caller's enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseTermRequest"}}
                ],
                "responses": {
                    "204": {"description": "Removed or already absent"}
                }
            },
            "get": {
                "tags": ["Enrollments"],
                "summary": "List every enrollment (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/enrollments/me": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List the caller's enrollments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/enrollments/grade": {
            "put": {
                "tags": ["Enrollments"],
                "summary": "Set or clear the grade of an enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No matching enrollment", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{courseId}/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List a course roster",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{courseId}/enrollments/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a course roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/enrollments/me/gpa": {
            "get": {
                "tags": ["GPA"],
                "summary": "Calculate the caller's GPA",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GPAEnvelope"}}
                }
            }
        },
        "/students/{userId}/gpa": {
            "get": {
                "tags": ["GPA"],
                "summary": "Calculate a student's GPA (admin)",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GPAEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CourseTermRequest": {
            "type": "object",
            "required": ["courseId", "term"],
            "properties": {
                "courseId": {"type": "string"},
                "term": {"type": "string"}
            }
        },
        "UpdateGradeRequest": {
            "type": "object",
            "required": ["userId", "courseId", "term"],
            "properties": {
                "userId": {"type": "string"},
                "courseId": {"type": "string"},
                "term": {"type": "string"},
                "grade": {"type": "string", "x-nullable": true}
            }
        },
        "GPASummary": {
            "type": "object",
            "properties": {
                "gpa": {"type": "number"},
                "totalCredits": {"type": "integer"},
                "coursesCount": {"type": "integer"}
            }
        },
        "GPAEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/GPASummary"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
