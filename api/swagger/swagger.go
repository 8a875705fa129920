package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Asistencia Escolar API",
        "description": "Attendance tracking backend for preceptores",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Roster", "description": "Courses and students (read-only)"},
        {"name": "Sessions", "description": "Roll-call sheet lifecycle"},
        {"name": "Records", "description": "Per-session attendance marks"},
        {"name": "Stats", "description": "Tallies and equivalence aggregates"},
        {"name": "Alerts", "description": "Absence alerts and acknowledgements"},
        {"name": "Reports", "description": "CSV exports"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/courses": {
            "get": {
                "tags": ["Roster"],
                "summary": "List active courses",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses/{courseId}/students": {
            "get": {
                "tags": ["Roster"],
                "summary": "List active students of a course",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "No access to course"}}
            }
        },
        "/sessions": {
            "get": {
                "tags": ["Sessions"],
                "summary": "List sessions",
                "parameters": [
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "context", "in": "query", "type": "string", "enum": ["REGULAR", "ED_FISICA", "ALL"]}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Sessions"],
                "summary": "Get or create the sheet for (course, date, context)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "Existing session"}, "201": {"description": "Created"}}
            }
        },
        "/sessions/{sessionId}/close": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Close a session",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Closed"}, "409": {"description": "Already closed"}}
            }
        },
        "/sessions/{sessionId}/records": {
            "get": {
                "tags": ["Records"],
                "summary": "List a session's marks",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Records"],
                "summary": "Bulk write marks",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Session closed"}}
            }
        },
        "/sessions/{sessionId}/records/{studentId}": {
            "put": {
                "tags": ["Records"],
                "summary": "Write one student's mark, or clear it with an empty status",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats": {
            "get": {
                "tags": ["Stats"],
                "summary": "Range summary plus daily breakdown",
                "parameters": [
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "student_id", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "context", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/students": {
            "get": {
                "tags": ["Stats"],
                "summary": "Per-student tallies for one course",
                "parameters": [
                    {"name": "course_id", "in": "query", "required": true, "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "context", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/courses": {
            "get": {
                "tags": ["Stats"],
                "summary": "School-wide per-course summary",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Coverage role required"}}
            }
        },
        "/students/{studentId}/timeline": {
            "get": {
                "tags": ["Stats"],
                "summary": "One student's normalized history",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/alerts": {
            "get": {
                "tags": ["Alerts"],
                "summary": "Evaluate alerts as of a cutoff date",
                "parameters": [
                    {"name": "course_id", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"},
                    {"name": "context", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/alerts/ack": {
            "post": {
                "tags": ["Alerts"],
                "summary": "Acknowledge a student's alert until a date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/reports/students.csv": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download per-student tallies as CSV",
                "parameters": [
                    {"name": "course_id", "in": "query", "required": true, "type": "string"},
                    {"name": "from", "in": "query", "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "type": "string", "format": "date"}
                ],
                "produces": ["text/csv"],
                "responses": {"200": {"description": "CSV payload"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Asistencia Escolar API",
	Description:      "Attendance tracking backend for preceptores",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
