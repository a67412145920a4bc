package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "e-Dnevnik API",
        "description": "Digital gradebook backend for a primary school",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login and registration"},
        {"name": "Admin", "description": "User, classroom, subject and teaching link administration"},
        {"name": "Grades", "description": "Grade entry and student views"},
        {"name": "Assignments", "description": "Homework and exam announcements"},
        {"name": "Classrooms", "description": "Student classroom view"},
        {"name": "Profile", "description": "Authenticated profile"},
        {"name": "Health", "description": "Probes"}
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue a token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/UserSummary"}},
                    "400": {"description": "Validation or duplicate username", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/me": {
            "get": {
                "tags": ["Profile"],
                "summary": "Self profile with detected IP",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Profile"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/admin/users": {
            "get": {
                "tags": ["Admin"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AdminUser"}}}
                }
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Create user",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/AdminUser"}}
                }
            }
        },
        "/api/admin/users/{id}": {
            "patch": {
                "tags": ["Admin"],
                "summary": "Patch user role, name or classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/admin/teachers": {
            "get": {
                "tags": ["Admin"],
                "summary": "Teacher picklist",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/TeacherOption"}}}
                }
            }
        },
        "/api/admin/classrooms": {
            "get": {
                "tags": ["Admin"],
                "summary": "List classrooms",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AdminClassroom"}}}
                }
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Create classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassroomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Classroom"}}
                }
            }
        },
        "/api/admin/classrooms/{id}": {
            "patch": {
                "tags": ["Admin"],
                "summary": "Assign or clear homeroom teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetHomeroomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Classroom not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/admin/subjects": {
            "get": {
                "tags": ["Admin"],
                "summary": "List subjects",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Subject"}}}
                }
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Create subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Subject"}}
                }
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete subject",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Subject still referenced", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/admin/teacher-subjects": {
            "get": {
                "tags": ["Admin"],
                "summary": "List teaching links",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/TeachingLink"}}}
                }
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Create teaching link",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTeachingLinkRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/TeachingLink"}}
                }
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete teaching link",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Link not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments scoped by role",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Assignment"}}}
                }
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Create assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Assignment"}},
                    "403": {"description": "Caller does not teach the subject in that classroom", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "delete": {
                "tags": ["Assignments"],
                "summary": "Delete assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not the owning teacher", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Assignment not found", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/grades": {
            "get": {
                "tags": ["Grades"],
                "summary": "List grades scoped by role",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Grade"}}}
                }
            },
            "post": {
                "tags": ["Grades"],
                "summary": "Record a grade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGradeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Grade"}},
                    "400": {"description": "Value out of range", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/grades/me": {
            "get": {
                "tags": ["Grades"],
                "summary": "Own grades grouped by subject",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/SubjectGrades"}}}
                }
            }
        },
        "/api/grades/me/export": {
            "get": {
                "tags": ["Grades"],
                "summary": "Download own grades as PDF or CSV",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/classrooms/me": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Own classroom with homeroom teacher and roster",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassroomDetail"}},
                    "404": {"description": "Student has no classroom", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/teacher/grades/context": {
            "get": {
                "tags": ["Grades"],
                "summary": "Subjects and rosters the caller may grade",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GradingContext"}}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/UserSummary"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"}
            }
        },
        "UserSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "TEACHER", "STUDENT"]}
            }
        },
        "Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string"},
                "classroom": {"$ref": "#/definitions/NamedRef"},
                "ip": {"type": "string"}
            }
        },
        "AdminUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string"},
                "classroom": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["username", "password", "role"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "TEACHER", "STUDENT"]},
                "full_name": {"type": "string"},
                "classroomId": {"type": "string"}
            }
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "full_name": {"type": "string"},
                "classroomId": {"type": "string"}
            }
        },
        "TeacherOption": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "Classroom": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "homeroomTeacherId": {"type": "string"}
            }
        },
        "AdminClassroom": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "homeroomTeacher": {"type": "string"},
                "studentsCount": {"type": "integer"}
            }
        },
        "CreateClassroomRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        },
        "SetHomeroomRequest": {
            "type": "object",
            "properties": {
                "homeroomTeacherId": {"type": "string"}
            }
        },
        "ClassroomDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "homeroomTeacher": {"$ref": "#/definitions/ClassroomMember"},
                "students": {"type": "array", "items": {"$ref": "#/definitions/ClassroomMember"}}
            }
        },
        "ClassroomMember": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "Subject": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        },
        "TeachingLink": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacherId": {"type": "string"},
                "subjectId": {"type": "string"},
                "classroomId": {"type": "string"},
                "teacherLabel": {"type": "string"},
                "subjectName": {"type": "string"},
                "classroomName": {"type": "string"}
            }
        },
        "CreateTeachingLinkRequest": {
            "type": "object",
            "required": ["teacherId", "subjectId", "classroomId"],
            "properties": {
                "teacherId": {"type": "string"},
                "subjectId": {"type": "string"},
                "classroomId": {"type": "string"}
            }
        },
        "Assignment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string", "format": "date-time"},
                "subject": {"$ref": "#/definitions/NamedRef"},
                "classroom": {"$ref": "#/definitions/NamedRef"},
                "teacher": {"$ref": "#/definitions/UserRef"}
            }
        },
        "CreateAssignmentRequest": {
            "type": "object",
            "required": ["title", "dueDate", "subjectId", "classroomId"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string"},
                "subjectId": {"type": "string"},
                "classroomId": {"type": "string"},
                "teacherId": {"type": "string"}
            }
        },
        "Grade": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "value": {"type": "integer", "minimum": 1, "maximum": 5},
                "comment": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "student": {"$ref": "#/definitions/UserRef"},
                "subject": {"$ref": "#/definitions/NamedRef"},
                "classroom": {"$ref": "#/definitions/NamedRef"},
                "teacher": {"$ref": "#/definitions/UserRef"}
            }
        },
        "CreateGradeRequest": {
            "type": "object",
            "required": ["value", "studentId", "subjectId", "classroomId"],
            "properties": {
                "value": {"type": "integer", "minimum": 1, "maximum": 5},
                "comment": {"type": "string"},
                "studentId": {"type": "string"},
                "subjectId": {"type": "string"},
                "classroomId": {"type": "string"},
                "teacherId": {"type": "string"}
            }
        },
        "SubjectGrades": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "grades": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "GradingContext": {
            "type": "object",
            "properties": {
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/NamedRef"}},
                "classrooms": {"type": "array", "items": {"$ref": "#/definitions/ClassroomDetail"}}
            }
        },
        "NamedRef": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "UserRef": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"}
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
