package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Grading API",
        "description": "Midterm, finals and course grade calculation with configurable weights and grade-point equivalents",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "GradeCalculation", "description": "Grade weights, equivalents and calculations"},
        {"name": "Ops", "description": "Health and metrics"}
    ],
    "paths": {
        "/grade-calculation/grade-percentage": {
            "get": {
                "tags": ["GradeCalculation"],
                "summary": "Get component weights",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not configured", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["GradeCalculation"],
                "summary": "Replace component weights",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateGradePercentageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "INVALID_WEIGHTS", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grade-calculation/equivalents": {
            "get": {
                "tags": ["GradeCalculation"],
                "summary": "List grade-point equivalents in lookup order",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["GradeCalculation"],
                "summary": "Replace grade-point equivalents",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceGradeEquivalentsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "INVALID_SCALE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grade-calculation/midterm": {
            "post": {
                "tags": ["GradeCalculation"],
                "summary": "Calculate midterm grades",
                "description": "Records come back unchanged with meta.computed=false when weights or equivalents are missing.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalculateGradesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "VALIDATION_ERROR", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "BATCH_TOO_LARGE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grade-calculation/finals": {
            "post": {
                "tags": ["GradeCalculation"],
                "summary": "Calculate finals grades",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalculateGradesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "VALIDATION_ERROR", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "BATCH_TOO_LARGE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grade-calculation/course": {
            "post": {
                "tags": ["GradeCalculation"],
                "summary": "Calculate final course grades from midterm and finals pairs",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grade-calculation/export": {
            "post": {
                "tags": ["GradeCalculation"],
                "summary": "Export a grade sheet as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportGradesRequest"}}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "UNSUPPORTED_FORMAT", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Ops"],
                "summary": "Metrics summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "UpdateGradePercentageRequest": {
            "type": "object",
            "required": ["quizWeighted", "classStandingWeighted", "sepWeighted", "projectWeighted", "midtermWeighted", "finalsWeighted"],
            "properties": {
                "quizWeighted": {"type": "number"},
                "classStandingWeighted": {"type": "number"},
                "sepWeighted": {"type": "number"},
                "projectWeighted": {"type": "number"},
                "midtermWeighted": {"type": "number"},
                "finalsWeighted": {"type": "number"}
            }
        },
        "GradeEquivalent": {
            "type": "object",
            "properties": {
                "minPercentage": {"type": "number"},
                "maxPercentage": {"type": "number"},
                "gradePoint": {"type": "number"},
                "description": {"type": "string"}
            }
        },
        "ReplaceGradeEquivalentsRequest": {
            "type": "object",
            "properties": {
                "equivalents": {"type": "array", "items": {"$ref": "#/definitions/GradeEquivalent"}}
            }
        },
        "QuizItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"},
                "quizScore": {"type": "number"},
                "totalQuizScore": {"type": "number"}
            }
        },
        "ClassStandingItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"},
                "score": {"type": "number"},
                "total": {"type": "number"}
            }
        },
        "GradeRecord": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer"},
                "studentNumber": {"type": "string"},
                "studentFullName": {"type": "string"},
                "department": {"type": "string"},
                "subjectCode": {"type": "string"},
                "quizzes": {"type": "array", "items": {"$ref": "#/definitions/QuizItem"}},
                "classStandingItems": {"type": "array", "items": {"$ref": "#/definitions/ClassStandingItem"}},
                "recitationScore": {"type": "number"},
                "attendanceScore": {"type": "number"},
                "sepScore": {"type": "number"},
                "projectScore": {"type": "number"},
                "prelimScore": {"type": "number"},
                "prelimTotal": {"type": "number"},
                "midtermScore": {"type": "number"},
                "midtermTotal": {"type": "number"},
                "finalsScore": {"type": "number"},
                "finalsTotal": {"type": "number"}
            }
        },
        "CalculateGradesRequest": {
            "type": "object",
            "properties": {
                "records": {"type": "array", "items": {"$ref": "#/definitions/GradeRecord"}}
            }
        },
        "CourseGradeRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "midterm": {"$ref": "#/definitions/GradeRecord"},
                            "finals": {"$ref": "#/definitions/GradeRecord"}
                        }
                    }
                }
            }
        },
        "ExportGradesRequest": {
            "type": "object",
            "properties": {
                "term": {"type": "string", "enum": ["midterm", "finals"]},
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "title": {"type": "string"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/GradeRecord"}}
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
