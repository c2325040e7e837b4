package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Ministry Appointment Booking API",
        "description": "Citizen appointment booking portal with a staff review dashboard",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Public", "description": "Citizen booking surface"},
        {"name": "Authentication", "description": "Staff sessions"},
        {"name": "Dashboard", "description": "Staff appointment review"},
        {"name": "Ministers", "description": "Minister roster administration"},
        {"name": "Slots", "description": "Slot calendar administration"}
    ],
    "paths": {
        "/ministers": {
            "get": {
                "tags": ["Public"],
                "summary": "List ministers accepting appointments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MinisterList"}}
                }
            }
        },
        "/slots": {
            "get": {
                "tags": ["Public"],
                "summary": "Available slots for a minister on a date",
                "parameters": [
                    {"name": "minister_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SlotList"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/PublicError"}}
                }
            }
        },
        "/appointments": {
            "post": {
                "tags": ["Public"],
                "summary": "Submit an appointment request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAppointmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Submitted", "schema": {"$ref": "#/definitions/BookingResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/PublicError"}},
                    "404": {"description": "Unknown slot", "schema": {"$ref": "#/definitions/PublicError"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate staff user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "security": [{"Bearer": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Change password for the current user",
                "security": [{"Bearer": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "security": [{"Bearer": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/appointments": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "List appointment requests with backlog counters",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "description": "PENDING (default), APPROVED, REJECTED, COMPLETED or all"},
                    {"name": "minister_id", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/appointments/export": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Download the filtered appointment list",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "minister_id", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/appointments/{id}/decision": {
            "post": {
                "tags": ["Dashboard"],
                "summary": "Approve, reject or complete an appointment request",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already decided", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/ministers": {
            "get": {
                "tags": ["Ministers"],
                "summary": "List ministers",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Ministers"],
                "summary": "Register a minister",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMinisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/ministers/{id}": {
            "get": {
                "tags": ["Ministers"],
                "summary": "Get one minister",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Ministers"],
                "summary": "Update a minister",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMinisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Ministers"],
                "summary": "Remove a minister and their calendar",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/admin/ministers/{id}/slots": {
            "get": {
                "tags": ["Slots"],
                "summary": "List a minister's slot calendar",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Slots"],
                "summary": "Add one slot to a minister's calendar",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate start time", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/ministers/{id}/slots/generate": {
            "post": {
                "tags": ["Slots"],
                "summary": "Bulk-generate hourly slots over a date range",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSlotsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/slots/{slotId}": {
            "delete": {
                "tags": ["Slots"],
                "summary": "Remove a slot",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "slotId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "Minister": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "portfolio": {"type": "string"},
                "ministry_name": {"type": "string"},
                "photo_url": {"type": "string"},
                "description": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "MinisterList": {
            "type": "object",
            "properties": {
                "ministers": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Minister"}
                }
            }
        },
        "AvailableSlot": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "start_time": {"type": "string", "example": "10:00"},
                "end_time": {"type": "string", "example": "11:00"}
            }
        },
        "SlotList": {
            "type": "object",
            "properties": {
                "slots": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/AvailableSlot"}
                }
            }
        },
        "CreateAppointmentRequest": {
            "type": "object",
            "properties": {
                "slot_id": {"type": "integer"},
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "phone_number": {"type": "string"},
                "address": {"type": "string"},
                "purpose": {"type": "string"}
            },
            "required": ["slot_id", "full_name"]
        },
        "BookingResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "appointment_id": {"type": "integer"}
            }
        },
        "PublicError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "DecisionRequest": {
            "type": "object",
            "properties": {
                "action": {"type": "string", "enum": ["approve", "reject", "complete"]},
                "admin_message": {"type": "string"}
            },
            "required": ["action"]
        },
        "CreateMinisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "portfolio": {"type": "string"},
                "ministry_name": {"type": "string"},
                "photo_url": {"type": "string"},
                "description": {"type": "string"},
                "active": {"type": "boolean"}
            },
            "required": ["name", "portfolio"]
        },
        "CreateSlotRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-04-14"},
                "start_time": {"type": "string", "example": "10:00"},
                "end_time": {"type": "string", "example": "11:00"}
            },
            "required": ["date", "start_time", "end_time"]
        },
        "GenerateSlotsRequest": {
            "type": "object",
            "properties": {
                "from_date": {"type": "string"},
                "to_date": {"type": "string"},
                "start_hour": {"type": "integer"},
                "end_hour": {"type": "integer"},
                "skip_weekday": {"type": "integer", "description": "time.Weekday numbering, Sunday = 0"}
            },
            "required": ["from_date", "to_date"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
