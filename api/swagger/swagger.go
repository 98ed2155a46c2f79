package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Arena Console API",
        "description": "Admin console backend for the multi-institution sports event platform",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Institutions", "description": "Invitation, audit and registration board"},
        {"name": "Review", "description": "Document review sessions"},
        {"name": "Schedule", "description": "Championship schedule and results"},
        {"name": "Performance", "description": "Per-match player statistics"},
        {"name": "Journal", "description": "Operator action journal"},
        {"name": "Exports", "description": "Results documents"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/events/{eventId}/institutions": {
            "get": {
                "tags": ["Institutions"],
                "summary": "Institution board with stage permissions and bulk-eligible ids",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{eventId}/institutions/decisions": {
            "post": {
                "tags": ["Institutions"],
                "summary": "Apply one decision to the selected institutions",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkDecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{eventId}/institutions/{participationId}/decision": {
            "post": {
                "tags": ["Institutions"],
                "summary": "Apply an audit decision to one institution",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "participationId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{eventId}/institutions/{participationId}/extension": {
            "put": {
                "tags": ["Institutions"],
                "summary": "Extend or clear a registration deadline",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "participationId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExtensionRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/events/{eventId}/institutions/{participationId}/notify": {
            "post": {
                "tags": ["Institutions"],
                "summary": "Resend an invitation or reminder",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "participationId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{eventId}/registrations/{institutionId}/review-sessions": {
            "post": {
                "tags": ["Review"],
                "summary": "Open a document review session",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "institutionId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review-sessions/{sessionId}/documents/{documentId}": {
            "patch": {
                "tags": ["Review"],
                "summary": "Patch one document's review entry",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "documentId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DocumentPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review-sessions/{sessionId}/submit": {
            "post": {
                "tags": ["Review"],
                "summary": "Save pending review edits",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/review-sessions/{sessionId}": {
            "delete": {
                "tags": ["Review"],
                "summary": "Discard a review session",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/events/{eventId}/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Aggregated schedule view",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "phase", "in": "query", "type": "string"},
                    {"name": "series", "in": "query", "type": "string"},
                    {"name": "venue", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedule"],
                "summary": "Generate the initial schedule",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Schedule"],
                "summary": "Delete the schedule",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/events/{eventId}/schedule/next-stage": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Generate the next bracket stage",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{eventId}/standings": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Standings tables grouped by series",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{eventId}/teams/{teamId}/history": {
            "get": {
                "tags": ["Schedule"],
                "summary": "A team's campaign summary",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "teamId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{eventId}/matches/{matchId}/result": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Register a match result",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "matchId", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/matches/{matchId}/performance-sessions": {
            "post": {
                "tags": ["Performance"],
                "summary": "Open the performance table for a match",
                "parameters": [
                    {"name": "matchId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/performance-sessions/{sessionId}/players/{playerId}": {
            "patch": {
                "tags": ["Performance"],
                "summary": "Edit one cell of the performance table",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"},
                    {"name": "playerId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/performance-sessions/{sessionId}/save": {
            "post": {
                "tags": ["Performance"],
                "summary": "Persist the performance table",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/performance-sessions/{sessionId}/calculate": {
            "post": {
                "tags": ["Performance"],
                "summary": "Save and recalculate ratings and MVP",
                "parameters": [
                    {"name": "sessionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/journal": {
            "get": {
                "tags": ["Journal"],
                "summary": "List operator journal entries",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "entity", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{eventId}/exports/results": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export standings and finished results",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "DecisionRequest": {
            "type": "object",
            "properties": {
                "decision": {"type": "string", "enum": ["approve", "reject", "request_correction"]},
                "motive": {"type": "string"}
            },
            "required": ["decision"]
        },
        "BulkDecisionRequest": {
            "type": "object",
            "properties": {
                "institution_ids": {"type": "array", "items": {"type": "integer"}},
                "decision": {"type": "string", "enum": ["approve", "reject"]},
                "motive": {"type": "string"}
            },
            "required": ["institution_ids", "decision"]
        },
        "ExtensionRequest": {
            "type": "object",
            "properties": {
                "new_deadline": {"type": "string"}
            }
        },
        "DocumentPatch": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "approved", "correction_requested"]},
                "note": {"type": "string"}
            }
        },
        "ResultRequest": {
            "type": "object",
            "properties": {
                "home_score": {"type": "integer"},
                "away_score": {"type": "integer"},
                "winner_team_id": {"type": "integer"},
                "result_reason": {"type": "string"},
                "publish_news": {"type": "boolean"}
            },
            "required": ["home_score", "away_score", "winner_team_id"]
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
