package http

import "github.com/swaggo/swag"

// SwaggerInfo describes the HTTP API served under /swagger/.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "voxsplit API",
	Description:      "Splits mixed-language text into language-tagged chunks and synthesizes them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/prepare": {
            "post": {
                "summary": "Segment, normalize and chunk text",
                "tags": ["pipeline"],
                "consumes": ["application/json", "text/plain"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/message.Request"}}
                ],
                "responses": {
                    "200": {"description": "Fragments and chunks", "schema": {"$ref": "#/definitions/message.PrepareResult"}},
                    "400": {"description": "Invalid request body"},
                    "422": {"description": "No speakable text", "schema": {"$ref": "#/definitions/message.PrepareResult"}}
                }
            }
        },
        "/speak": {
            "post": {
                "summary": "Prepare text and synthesize every chunk",
                "tags": ["pipeline"],
                "consumes": ["application/json", "text/plain"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/message.Request"}}
                ],
                "responses": {
                    "200": {"description": "Per-chunk base64 WAV audio", "schema": {"$ref": "#/definitions/message.SpeakResult"}},
                    "400": {"description": "Invalid request body"},
                    "422": {"description": "No speakable text", "schema": {"$ref": "#/definitions/message.SpeakResult"}},
                    "502": {"description": "Every chunk failed to synthesize", "schema": {"$ref": "#/definitions/message.SpeakResult"}},
                    "503": {"description": "Synthesis is disabled"}
                }
            }
        }
    },
    "definitions": {
        "message.Request": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "id": {"type": "string"},
                "source": {"type": "string"},
                "text": {"type": "string"},
                "voice": {"type": "string"}
            }
        },
        "segment.Fragment": {
            "type": "object",
            "properties": {
                "lang": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "chunk.Chunk": {
            "type": "object",
            "properties": {
                "lang": {"type": "string"},
                "text": {"type": "string"},
                "fragment": {"type": "integer"},
                "index": {"type": "integer"}
            }
        },
        "message.PrepareResult": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "dominant": {"type": "string"},
                "fragments": {"type": "array", "items": {"$ref": "#/definitions/segment.Fragment"}},
                "chunks": {"type": "array", "items": {"$ref": "#/definitions/chunk.Chunk"}},
                "error": {"type": "string"}
            }
        },
        "message.ChunkAudio": {
            "type": "object",
            "properties": {
                "fragment": {"type": "integer"},
                "index": {"type": "integer"},
                "lang": {"type": "string"},
                "text": {"type": "string"},
                "audio": {"type": "string", "format": "byte"},
                "content_type": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "message.SpeakResult": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "dominant": {"type": "string"},
                "chunks": {"type": "array", "items": {"$ref": "#/definitions/message.ChunkAudio"}},
                "failed_languages": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string"}
            }
        }
    }
}`
