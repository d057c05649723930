package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/Episode-Browser/internal/httpjson"
)

// handleOpenAPI renvoie le document OpenAPI de l'API session.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	jsonOK := func(schemaRef string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": schemaRef},
				},
			},
		}
	}

	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Error"},
			},
		},
	}

	indexParam := []any{map[string]any{
		"name":     "index",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "integer", "minimum": 0},
	}}

	sessionCommand := func(status string) map[string]any {
		return map[string]any{
			"post": map[string]any{
				"responses": map[string]any{
					status: jsonOK("#/components/schemas/Session"),
					"500":  jsonErr,
				},
			},
		}
	}

	itemCommand := func(status string) map[string]any {
		return map[string]any{
			"parameters": indexParam,
			"post": map[string]any{
				"responses": map[string]any{
					status: jsonOK("#/components/schemas/Session"),
					"400":  jsonErr,
				},
			},
		}
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Episode Browser API",
			"version": "v1",
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"OpenAPIDocument": map[string]any{
					"type":                 "object",
					"additionalProperties": true,
				},
				"Error": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"error": map[string]any{"type": "string"},
						"code": map[string]any{
							"type": "string",
							"enum": []any{"unknown_show", "fetch_failed", "feed_parse_failed", "clipboard_failed", "storage_failed", "invalid_index", "internal_error"},
						},
					},
					"required": []any{"error"},
				},
				"ShowLink": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
						"feed": map[string]any{"type": "string"},
						"hash": map[string]any{"type": "string", "example": "#soso_no_frieren"},
					},
					"required": []any{"name", "hash"},
				},
				"ShowList": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/components/schemas/ShowLink"},
				},
				"Episode": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":        map[string]any{"type": "string"},
						"publishAt":    map[string]any{"type": "string"},
						"reference":    map[string]any{"type": "string"},
						"resourceType": map[string]any{"type": "string"},
						"url":          map[string]any{"type": "string"},
						"description":  map[string]any{"type": "string"},
					},
					"required": []any{"title", "url"},
				},
				"EpisodeList": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/components/schemas/Episode"},
				},
				"Item": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"index":        map[string]any{"type": "integer"},
						"title":        map[string]any{"type": "string"},
						"resourceType": map[string]any{"type": "string"},
						"url":          map[string]any{"type": "string"},
						"checked":      map[string]any{"type": "boolean"},
						"watched":      map[string]any{"type": "boolean"},
					},
				},
				"Session": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":            map[string]any{"type": "string"},
						"state":         map[string]any{"type": "string", "enum": []any{"idle", "loading", "ready"}},
						"show":          map[string]any{"type": "string"},
						"hash":          map[string]any{"type": "string"},
						"message":       map[string]any{"type": "string"},
						"selected":      map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
						"clipboard":     map[string]any{"type": "string", "description": "URLs des items sélectionnés, une par ligne."},
						"items":         map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Item"}},
						"historyLength": map[string]any{"type": "integer"},
					},
					"required": []any{"id", "state", "show", "hash", "selected", "clipboard", "items"},
				},
				"WatchResult": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"index":   map[string]any{"type": "integer"},
						"watched": map[string]any{"type": "boolean"},
					},
				},
				"NavigateRequest": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"hash": map[string]any{"type": "string", "example": "#soso_no_frieren::0-2"},
					},
					"required": []any{"hash"},
				},
				"Command": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type": "string",
							"enum": []any{"show-changed", "item-checked-changed", "select-all", "reverse-selection", "copy-selected", "watch-toggled"},
						},
						"show":    map[string]any{"type": "string"},
						"index":   map[string]any{"type": "integer"},
						"checked": map[string]any{"type": "boolean"},
					},
					"required": []any{"name"},
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/version": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/openapi.json": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/OpenAPIDocument")}},
			},
			"/api/v1/events": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "SSE (session.loaded, session.selection, session.copied, session.watched, session.failed)"}}},
			},
			"/api/v1/shows": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/ShowList")}},
			},
			"/api/v1/shows/{name}/episodes": map[string]any{
				"parameters": []any{map[string]any{
					"name":     "name",
					"in":       "path",
					"required": true,
					"schema":   map[string]any{"type": "string"},
				}},
				"get": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/EpisodeList"),
						"404": jsonErr,
						"502": jsonErr,
					},
				},
			},
			"/api/v1/session": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("#/components/schemas/Session")}},
			},
			"/api/v1/session/hash": map[string]any{
				"post": map[string]any{
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/NavigateRequest"},
							},
						},
					},
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Session"),
						"400": jsonErr,
						"404": jsonErr,
						"502": jsonErr,
					},
				},
			},
			"/api/v1/session/commands": map[string]any{
				"post": map[string]any{
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/Command"},
							},
						},
					},
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/Session"),
						"400": jsonErr,
						"404": jsonErr,
						"500": jsonErr,
						"502": jsonErr,
					},
				},
			},
			"/api/v1/session/items/{index}/check":   itemCommand("202"),
			"/api/v1/session/items/{index}/uncheck": itemCommand("202"),
			"/api/v1/session/items/{index}/watch": map[string]any{
				"parameters": indexParam,
				"post": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("#/components/schemas/WatchResult"),
						"400": jsonErr,
						"500": jsonErr,
					},
				},
			},
			"/api/v1/session/select-all":        sessionCommand("202"),
			"/api/v1/session/reverse-selection": sessionCommand("202"),
			"/api/v1/session/copy-selected":     sessionCommand("200"),
		},
	}

	httpjson.Write(w, http.StatusOK, spec)
}
