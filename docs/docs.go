// Package docs NextBus API.
//
// Журнал поездок на автобусах: записи расписания с маршрутом, временем,
// местом посадки и автобусом, форма создания записи и провайдер локации
// устройства с обратным геокодированием.
//
// Регистрирует спецификацию в swag, её отдаёт /swagger/*.
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
    "paths": {
        "/api/v1/health": {
            "get": {"tags": ["Health"], "summary": "Проверка состояния", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Список расписаний",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.ScheduleListResponse"}}}]}}}
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Создание расписания одним запросом",
                "description": "Открывает черновик, применяет поля и подтверждает его. Геолокацию не запрашивает: место и локация берутся из уже известного провайдеру.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CreateScheduleRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.ScheduleDetailResponse"}}}]}},
                    "422": {"description": "ROUTE_REQUIRED", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/schedules/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Карточка расписания",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.ScheduleDetailResponse"}}}]}},
                    "404": {"description": "SCHEDULE_NOT_FOUND", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Удаление расписания",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "SCHEDULE_NOT_FOUND", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/composer/drafts": {
            "post": {"tags": ["Composer"], "summary": "Открыть черновик", "responses": {"201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.DraftResponse"}}}]}}}}
        },
        "/api/v1/composer/drafts/{id}": {
            "get": {
                "tags": ["Composer"],
                "summary": "Состояние черновика",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.DraftResponse"}}}]}}}
            },
            "patch": {
                "tags": ["Composer"],
                "summary": "Изменить поля черновика",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateDraftRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.DraftResponse"}}}]}},
                    "409": {"description": "DRAFT_NOT_EDITABLE", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Composer"],
                "summary": "Отменить черновик",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/composer/drafts/{id}/confirm": {
            "post": {
                "tags": ["Composer"],
                "summary": "Подтвердить черновик",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "ROUTE_REQUIRED", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/location": {
            "get": {"tags": ["Location"], "summary": "Текущая локация", "responses": {"200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.LocationResponse"}}}]}}}}
        },
        "/api/v1/location/fixes": {
            "post": {
                "tags": ["Location"],
                "summary": "Новый фикс позиции",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.Coordinate"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "INVALID_REQUEST"}}
            }
        },
        "/api/v1/location/authorization/request": {
            "post": {"tags": ["Location"], "summary": "Запросить разрешение на геолокацию", "responses": {"202": {"description": "Accepted"}}}
        },
        "/api/v1/location/authorization": {
            "put": {
                "tags": ["Location"],
                "summary": "Результат запроса разрешения",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.SetAuthorizationRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "INVALID_AUTHORIZATION_STATUS"}}
            }
        },
        "/api/v1/location/updating/start": {
            "post": {"tags": ["Location"], "summary": "Включить приём фиксов", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/location/updating/stop": {
            "post": {"tags": ["Location"], "summary": "Выключить приём фиксов", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/location/address": {
            "post": {
                "tags": ["Location"],
                "summary": "Адрес координаты",
                "parameters": [{"in": "body", "name": "request", "schema": {"$ref": "#/definitions/dto.Coordinate"}}],
                "responses": {"200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.AddressResponse"}}}]}}}
            }
        },
        "/api/v1/location/address/refresh": {
            "post": {
                "tags": ["Location"],
                "summary": "Повторить определение адреса",
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/utils.SuccessResponse"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/dto.AddressResponse"}}}]}},
                    "503": {"description": "LOCATION_UNAVAILABLE", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.Coordinate": {
            "type": "object",
            "properties": {"lat": {"type": "number"}, "lng": {"type": "number"}}
        },
        "dto.CreateScheduleRequest": {
            "type": "object",
            "properties": {
                "timestamp": {"type": "string", "format": "date-time"},
                "route": {"type": "string"},
                "pickup": {"type": "string"},
                "type": {"type": "string", "example": "sltb"},
                "tier": {"type": "string", "example": "x1"},
                "seating": {"type": "string", "example": "Available"},
                "rating": {"type": "number"},
                "plate": {"type": "string"}
            }
        },
        "dto.UpdateDraftRequest": {"$ref": "#/definitions/dto.CreateScheduleRequest"},
        "dto.ScheduleListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "route": {"type": "string"},
                "place": {"type": "string"},
                "city": {"type": "string"},
                "provider_label": {"type": "string"},
                "tier_label": {"type": "string"},
                "seating_label": {"type": "string"},
                "seating_level": {"type": "integer"},
                "rating_text": {"type": "string"},
                "map_eligible": {"type": "boolean"}
            }
        },
        "dto.ScheduleListResponse": {
            "type": "object",
            "properties": {
                "schedules": {"type": "array", "items": {"$ref": "#/definitions/dto.ScheduleListItem"}},
                "total": {"type": "integer"}
            }
        },
        "dto.ScheduleDetailResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "route": {"type": "string"},
                "place": {"type": "string"},
                "city": {"type": "string"},
                "coordinate": {"$ref": "#/definitions/dto.Coordinate"},
                "address": {"type": "string"},
                "location": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "dto.DraftResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "state": {"type": "string", "enum": ["editing", "validating", "committing", "closed"]},
                "route": {"type": "string"},
                "pickup": {"type": "string"},
                "type": {"type": "string"},
                "tier": {"type": "string"},
                "seating": {"type": "string"}
            }
        },
        "dto.SetAuthorizationRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["not_determined", "authorized", "denied", "restricted"]}}
        },
        "dto.LocationResponse": {
            "type": "object",
            "properties": {
                "authorization": {"type": "string"},
                "updating": {"type": "boolean"},
                "coordinate": {"$ref": "#/definitions/dto.Coordinate"},
                "address": {"type": "string"},
                "address_available": {"type": "boolean"}
            }
        },
        "dto.AddressResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "available": {"type": "boolean"},
                "coordinate": {"$ref": "#/definitions/dto.Coordinate"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"type": "object", "properties": {"total": {"type": "integer"}}}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "NextBus API",
	Description:      "Bus schedule log with location provider and reverse geocoding",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
