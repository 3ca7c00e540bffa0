package api

// chatRequestSchema describes the body accepted by POST /api/chat.
const chatRequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["message"],
  "properties": {
    "message": {
      "type": "string",
      "minLength": 1,
      "maxLength": 4000,
      "pattern": "\\S"
    },
    "userId": {
      "type": "string",
      "maxLength": 128
    },
    "coordinates": {
      "type": ["object", "null"],
      "required": ["lat", "lng"],
      "properties": {
        "lat": {"type": "number", "minimum": -90, "maximum": 90},
        "lng": {"type": "number", "minimum": -180, "maximum": 180},
        "name": {"type": "string", "maxLength": 256}
      }
    }
  }
}`
