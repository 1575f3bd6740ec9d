package importer

const extractionSchemaURL = "extraction.schema.json"

// extractionSchema accepts what OCR extraction emits: times and dates may
// arrive as numbers, and any scalar may be null.
const extractionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["employee_entries"],
  "properties": {
    "document_id": {"type": ["string", "null"]},
    "client_name": {"type": ["string", "null"]},
    "week_of": {"type": ["string", "null"]},
    "employee_entries": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "employee_name": {"type": ["string", "null"]},
          "service_code": {"type": ["string", "number", "null"]},
          "signature": {"type": ["string", "boolean", "null"]},
          "time_entries": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "date": {"type": ["string", "number", "null"]},
                "time_in": {"type": ["string", "number", "null"]},
                "time_out": {"type": ["string", "number", "null"]},
                "units": {"type": ["integer", "null"], "minimum": 0},
                "hours_worked": {"type": ["string", "number", "null"]}
              }
            }
          }
        }
      }
    }
  }
}`
