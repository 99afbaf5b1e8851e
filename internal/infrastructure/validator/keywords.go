package validator

// Keywords shared by Swagger 2.0 schemas and OpenAPI 3.0 schemas, grouped by the
// JSON type their value must have. Everything else (discriminator, xml, readOnly,
// example, vendor extensions, parameter fields such as in/name) is dropped.
var (
	stringKeywords = []string{"format", "pattern", "title", "description"}
	numberKeywords = []string{"multipleOf", "maximum", "minimum", "maxLength", "minLength",
		"maxItems", "minItems", "maxProperties", "minProperties"}
	// Swagger 2.0 and OpenAPI 3.0 both use the boolean form of the exclusive bounds.
	boolKeywords = []string{"exclusiveMinimum", "exclusiveMaximum", "uniqueItems"}
)

// toJSONSchema copies the keywords openapi3.Schema understands out of a decoded schema.
// Leftover $ref objects (circular or unresolved) become the empty schema.
func toJSONSchema(v interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	m, ok := v.(map[string]interface{})
	if !ok {
		return out
	}
	if _, isRef := m["$ref"]; isRef {
		return out
	}

	if t, ok := m["type"].(string); ok && t != "file" {
		out["type"] = t
	}
	for _, key := range stringKeywords {
		if s, ok := m[key].(string); ok {
			out[key] = s
		}
	}
	for _, key := range numberKeywords {
		if isNumber(m[key]) {
			out[key] = m[key]
		}
	}
	for _, key := range boolKeywords {
		if b, ok := m[key].(bool); ok {
			out[key] = b
		}
	}
	if b, ok := m["x-nullable"].(bool); ok {
		out["nullable"] = b
	}
	if enum, ok := m["enum"].([]interface{}); ok {
		out["enum"] = enum
	}
	if required := stringList(m["required"]); len(required) > 0 {
		out["required"] = required
	}
	if items, ok := m["items"].(map[string]interface{}); ok {
		out["items"] = toJSONSchema(items)
	}
	switch ap := m["additionalProperties"].(type) {
	case bool:
		out["additionalProperties"] = ap
	case map[string]interface{}:
		out["additionalProperties"] = toJSONSchema(ap)
	}
	if props, ok := m["properties"].(map[string]interface{}); ok {
		converted := make(map[string]interface{}, len(props))
		for name, prop := range props {
			converted[name] = toJSONSchema(prop)
		}
		out["properties"] = converted
	}
	if allOf, ok := m["allOf"].([]interface{}); ok {
		converted := make([]interface{}, 0, len(allOf))
		for _, member := range allOf {
			converted = append(converted, toJSONSchema(member))
		}
		out["allOf"] = converted
	}
	return out
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	default:
		return false
	}
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
