package logging

import (
	"log/slog"
	"time"
)

// attrValue flattens a resolved slog value into something both the line
// formatter and the JSONL sink can print. Groups become nested maps.
func attrValue(value slog.Value) any {
	value = value.Resolve()
	switch value.Kind() {
	case slog.KindGroup:
		inner := make(map[string]any, len(value.Group()))
		for _, attr := range value.Group() {
			if attr.Key == "" {
				continue
			}
			inner[attr.Key] = attrValue(attr.Value)
		}
		return inner
	case slog.KindDuration:
		return value.Duration().String()
	case slog.KindTime:
		return value.Time().UTC().Format(time.RFC3339)
	default:
		return value.Any()
	}
}

func attrsToMap(attrs []slog.Attr) map[string]any {
	values := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		if attr.Key == "" {
			continue
		}
		values[attr.Key] = attrValue(attr.Value)
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
