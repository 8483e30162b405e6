package dialog

// Payload хранится в jsonb, поэтому после чтения из базы числа приходят
// как float64, а списки как []any. Хелперы ниже принимают оба варианта.

// GetString Helper для безопасного чтения строк из payload
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func GetStrings(p Payload, key string) []string {
	switch v := p[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func GetFloat(p Payload, key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func GetInt(p Payload, key string) (int, bool) {
	f, ok := GetFloat(p, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}
