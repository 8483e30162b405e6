package chat

import "strings"

// Rule: правило автоответа. Match получает уже нормализованный текст
// (trim + lower-case).
type Rule struct {
	Name     string
	Match    func(normalized string) bool
	Response string
}

// Reply возвращает канонический ответ на текст пользователя.
// Всегда непустой: если ничего не подошло: fallback.
func Reply(text string) string {
	return Match(text).Response
}

// Match: то же, что Reply, но отдаёт сработавшее правило целиком
// (по имени удобно размечать метрики).
func Match(text string) Rule {
	msg := normalize(text)
	for _, r := range rules {
		if r.Match(msg) {
			return r
		}
	}
	return fallback
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsAny(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
}
