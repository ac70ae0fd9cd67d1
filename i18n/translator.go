package i18n

// Translator retrieves localized titles for issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "property").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_schema": "invalid schema",
		"serialization":  "serialization failed",
		"empty_set":      "no value is allowed here",
		"invalid_type":   "invalid type",
		"const_mismatch": "value differs from the constant",
		"invalid_enum":   "value is not one of the allowed values",
		"all_of":         "value does not satisfy all schemas",
		"any_of":         "value satisfies none of the schemas",
		"one_of":         "value must satisfy exactly one schema",
		"not":            "value matches a forbidden schema",
		"not_multiple":   "not a multiple",
		"too_big":        "too big",
		"too_small":      "too small",
		"too_long":       "too long",
		"too_short":      "too short",
		"pattern":        "pattern mismatch",
		"not_unique":     "duplicate items",
		"contains":       "required item missing",
		"required":       "required property missing",
	},
	"ja": {
		"invalid_schema": "スキーマが不正です",
		"serialization":  "シリアライズに失敗しました",
		"empty_set":      "ここにはどの値も許可されていません",
		"invalid_type":   "型が不正です",
		"const_mismatch": "定数と一致しません",
		"invalid_enum":   "許可された値ではありません",
		"all_of":         "すべてのスキーマを満たしていません",
		"any_of":         "どのスキーマも満たしていません",
		"one_of":         "ちょうど一つのスキーマを満たす必要があります",
		"not":            "禁止されたスキーマに一致しています",
		"not_multiple":   "倍数ではありません",
		"too_big":        "大きすぎます",
		"too_small":      "小さすぎます",
		"too_long":       "長すぎます",
		"too_short":      "短すぎます",
		"pattern":        "パターンに一致しません",
		"not_unique":     "要素が重複しています",
		"contains":       "必要な要素がありません",
		"required":       "必須プロパティが不足しています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := dictionaries[t.lang][code]; ok {
		return msg
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// Supported reports whether lang has a built-in dictionary.
func Supported(lang string) bool {
	_, ok := dictionaries[lang]
	return ok
}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if !Supported(lang) {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

// For returns the built-in Translator for lang without touching the global
// one; unknown languages fall back to English.
func For(lang string) Translator {
	if !Supported(lang) {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}
