package i18n

// Translator retrieves localized messages for violation codes.
// data provides optional metadata to embed in the message (for example,
// "min" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "blank":
			return "空にできません"
		case "invalid_type":
			return "型が不正です"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "not_a_multiple":
			return "倍数ではありません"
		case "pattern":
			return "パターンに一致しません"
		case "invalid_format":
			return "形式が不正です"
		case "not_included":
			return "許可された値ではありません"
		case "not_equal":
			return "期待値と一致しません"
		case "too_few_items":
			return "要素が少なすぎます"
		case "too_many_items":
			return "要素が多すぎます"
		case "not_unique":
			return "要素が重複しています"
		case "extra_items":
			return "余分な要素があります"
		case "too_few_properties":
			return "プロパティが少なすぎます"
		case "too_many_properties":
			return "プロパティが多すぎます"
		case "required_dependency":
			return "依存プロパティが不足しています"
		case "no_match":
			return "どのスキーマにも一致しません"
		case "ambiguous":
			return "複数のスキーマに一致します"
		case "depth_exceeded":
			return "ネストが深すぎます"
		}
	default: // "en"
		switch code {
		case "blank":
			return "can't be blank"
		case "invalid_type":
			return "invalid type"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "not_a_multiple":
			return "not a multiple"
		case "pattern":
			return "does not match pattern"
		case "invalid_format":
			return "invalid format"
		case "not_included":
			return "is not included in the list"
		case "not_equal":
			return "does not equal the expected value"
		case "too_few_items":
			return "has too few items"
		case "too_many_items":
			return "has too many items"
		case "not_unique":
			return "contains duplicate items"
		case "extra_items":
			return "has extra items"
		case "too_few_properties":
			return "has too few properties"
		case "too_many_properties":
			return "has too many properties"
		case "required_dependency":
			return "required dependency missing"
		case "no_match":
			return "matches no schema"
		case "ambiguous":
			return "matches more than one schema"
		case "depth_exceeded":
			return "nesting too deep"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
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
