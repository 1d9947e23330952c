package llm

// PromptTokens are the fill-in-the-middle control tokens a model was
// trained with. The prompt is assembled as
// Prefix + <text before cursor> + Suffix + <text after cursor> + Middle,
// after which the model emits the infill.
type PromptTokens struct {
	Prefix string
	Suffix string
	Middle string
}

// DefaultPromptTokens returns the token set used by the Qwen coder and
// StarCoder model families.
func DefaultPromptTokens() PromptTokens {
	return PromptTokens{
		Prefix: "<|fim_prefix|>",
		Suffix: "<|fim_suffix|>",
		Middle: "<|fim_middle|>",
	}
}

func normalizePromptTokens(t PromptTokens) PromptTokens {
	if t.Prefix == "" && t.Suffix == "" && t.Middle == "" {
		return DefaultPromptTokens()
	}
	return t
}

// BuildPrompt assembles a raw fill-in-the-middle prompt from the text
// around the cursor.
func BuildPrompt(t PromptTokens, prefix, suffix string) string {
	return t.Prefix + prefix + t.Suffix + suffix + t.Middle
}
