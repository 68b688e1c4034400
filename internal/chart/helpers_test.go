package chart

func commandsOf[T Command](d Drawing) []T {
	var out []T
	for _, c := range d.Commands {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func circlesWithRadius(d Drawing, r float64) []Circle {
	var out []Circle
	for _, c := range commandsOf[Circle](d) {
		if c.R == r {
			out = append(out, c)
		}
	}
	return out
}

func textsWithContent(d Drawing, content string) []Text {
	var out []Text
	for _, t := range commandsOf[Text](d) {
		if t.Content == content {
			out = append(out, t)
		}
	}
	return out
}

func items(pairs ...any) []Item {
	out := make([]Item, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Item{Label: pairs[i].(string), Value: toFloat(pairs[i+1])})
	}
	return out
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	panic("unsupported number")
}
