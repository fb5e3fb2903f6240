package tokenizer

// Options selects which surface syntaxes are recognised. Each enabled
// syntax contributes its trigger character to the host's dispatch table.
type Options struct {
	EnablePandocSyntax bool `json:"enablePandocSyntax" yaml:"pandoc"`
	EnableAltSyntax    bool `json:"enableAltSyntax" yaml:"alt"`
}

// DefaultOptions enables the Pandoc syntax only.
func DefaultOptions() Options {
	return Options{EnablePandocSyntax: true}
}

// Triggers returns the trigger characters for the enabled syntaxes.
func (o Options) Triggers() []byte {
	var triggers []byte
	if o.EnablePandocSyntax {
		triggers = append(triggers, '[')
	}
	if o.EnableAltSyntax {
		triggers = append(triggers, '@')
	}
	return triggers
}

// Dispatch reports whether c is an enabled trigger and, if so, whether it
// starts the alternative syntax.
func (o Options) Dispatch(c rune) (alt bool, ok bool) {
	switch {
	case c == '[' && o.EnablePandocSyntax:
		return false, true
	case c == '@' && o.EnableAltSyntax:
		return true, true
	}
	return false, false
}
