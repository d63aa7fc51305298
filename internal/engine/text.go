package engine

import "context"

// TextEngine passes raw text input through unchanged. It makes no network
// calls and is always available.
type TextEngine struct{}

func (TextEngine) Name() string    { return "text" }
func (TextEngine) Kind() Kind      { return KindText }
func (TextEngine) Available() bool { return true }

func (e TextEngine) Extract(_ context.Context, in Input) (*Raw, error) {
	if in.Text == "" {
		return nil, NewError(e.Name(), KindUnsupported, "no text input")
	}
	return &Raw{Text: in.Text, Metadata: map[string]string{}}, nil
}
