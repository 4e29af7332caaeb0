package widget

import (
	"context"
	_ "embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// StateElementID is the id of the script element carrying the page state.
const StateElementID = "widget-state"

// DefaultAssetsPath is where the router serves Assets.
const DefaultAssetsPath = "/-/assets"

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Props is everything the page needs to render.
type Props struct {
	Lang       string
	Messages   map[string]string
	Origin     string
	AssetsPath string

	Secret     string
	Code       string
	Remaining  int64
	ServerTime int64
	TimeStep   int64
	MaxRetries int

	// Error is shown inline instead of a code; Detail is appended in parentheses.
	Error  string
	Detail string
}

// state is the JSON handed to the page script.
type state struct {
	Secret     string            `json:"secret"`
	Code       string            `json:"code,omitempty"`
	Remaining  int64             `json:"remaining"`
	ServerTime int64             `json:"serverTime"`
	TimeStep   int64             `json:"timeStep"`
	MaxRetries int               `json:"maxRetries"`
	Messages   map[string]string `json:"messages"`
}

type view struct {
	Props
	T     map[string]string
	State template.HTML
}

// Page renders the widget.
func Page(p Props) templ.Component {
	if p.AssetsPath == "" {
		p.AssetsPath = DefaultAssetsPath
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		script, err := templ.ToGoHTML(ctx, templ.JSONScript(StateElementID, state{
			Secret:     p.Secret,
			Code:       p.Code,
			Remaining:  p.Remaining,
			ServerTime: p.ServerTime,
			TimeStep:   p.TimeStep,
			MaxRetries: p.MaxRetries,
			Messages:   p.Messages,
		}))
		if err != nil {
			return err
		}

		return templ.FromGoHTML(pageTemplate, view{
			Props: p,
			T:     p.Messages,
			State: script,
		}).Render(ctx, w)
	})
}
