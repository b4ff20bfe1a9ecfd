package cli

import (
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"studybuddy/internal/assistant"
	"studybuddy/internal/web"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the assistant HTTP server (POST /api/ask)",
		Long: strings.TrimSpace(`
Run the HTTP server that proxies study-assistant prompts to an
OpenAI-compatible chat completion API. The API key stays on the server:
set OPENAI_API_KEY (or GROQ_API_KEY, or assistant.api_key in the config).
`),
		Example: strings.TrimSpace(`
  OPENAI_API_KEY=sk-... studybuddy serve --addr 127.0.0.1:8787
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = strings.TrimSpace(app.Config.Server.Addr)
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("serve: missing --addr"))
			}

			completer, err := assistant.NewOpenAICompleter(assistant.OpenAIConfig{
				APIKey:  app.Config.Assistant.APIKey,
				BaseURL: app.Config.Assistant.BaseURL,
				Model:   app.Config.Assistant.Model,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			srv, err := web.NewServer(web.ServerConfig{
				Addr:      listenAddr,
				Completer: completer,
				Logger:    app.Log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, errors.Wrap(err, "serve: listen"))
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr": ln.Addr().String(),
					"url":  "http://" + ln.Addr().String() + "/",
				},
			})

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.Serve(ctx, ln); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: config server.addr)")
	return cmd
}
