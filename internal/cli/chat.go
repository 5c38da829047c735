package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/rishabhhandoo/Ragify/internal/chat"
	"github.com/rishabhhandoo/Ragify/internal/config"
	"github.com/rishabhhandoo/Ragify/internal/ui"
)

var chatNew bool

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with your documents",
	Long: `Start an interactive conversation grounded in the ingested documents.

Each question retrieves the most relevant chunks and hands them to the
model as context. The conversation is persisted between runs; start fresh
with --new.

In-session commands:
  /new    reset the conversation
  /exit   leave the chat`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatNew, "new", false, "start a new conversation")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted")
		cancel()
	}()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if !st.Status().Ready() {
		fmt.Println(ui.Warning.Render("Store is degraded: " + st.Status().Reason))
		fmt.Println(ui.Dim.Render("Answers will not use document context."))
	}

	session := chat.NewSession(
		chat.NewOllamaClient(cfg.Chat.URL, cfg.Chat.Model),
		st,
		chat.SessionOptions{
			HistoryFile: cfg.Storage.HistoryFile,
			TopK:        cfg.Chat.TopK,
			MaxHistory:  cfg.Chat.MaxHistory,
		},
	)
	if chatNew {
		if err := session.Reset(); err != nil {
			return err
		}
	}

	fmt.Println(ui.Header.Render(fmt.Sprintf("ragify chat (%s)", cfg.Chat.Model)))
	if n := len(session.History()); n > 0 {
		fmt.Println(ui.Dim.Render(fmt.Sprintf("Resuming conversation (%d messages). Use --new or /new to start over.", n)))
	}
	fmt.Println(ui.Dim.Render("Type /exit to quit."))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for {
		fmt.Print(ui.UserPrompt.Render("you> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/exit" || line == "/quit":
			return nil
		case line == "/new":
			if err := session.Reset(); err != nil {
				return err
			}
			fmt.Println(ui.Dim.Render("Conversation reset."))
			continue
		}

		answer, err := session.Send(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Println(ui.Error.Render("Error: " + err.Error()))
			continue
		}

		fmt.Println(ui.AssistantLabel.Render(cfg.Chat.Model + ">"))
		if rendered, err := renderMarkdown(answer); err == nil {
			fmt.Print(rendered)
		} else {
			fmt.Println(answer)
		}
		fmt.Println()
	}
}

// renderMarkdown renders markdown content using glamour.
func renderMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}
