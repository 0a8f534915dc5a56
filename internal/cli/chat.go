package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"prodhub/internal/assistant"
	"prodhub/internal/constants"
	"prodhub/internal/keyring"
	"prodhub/internal/logger"
)

type ChatCmd struct {
	Query []string `arg:"" optional:"" help:"One-shot question; omit for an interactive session."`
	Model string   `help:"Gemini model to use." default:"${gemini_model}"`
}

func (c *ChatCmd) Run(ctx *Context) error {
	// Only a valid login may talk to the assistant, even though the
	// conversation itself never touches stored data.
	if _, err := ctx.requireUser(); err != nil {
		return err
	}

	apiKey, err := resolveAPIKey()
	if err != nil {
		return err
	}

	runCtx := context.Background()
	client, err := assistant.NewGeminiClient(runCtx, apiKey, c.Model)
	if err != nil {
		return err
	}
	conv := assistant.NewConversation(client, constants.AssistantContextReplies)

	if len(c.Query) > 0 {
		reply, err := conv.Ask(runCtx, strings.Join(c.Query, " "))
		if err != nil {
			logger.Error("assistant request failed", "error", err)
			return err
		}
		fmt.Println(reply)
		return nil
	}

	fmt.Println(faintStyle.Render("Chatting with the assistant. Type 'exit' to leave."))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		reply, err := conv.Ask(runCtx, query)
		if err != nil {
			logger.Error("assistant request failed", "error", err)
			if errors.Is(err, assistant.ErrExternalService) {
				fmt.Println(warnStyle.Render("The assistant is unavailable right now, try again later"))
				continue
			}
			return err
		}
		fmt.Println(reply)
	}
	return scanner.Err()
}

// resolveAPIKey checks the OS keyring first, then the environment.
func resolveAPIKey() (string, error) {
	key, err := keyring.GetAPIKey()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("keyring lookup failed", "error", err)
	}

	if key := os.Getenv("PRODHUB_GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no Gemini API key found, run 'prodhub config set-api-key' or set PRODHUB_GEMINI_API_KEY")
}
