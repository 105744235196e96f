// Copyright (c) 2025 FitMate Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - "fitmate chat" interactive REPL.
//
// Interactive commands:
//   /help, /h      Show available commands
//   /clear, /c     Clear conversation history
//   /history       Show conversation history
//   /suggest       Show suggested prompts
//   /quit, /q      Exit chat
//   Ctrl+D         Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/fitmate/fitmate-tui/internal/history"
	"github.com/fitmate/fitmate-tui/internal/model"
)

// historyFileName stores the REPL input history inside the profile dir.
const historyFileName = "chat_history"

// HandleChat runs the coach REPL in the current terminal.
func HandleChat(args Args) {
	if !IsTTY() {
		fail(errors.New("chat requires an interactive terminal"))
	}

	env, err := LoadEnv(args)
	if err != nil {
		fail(err)
	}

	cur := env.Sessions.Current()
	if !cur.Valid() {
		fail(errors.New("not signed in; run `fitmate login` first"))
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := filepath.Join(env.Config.ProfileDir(), historyFileName)
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, historyPath)

	if !args.Quiet {
		fmt.Println(promptStyle.Render("FitMate Coach"))
		fmt.Println(infoStyle.Render("signed in as " + cur.Email + " · /help for commands · Ctrl+D to exit"))
		fmt.Println()
	}

	// The TUI and the REPL share one transcript per account.
	transcripts, _ := history.NewStore(filepath.Join(env.Config.ProfileDir(), "history"))
	conv := model.NewConversation()
	if transcripts != nil {
		if saved, err := transcripts.Load(cur.Email); err == nil {
			conv = saved
			if !args.Quiet {
				fmt.Println(infoStyle.Render(fmt.Sprintf("Resumed conversation with %d messages; /history shows it.", conv.Len())))
			}
		}
	}

	for {
		input, err := line.Prompt(promptStyle.Render("you> "))
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Println()
			break
		}
		if err != nil {
			fail(err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := runReplCommand(env, transcripts, cur.Email, conv, input); quit {
				break
			}
			continue
		}

		reply, err := runExchange(env, transcripts, cur.Email, conv, input)
		if err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			continue
		}
		if reply.Content != "" {
			printReply(reply.Content)
		}
	}
}

// runExchange appends the user message, performs the remote call, and
// persists the transcript on both outcomes, so the typed message
// survives an exit after a failed send.
func runExchange(env *Env, transcripts *history.Store, email string, conv *model.Conversation, input string) (model.Message, error) {
	conv.AppendUser(input)
	reply, err := sendOnce(env, email, input)
	if err == nil && reply.Content != "" {
		conv.Append(reply)
	}
	if transcripts != nil {
		transcripts.Save(email, *conv)
	}
	return reply, err
}

// sendOnce performs one coach exchange.
func sendOnce(env *Env, email, content string) (model.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	reply, err := env.Client.SendChat(ctx, email, content)
	if err != nil {
		return model.Message{}, err
	}
	return reply.Message, nil
}

// printReply renders the coach's markdown when stdout supports it.
func printReply(content string) {
	if ColorEnabled() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(GetTerminalWidth()),
		)
		if err == nil {
			if out, err := r.Render(content); err == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Println(content)
}

// runReplCommand executes a slash command; returns true to exit.
func runReplCommand(env *Env, transcripts *history.Store, email string, conv *model.Conversation, input string) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/q", "/exit":
		return true
	case "/help", "/h":
		fmt.Println(infoStyle.Render("  /clear     clear conversation history"))
		fmt.Println(infoStyle.Render("  /history   show conversation history"))
		fmt.Println(infoStyle.Render("  /suggest   show suggested prompts"))
		fmt.Println(infoStyle.Render("  /quit      exit chat"))
	case "/clear", "/c":
		conv.Clear()
		if transcripts != nil {
			transcripts.Clear(email)
		}
		fmt.Println(infoStyle.Render("Conversation cleared."))
	case "/history":
		if conv.IsEmpty() {
			fmt.Println(infoStyle.Render("No messages yet."))
			break
		}
		for _, msg := range conv.Messages {
			fmt.Printf("%s %s\n", warningStyle.Render(msg.Role.DisplayName()+":"), msg.Preview(120))
		}
	case "/suggest":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		suggestions, err := env.Client.GetSuggestions(ctx)
		cancel()
		if err != nil {
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			break
		}
		for _, s := range suggestions {
			fmt.Println(infoStyle.Render("  · " + s))
		}
	default:
		fmt.Println(warningStyle.Render("Unknown command. /help lists the available ones."))
	}
	return false
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
