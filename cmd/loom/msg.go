package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loomhq/loom/internal/config"
	"github.com/loomhq/loom/internal/git"
	"github.com/loomhq/loom/internal/mailbox"
)

var (
	msgFrom string
	msgTo   string
	msgBead string
	msgTags []string
)

var msgCmd = &cobra.Command{
	Use:   "msg",
	Short: "Send and read agent messages",
}

var msgSendCmd = &cobra.Command{
	Use:   "send [body]",
	Short: "Send a message to another agent",
	Long: `Send a message into the project mailbox.

The body is taken from the argument, or read from stdin when omitted.

Examples:
  loom msg send --from planner --to worker --bead at-7f2k "Please review."
  git diff | loom msg send --from worker --to planner --tag review`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMsgSend,
}

var msgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages in the mailbox",
	RunE:  runMsgList,
}

func init() {
	msgSendCmd.Flags().StringVar(&msgFrom, "from", "", "Sending agent role (required)")
	msgSendCmd.Flags().StringVar(&msgTo, "to", "", "Receiving agent role (required)")
	msgSendCmd.Flags().StringVar(&msgBead, "bead", "", "Bead this message concerns")
	msgSendCmd.Flags().StringSliceVar(&msgTags, "tag", nil, "Message tags (repeatable)")
	msgSendCmd.MarkFlagRequired("from")
	msgSendCmd.MarkFlagRequired("to")

	msgListCmd.Flags().StringVar(&msgTo, "to", "", "Only messages addressed to this role")

	msgCmd.AddCommand(msgSendCmd)
	msgCmd.AddCommand(msgListCmd)
}

// openMailbox opens the project mailbox from config.
func openMailbox() (*mailbox.Mailbox, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	repoRoot, err := git.NewRunner(cwd).RepoRoot()
	if err != nil {
		return nil, err
	}
	return mailbox.New(filepath.Join(repoRoot, cfg.Mailbox.Dir))
}

func runMsgSend(cmd *cobra.Command, args []string) error {
	body := ""
	if len(args) > 0 {
		body = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read body from stdin: %w", err)
		}
		body = string(data)
	}

	mb, err := openMailbox()
	if err != nil {
		return err
	}
	sent, err := mb.Send(mailbox.Message{
		From: msgFrom,
		To:   msgTo,
		Bead: msgBead,
		Tags: msgTags,
		Body: body,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Sent %s to %s\n", sent.ID, sent.To)
	return nil
}

func runMsgList(cmd *cobra.Command, args []string) error {
	mb, err := openMailbox()
	if err != nil {
		return err
	}
	messages, err := mb.List(msgTo)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		fmt.Println("No messages.")
		return nil
	}
	for _, m := range messages {
		bead := m.Bead
		if bead == "" {
			bead = "-"
		}
		fmt.Printf("%s  %s → %s  bead=%s  %s\n",
			m.SentAt.Local().Format("2006-01-02 15:04"), m.From, m.To, bead, m.ID)
	}
	return nil
}
