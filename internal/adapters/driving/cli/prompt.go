package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
	"github.com/promptstash/promptstash-cli/internal/core/ports/driving"
)

var (
	addMessageID int64
	addChannelID int64
	addPinned    bool
	addImageURL  string
	addTags      []string
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Store a new prompt",
	Long: `Stores a new prompt in the library.

The text is normalised (markdown stripped, lowercased) for search.
Tags given with --tag are created on the fly when they don't exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var editCmd = &cobra.Command{
	Use:   "edit [id] [text]",
	Short: "Replace a prompt's text",
	Args:  cobra.ExactArgs(2),
	RunE:  runEdit,
}

var pinCmd = &cobra.Command{
	Use:   "pin [id]",
	Short: "Pin a prompt",
	Long:  `Pins a prompt so it surfaces first in listings and fallback search.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPin,
}

var unpinCmd = &cobra.Command{
	Use:   "unpin [id]",
	Short: "Unpin a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnpin,
}

var rmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a prompt",
	Long: `Soft-deletes a prompt. The record is kept for audit but drops
out of every listing and search immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	addCmd.Flags().Int64Var(&addMessageID, "message-id", 0, "originating message id (required)")
	addCmd.Flags().Int64Var(&addChannelID, "channel-id", 0, "originating channel id")
	addCmd.Flags().BoolVar(&addPinned, "pin", false, "pin the prompt on creation")
	addCmd.Flags().StringVar(&addImageURL, "image", "", "attached image URL")
	addCmd.Flags().StringSliceVarP(&addTags, "tag", "t", nil, "tag to attach (repeatable, created if missing)")
	_ = addCmd.MarkFlagRequired("message-id")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
	rootCmd.AddCommand(rmCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	prompt, err := promptService.Create(cmd.Context(), driving.CreatePrompt{
		MessageID: addMessageID,
		ChannelID: addChannelID,
		Text:      args[0],
		Pinned:    addPinned,
		ImageURL:  addImageURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("a prompt with message id %d already exists", addMessageID)
		}
		return fmt.Errorf("failed to store prompt: %w", err)
	}

	for _, name := range addTags {
		tag, err := ensureTag(cmd, name)
		if err != nil {
			return err
		}
		if err := promptService.LinkTag(cmd.Context(), prompt.ID, tag.ID); err != nil {
			return fmt.Errorf("tagging prompt: %w", err)
		}
	}

	cmd.Printf("Stored prompt #%d\n", prompt.ID)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	prompt, err := promptService.Get(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("prompt #%d not found", id)
		}
		return fmt.Errorf("failed to get prompt: %w", err)
	}

	cmd.Printf("Prompt #%d\n", prompt.ID)
	if prompt.Pinned {
		cmd.Println("Pinned: yes")
	}
	if len(prompt.Tags) > 0 {
		for _, tag := range prompt.Tags {
			cmd.Printf("Tag: %s (%s)\n", tag.Name, tag.Slug)
		}
	}
	if prompt.ImageURL != "" {
		cmd.Printf("Image: %s\n", prompt.ImageURL)
	}
	cmd.Printf("Created: %s\n", prompt.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Println()
	cmd.Println(prompt.Text)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if _, err := promptService.UpdateText(cmd.Context(), id, args[1]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("prompt #%d not found", id)
		}
		return fmt.Errorf("failed to update prompt: %w", err)
	}

	cmd.Printf("Updated prompt #%d\n", id)
	return nil
}

func runPin(cmd *cobra.Command, args []string) error {
	return setPinned(cmd, args[0], true)
}

func runUnpin(cmd *cobra.Command, args []string) error {
	return setPinned(cmd, args[0], false)
}

func setPinned(cmd *cobra.Command, arg string, pinned bool) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	if _, err := promptService.SetPinned(cmd.Context(), id, pinned); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("prompt #%d not found", id)
		}
		return fmt.Errorf("failed to update prompt: %w", err)
	}

	if pinned {
		cmd.Printf("Pinned prompt #%d\n", id)
	} else {
		cmd.Printf("Unpinned prompt #%d\n", id)
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := promptService.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("prompt #%d not found", id)
		}
		return fmt.Errorf("failed to delete prompt: %w", err)
	}

	cmd.Printf("Deleted prompt #%d\n", id)
	return nil
}

// ensureTag resolves a tag by name, creating it if needed.
func ensureTag(cmd *cobra.Command, name string) (*domain.Tag, error) {
	if tagService == nil {
		return nil, errors.New("tag service not configured")
	}

	tags, err := tagService.List(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	for i := range tags {
		if tags[i].Name == name {
			return &tags[i], nil
		}
	}

	tag, err := tagService.Create(cmd.Context(), name)
	if err != nil {
		return nil, fmt.Errorf("creating tag %s: %w", name, err)
	}
	return tag, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid prompt id: %s", arg)
	}
	return id, nil
}
