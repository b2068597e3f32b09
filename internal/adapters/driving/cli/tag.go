package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptstash/promptstash-cli/internal/core/domain"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long: `View and manage tags.

Tag names map to URL-safe slugs automatically; colliding slugs get a
numeric suffix. Deleting a tag detaches it from every prompt but
leaves the prompts untouched.`,
	RunE: runTagList,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags with usage counts",
	RunE:  runTagList,
}

var tagAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagRenameCmd = &cobra.Command{
	Use:   "rename [slug] [new-name]",
	Short: "Rename a tag",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagRename,
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove [slug]",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagRemove,
}

var tagLinkCmd = &cobra.Command{
	Use:   "link [prompt-id] [slug]",
	Short: "Attach a tag to a prompt",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagLink,
}

var tagUnlinkCmd = &cobra.Command{
	Use:   "unlink [prompt-id] [slug]",
	Short: "Detach a tag from a prompt",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagUnlink,
}

func init() {
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRenameCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	tagCmd.AddCommand(tagLinkCmd)
	tagCmd.AddCommand(tagUnlinkCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagList(cmd *cobra.Command, _ []string) error {
	if tagService == nil {
		return errors.New("tag service not configured")
	}

	counts, err := tagService.ListWithCounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}

	if len(counts) == 0 {
		cmd.Println("No tags.")
		return nil
	}

	cmd.Println("Tags:")
	for _, tc := range counts {
		cmd.Printf("  %-20s %-20s %d prompts\n", tc.Tag.Name, tc.Tag.Slug, tc.Count)
	}
	return nil
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errors.New("tag service not configured")
	}

	tag, err := tagService.Create(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	cmd.Printf("Created tag %s (slug: %s)\n", tag.Name, tag.Slug)
	return nil
}

func runTagRename(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errors.New("tag service not configured")
	}

	tag, err := resolveTag(cmd, args[0])
	if err != nil {
		return err
	}

	renamed, err := tagService.Rename(cmd.Context(), tag.ID, args[1])
	if err != nil {
		return fmt.Errorf("failed to rename tag: %w", err)
	}

	cmd.Printf("Renamed tag to %s (slug: %s)\n", renamed.Name, renamed.Slug)
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errors.New("tag service not configured")
	}

	tag, err := resolveTag(cmd, args[0])
	if err != nil {
		return err
	}

	if err := tagService.Delete(cmd.Context(), tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	cmd.Printf("Deleted tag %s\n", tag.Name)
	return nil
}

func runTagLink(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	promptID, err := parseID(args[0])
	if err != nil {
		return err
	}
	tag, err := resolveTag(cmd, args[1])
	if err != nil {
		return err
	}

	if err := promptService.LinkTag(cmd.Context(), promptID, tag.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("prompt #%d not found", promptID)
		}
		return fmt.Errorf("failed to link tag: %w", err)
	}

	cmd.Printf("Tagged prompt #%d with %s\n", promptID, tag.Name)
	return nil
}

func runTagUnlink(cmd *cobra.Command, args []string) error {
	if promptService == nil {
		return errors.New("prompt service not configured")
	}

	promptID, err := parseID(args[0])
	if err != nil {
		return err
	}
	tag, err := resolveTag(cmd, args[1])
	if err != nil {
		return err
	}

	if err := promptService.UnlinkTag(cmd.Context(), promptID, tag.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("prompt #%d not found", promptID)
		}
		return fmt.Errorf("failed to unlink tag: %w", err)
	}

	cmd.Printf("Removed tag %s from prompt #%d\n", tag.Name, promptID)
	return nil
}

func resolveTag(cmd *cobra.Command, slug string) (*domain.Tag, error) {
	tag, err := tagService.GetBySlug(cmd.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("unknown tag: %s", slug)
		}
		return nil, fmt.Errorf("resolving tag %s: %w", slug, err)
	}
	return tag, nil
}
