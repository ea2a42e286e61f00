package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Group marks into themes",
	Long: `Groups collect marks under one name. In tabulations a group counts the
occurrences of all its members; materialising a group saves those
occurrences as a new Tag.`,
	RunE: runGroupList,
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups and their members",
	RunE:  runGroupList,
}

var groupCreateCmd = &cobra.Command{
	Use:   "create [name] [mark]...",
	Short: "Create a group",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGroupCreate,
}

var groupSetCmd = &cobra.Command{
	Use:   "set [group] [mark]...",
	Short: "Replace a group's members",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGroupSet,
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename [group] [name]",
	Short: "Rename a group",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupRename,
}

var groupColorCmd = &cobra.Command{
	Use:   "color [group] [#rrggbb]",
	Short: "Set a group's colour",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupColor,
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove [group]",
	Short: "Delete a group (its marks are kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroupRemove,
}

var groupMaterializeCmd = &cobra.Command{
	Use:   "materialize [group] [tag]",
	Short: "Save a group's occurrences as a new Tag",
	Args:  cobra.ExactArgs(2),
	RunE:  runGroupMaterialize,
}

func init() {
	groupCmd.AddCommand(groupListCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupSetCmd)
	groupCmd.AddCommand(groupRenameCmd)
	groupCmd.AddCommand(groupColorCmd)
	groupCmd.AddCommand(groupRemoveCmd)
	groupCmd.AddCommand(groupMaterializeCmd)
	rootCmd.AddCommand(groupCmd)
}

func runGroupList(cmd *cobra.Command, _ []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}

	groups, err := groupService.List()
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}
	if len(groups) == 0 {
		cmd.Println("No groups.")
		return nil
	}

	for _, g := range groups {
		cmd.Printf("%s  %s  %s\n", g.ID, g.Color, g.Name)
		for _, id := range g.Marks {
			cmd.Printf("    %s\n", markLabel(id))
		}
	}
	return nil
}

// markLabel prints a member as "name (id)" when the mark resolves.
func markLabel(id string) string {
	if annotationService == nil {
		return id
	}
	m, err := annotationService.ResolveMark(id)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%s %q (%s)", m.Type, m.Name, m.ID)
}

func runGroupCreate(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}
	id, err := groupService.Create(cmd.Context(), args[0], args[1:])
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	cmd.Printf("Created group %q (%s)\n", strings.TrimSpace(args[0]), id)
	return nil
}

func runGroupSet(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}
	if err := groupService.SetMarks(cmd.Context(), args[0], args[1:]); err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	cmd.Printf("Group %q now has %d mark(s)\n", args[0], len(args)-1)
	return nil
}

func runGroupRename(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}
	if err := groupService.Rename(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename group: %w", err)
	}
	cmd.Printf("Renamed group %q to %q\n", args[0], args[1])
	return nil
}

func runGroupColor(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}
	if err := groupService.Recolor(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set colour: %w", err)
	}
	cmd.Printf("Group %q is now %s\n", args[0], args[1])
	return nil
}

func runGroupRemove(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}
	if err := groupService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove group: %w", err)
	}
	cmd.Printf("Removed group %q\n", args[0])
	return nil
}

func runGroupMaterialize(cmd *cobra.Command, args []string) error {
	if groupService == nil {
		return errors.New("group service not configured")
	}
	id, err := groupService.Materialize(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to materialize group: %w", err)
	}
	cmd.Printf("Saved group %q as tag %q (%s)\n", args[0], args[1], id)
	return nil
}
